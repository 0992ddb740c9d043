// Package config loads runtime configuration for the Achievo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file (-e/-env, default ".env") and ACHIEVO_* environment
//     variables: ACHIEVO_API_URL, ACHIEVO_CLIENT_HOST, ACHIEVO_DB,
//     ACHIEVO_LOG_LEVEL.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-H string   client host (selects a host override)
//	-d string   local database path
//	-l string   log level
//	-t int      request timeout (seconds)
//	-o string   YAML host override table
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "client_host": "achievo.up.railway.app",
//	  "host_overrides": {"railway.app": "https://achievement-production.up.railway.app"},
//	  "database_path": "achievo.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "request_timeout": "30s"
//	}
//
// The backend origin is chosen once by (*Config).ResolveBaseURL.
package config
