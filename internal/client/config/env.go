package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/achievo/internal/flagx"
)

const (
	EnvAPIURL     = "ACHIEVO_API_URL"
	EnvClientHost = "ACHIEVO_CLIENT_HOST"
	EnvDatabase   = "ACHIEVO_DB"
	EnvLogLevel   = "ACHIEVO_LOG_LEVEL"
)

// parseEnv loads the dotenv file (-e/-env, default ".env") into the process
// environment without overriding variables that are already set, then
// copies the ACHIEVO_* variables into cfg. A missing default .env file is
// not an error; a missing explicit one panics.
func parseEnv(cfg *Config) {
	file := flagx.EnvFileFlag()
	explicit := file != ""
	if !explicit {
		file = ".env"
	}

	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvClientHost); ok && v != "" {
		cfg.ClientHost = v
	}
	if v, ok := os.LookupEnv(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
