package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/achievo/internal/flagx"
	"github.com/dmitrijs2005/achievo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so they may be strings like "30s" or nanoseconds.
type JsonConfig struct {
	APIBaseURL     string            `json:"api_base_url"`
	ClientHost     string            `json:"client_host"`
	HostOverrides  map[string]string `json:"host_overrides"`
	DatabasePath   string            `json:"database_path"`
	LogLevel       string            `json:"log_level"`
	LogFormat      string            `json:"log_format"`
	RequestTimeout *timex.Duration   `json:"request_timeout"`
}

// parseJson overlays cfg with the fields present in the JSON file given by
// -c or -config. Absent fields keep their current value. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.ClientHost != "" {
		cfg.ClientHost = jc.ClientHost
	}
	if jc.HostOverrides != nil {
		cfg.HostOverrides = jc.HostOverrides
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
