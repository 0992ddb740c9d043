package config

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/achievo/internal/common"
	"github.com/dmitrijs2005/achievo/internal/netx"
)

// Config holds runtime settings for the Achievo CLI.
type Config struct {
	// APIBaseURL is the backend origin used when no host override matches.
	APIBaseURL string
	// ClientHost is the host the client believes it is serving, used to
	// pick a host override. Empty for plain local runs.
	ClientHost string
	// HostOverrides maps host patterns to backend origins. A pattern
	// matches when ClientHost contains it.
	HostOverrides map[string]string

	DatabasePath   string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.ClientHost = ""
	c.HostOverrides = map[string]string{
		"railway.app": common.ProductionAPIBaseURL,
	}
	c.DatabasePath = "achievo.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (and .env), JSON (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// ResolveBaseURL picks the backend origin for this run: the origin of the
// first host override (in sorted pattern order) contained in ClientHost,
// then APIBaseURL, then the local default. The result has no trailing
// slash. It is meant to be called once at startup.
func (c *Config) ResolveBaseURL() (string, error) {
	if host := netx.HostOf(c.ClientHost); host != "" {
		patterns := make([]string, 0, len(c.HostOverrides))
		for p := range c.HostOverrides {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		for _, p := range patterns {
			if p != "" && strings.Contains(host, strings.ToLower(p)) {
				return netx.NormalizeOrigin(c.HostOverrides[p])
			}
		}
	}

	return netx.NormalizeOrigin(common.FirstNonEmpty(c.APIBaseURL, common.DefaultAPIBaseURL))
}
