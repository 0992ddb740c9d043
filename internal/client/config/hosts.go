package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/achievo/internal/netx"
)

type hostsFile struct {
	Overrides map[string]string `yaml:"overrides"`
}

// LoadHostOverrides reads a YAML host override table:
//
//	overrides:
//	  railway.app: https://achievement-production.up.railway.app
//	  staging.example.com: https://api.staging.example.com
//
// Every origin must be a valid http(s) URL.
func LoadHostOverrides(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host overrides: %w", err)
	}

	var hf hostsFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("parse host overrides %s: %w", path, err)
	}

	out := make(map[string]string, len(hf.Overrides))
	for pattern, origin := range hf.Overrides {
		if pattern == "" {
			return nil, fmt.Errorf("host overrides %s: empty pattern", path)
		}
		norm, err := netx.NormalizeOrigin(origin)
		if err != nil {
			return nil, fmt.Errorf("host override %q: %w", pattern, err)
		}
		out[pattern] = norm
	}
	return out, nil
}
