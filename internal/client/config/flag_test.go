package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "https://api.example.com", "-H", "web.example.com", "-d", "/tmp/a.db", "-l", "debug", "-t", "5"},
			expected: &Config{APIBaseURL: "https://api.example.com", ClientHost: "web.example.com", DatabasePath: "/tmp/a.db", LogLevel: "debug", RequestTimeout: 5 * time.Second}},
		{name: "unknown flags ignored", args: []string{"cmd", "-x", "1", "-t=7"},
			expected: &Config{RequestTimeout: 7 * time.Second}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_HostOverridesFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "hosts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  staging.example.com: https://api.staging.example.com/\n"), 0o600))

	os.Args = []string{"cmd", "-o", path}
	cfg := &Config{}
	parseFlags(cfg)

	assert.Equal(t, map[string]string{"staging.example.com": "https://api.staging.example.com"}, cfg.HostOverrides)

	os.Args = []string{"cmd", "-o", filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Panics(t, func() { parseFlags(&Config{}) })
}
