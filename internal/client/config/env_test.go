package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ReadsVariables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvAPIURL, "https://api.from-env.dev")
	t.Setenv(EnvClientHost, "front.railway.app")
	t.Setenv(EnvDatabase, "env.db")
	t.Setenv(EnvLogLevel, "debug")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://api.from-env.dev", cfg.APIBaseURL)
	assert.Equal(t, "front.railway.app", cfg.ClientHost)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEnv_DotenvFileDoesNotOverrideProcessEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ACHIEVO_API_URL=https://from-file.dev\nACHIEVO_DB=file.db\n"), 0o600))
	os.Args = []string{"testbin", "-e", path}

	// godotenv only fills variables that are unset.
	t.Setenv(EnvAPIURL, "https://from-process.dev")
	t.Setenv(EnvDatabase, "")
	require.NoError(t, os.Unsetenv(EnvDatabase))

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "https://from-process.dev", cfg.APIBaseURL)
	assert.Equal(t, "file.db", cfg.DatabasePath)
}

func TestParseEnv_MissingExplicitFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "absent.env")}

	assert.Panics(t, func() { parseEnv(&Config{}) })
}
