package fakeapi

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/achievo/internal/flagx"
)

// Config holds runtime settings of the fake backend.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenTTL: lifetime of issued tokens.
//   - AdminEmail / AdminPassword: superuser seeded at startup when both set.
//   - Mode: gin mode ("debug", "release" or "test").
type Config struct {
	Addr           string
	SecretKey      string
	AccessTokenTTL time.Duration
	AdminEmail     string
	AdminPassword  string
	Mode           string
}

// LoadDefaults populates Config with development defaults. They are not
// meant for anything but local runs.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 30 * time.Minute
	c.AdminEmail = "admin@achievo.local"
	c.AdminPassword = "Admin123!"
	c.Mode = "release"
}

// LoadConfig applies defaults, then FAKEAPI_* environment variables, then
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv("FAKEAPI_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FAKEAPI_SECRET"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("FAKEAPI_TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenTTL = time.Duration(n) * time.Minute
	}
	if v := os.Getenv("FAKEAPI_ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("FAKEAPI_ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
}

// parseFlags reads:
//
//	-a string   bind address (e.g., ":8000")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-u string   seeded admin email
//	-p string   seeded admin password
//	-m string   gin mode
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-u", "-p", "-m"})

	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	ttl := fs.Int("t", int(cfg.AccessTokenTTL.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.AdminEmail, "u", cfg.AdminEmail, "seeded admin email")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "seeded admin password")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "gin mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenTTL = time.Duration(*ttl) * time.Minute
}
