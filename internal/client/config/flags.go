package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/achievo/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-H string   client host used for host overrides
//	-d string   path of the local SQLite database
//	-l string   log level (debug, info, warn, error)
//	-t int      request timeout in seconds
//	-o string   YAML file with host overrides
//
// Only these flags are read from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-H", "-d", "-l", "-t", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.ClientHost, "H", cfg.ClientHost, "client host, used to select a host override")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	overrides := fs.String("o", "", "YAML file with host overrides")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second

	if *overrides != "" {
		m, err := LoadHostOverrides(*overrides)
		if err != nil {
			panic(err)
		}
		cfg.HostOverrides = m
	}
}
