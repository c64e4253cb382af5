package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/exchangeclient/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-l string   log level
//
// Only these flags are looked at; anything else on the command line belongs
// to other consumers (see flagx.FilterArgs). Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	own := flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(own); err != nil {
		panic(err)
	}

	// Sub-second JSON timeouts survive unless -t is given explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
