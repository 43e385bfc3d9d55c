package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend address
//	-t string   transport: http or grpc
//	-s string   session backend: sqlite, file or memory
//	-f string   session database or file path
//	-w int      expiry warning lead time (minutes)
//	-i int      online check interval (seconds)
//	-r int      request timeout (seconds)
//	-l int      default session lifetime (minutes)
//	-v          verbose logging
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other
// components do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-f", "-w", "-i", "-r", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "address and port to access server")
	fs.StringVar(&cfg.Transport, "t", cfg.Transport, "transport (http|grpc)")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session storage (sqlite|file|memory)")
	fs.StringVar(&cfg.SessionPath, "f", cfg.SessionPath, "session database or file path")
	expiryWarning := fs.Int("w", int(cfg.ExpiryWarning.Minutes()), "expiry warning (in minutes)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	sessionLifetime := fs.Int("l", int(cfg.SessionLifetime.Minutes()), "default session lifetime (in minutes)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations are only overridden when their flag is given, so finer
	// values from the JSON file survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.ExpiryWarning = time.Duration(*expiryWarning) * time.Minute
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "r":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "l":
			cfg.SessionLifetime = time.Duration(*sessionLifetime) * time.Minute
		}
	})
}
