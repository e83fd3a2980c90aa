package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/resumebook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Arguments not
// owned by this loader are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-s", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBase, "a", cfg.APIBase, "base URL of the backend API")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	resizeInterval := fs.Int("i", int(cfg.ResizeInterval.Milliseconds()), "resize poll interval (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	// Durations are only replaced when their flag is given, so sub-unit
	// values from the JSON file survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "i":
			cfg.ResizeInterval = time.Duration(*resizeInterval) * time.Millisecond
		}
	})
}
