package config

import (
	"flag"
	"os"
	"time"
)

var knownFlags = []string{
	"-s", "-d", "-k", "-n", "-r", "-x", "-t", "-m", "-w", "-q", "-l", "-v",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags (see the
// package documentation for the list). Durations are given as integers:
// minutes for -t, milliseconds for -w and -q.
//
// It panics on malformed values.
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Store, "s", cfg.Store, "durable store: memory, sqlite, postgres, s3")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "durable store DSN")
	fs.StringVar(&cfg.SessionStore, "k", cfg.SessionStore, "session store: memory, sqlite, redis")
	fs.StringVar(&cfg.SessionDSN, "n", cfg.SessionDSN, "session store DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.SessionSecret, "x", cfg.SessionSecret, "session token secret")
	sessionTTL := fs.Int("t", 0, "session lifetime (in minutes)")
	fs.StringVar(&cfg.CatalogPath, "m", cfg.CatalogPath, "catalog JSON file")
	redirectDelay := fs.Int("w", 0, "redirect delay (in milliseconds)")
	confirmDelay := fs.Int("q", 0, "confirmation delay (in milliseconds)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json, console")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	fs.StringVar(&cfg.S3.AccessKey, "u", cfg.S3.AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3.SecretKey, "p", cfg.S3.SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3.Region, "g", cfg.S3.Region, "S3 region")
	fs.StringVar(&cfg.S3.Endpoint, "e", cfg.S3.Endpoint, "S3 endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations keep their finer-grained earlier value unless given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		case "w":
			cfg.RedirectDelay = time.Duration(*redirectDelay) * time.Millisecond
		case "q":
			cfg.ConfirmDelay = time.Duration(*confirmDelay) * time.Millisecond
		}
	})
}
