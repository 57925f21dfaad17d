package config

import (
	"os"
	"time"
)

const (
	DefaultAPIBaseURL = "https://akil-backend.onrender.com"
	DefaultDBPath     = "jobboard.db"

	envAPIBaseURL = "JOBBOARD_API_URL"
)

// Config holds runtime settings for the job-board CLI.
//
// Units: RequestTimeout is a time.Duration; zero means no client-side
// timeout. FetchConcurrency of zero or less fetches bookmarked jobs with
// no limit.
type Config struct {
	APIBaseURL       string
	DBPath           string
	RequestTimeout   time.Duration
	LogLevel         string
	FetchConcurrency int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DBPath = DefaultDBPath
	c.RequestTimeout = 0
	c.LogLevel = "warn"
	c.FetchConcurrency = 8
}

// LoadConfig constructs a Config from defaults, then the JSON file (if
// any), then the environment, then command-line flags. Later sources take
// precedence. It panics on an unreadable config file or bad flag values.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, os.Args[1:])
	return cfg
}

func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(envAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
}
