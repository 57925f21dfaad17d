package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// use timex.Duration, so "30s" and integer nanoseconds both work. Absent
// keys leave the current value alone.
type JsonConfig struct {
	APIBaseURL       string          `json:"api_base_url"`
	DBPath           string          `json:"session_db"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	LogLevel         string          `json:"log_level"`
	FetchConcurrency *int            `json:"fetch_concurrency"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in
// args. Without either flag nothing happens. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.FetchConcurrency != nil {
		cfg.FetchConcurrency = *jc.FetchConcurrency
	}
}
