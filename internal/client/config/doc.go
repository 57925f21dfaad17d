// Package config loads runtime configuration for the job-board CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. The JOBBOARD_API_URL environment variable.
//  4. Command-line flags, which override everything before them.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   session database path
//	-t int      request timeout (seconds, 0 = none)
//	-l string   log level
//	-n int      bookmarked-view fetch concurrency
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://akil-backend.onrender.com",
//	  "session_db": "jobboard.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "fetch_concurrency": 8
//	}
package config
