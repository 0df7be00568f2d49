// Package config handles loading hnstories configuration.
//
// # Overview
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. A TOML file (default ~/.config/hnstories/config.toml)
//  3. HNSTORIES_* environment variables
//
// A missing config file is not an error. hnstories should work out of the
// box with no configuration at all.
//
// # TOML Format
//
//	endpoint = "https://hn.algolia.com/api/v1/search"
//	default_query = "React"
//	prefs_path = "~/.config/hnstories/prefs.toml"
//	log_file = "~/.local/state/hnstories/hnstories.log"
//	log_level = "info"
//	request_timeout = 10       # seconds
//	refresh_interval = 0       # seconds, 0 disables auto refresh
//	requests_per_second = 5    # 0 or negative disables client-side limiting
//
// Every field is optional. Empty strings and non-positive timeouts fall back
// to defaults. default_query is the only string allowed to be empty on
// purpose: it seeds the search box when no preference has been saved yet.
//
// # Environment Overrides
//
//	HNSTORIES_ENDPOINT
//	HNSTORIES_DEFAULT_QUERY
//	HNSTORIES_PREFS_PATH
//	HNSTORIES_LOG_FILE           ("-" logs to stderr)
//	HNSTORIES_LOG_LEVEL
//	HNSTORIES_REQUEST_TIMEOUT
//	HNSTORIES_REFRESH_INTERVAL
//	HNSTORIES_REQUESTS_PER_SECOND
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and relative paths are
// made absolute. This applies to the config file location, prefs_path and
// log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Malformed environment values (e.g., HNSTORIES_REQUEST_TIMEOUT=abc)
package config
