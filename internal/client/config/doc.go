// Package config loads runtime configuration for the SkillSwap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: a .env file if present, then SKILLSWAP_* variables.
//  3. Optional JSON file selected via -c/-config or SKILLSWAP_CLI_CONFIG.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   REST API base URL (e.g. http://127.0.0.1:8000/api)
//	-g string   address:port of the gRPC health endpoint
//	-i int      online status check interval (seconds)
//	-f string   local SQLite database file
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_url": "http://127.0.0.1:8000/api",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_file": "skillswap.db",
//	  "request_timeout": "10s",
//	  "log_level": "warn"
//	}
package config
