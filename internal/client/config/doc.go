// Package config loads runtime configuration for the exchange client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:3080/api)
//	-t int      request timeout in seconds (default 10)
//	-d string   session database path (default session.db)
//	-l string   log level (default info)
//
// # JSON schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://news.example.com/api",
//	  "request_timeout": "10s",
//	  "database_path": "/var/lib/exchange/session.db",
//	  "log_level": "debug"
//	}
package config
