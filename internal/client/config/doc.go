// Package config loads runtime configuration for the Resume Book console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config or the
//     RESUMEBOOK_CONFIG environment variable.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-o string   download directory
//	-s string   path of the local session database
//	-t int      request timeout (seconds)
//	-i int      terminal resize poll interval (milliseconds)
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "api_base": "https://api.example.org",
//	  "download_dir": "/home/me/Downloads",
//	  "session_db": "/home/me/.resumebook.db",
//	  "request_timeout": "30s",
//	  "resize_interval": "250ms",
//	  "log_level": "debug"
//	}
package config
