// Package config loads runtime configuration for the StoreConsole client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend address (host:port or URL)
//	-t string   transport: http or grpc
//	-s string   session storage: sqlite, file or memory
//	-f string   session database or file path
//	-w int      expiry warning lead time (minutes)
//	-i int      online status check interval (seconds)
//	-r int      request timeout (seconds)
//	-l int      default session lifetime (minutes)
//	-v          verbose logging
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_addr": "127.0.0.1:8080",
//	  "transport": "http",
//	  "session_backend": "sqlite",
//	  "session_path": "storeconsole.db",
//	  "expiry_warning": "5m",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_lifetime": "8h",
//	  "verbose": false
//	}
//
// This package does not read environment variables.
package config
