// Package config loads runtime configuration for ledgerctl.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config.
//  3. Command-line flags, applied by the cli package on top of Load.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:3200",
//	  "access_token": "eyJhbGciOi...",
//	  "timeout": "10s"
//	}
package config
