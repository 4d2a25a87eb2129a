// Package config loads runtime configuration for the passkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file named by --config (see (*Config).LoadFile).
//  3. Command-line flags bound by the cli package, which override earlier
//     values.
//
// # File schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "data_dir": "/home/me/.config/passkeeper",
//	  "request_timeout": "10s"
//	}
//
// The same keys are used in YAML files.
package config
