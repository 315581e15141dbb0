// Package config loads runtime configuration for the wallet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. VAULT_* environment variables, after an optional .env file.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the vault node gRPC endpoint
//	-i int      online status check interval (seconds)
//	-k string   wallet key file
//	-j string   sqlite DSN of the receipt journal
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "key_file": "wallet.key",
//	  "journal_dsn": "file:wallet.db"
//	}
package config
