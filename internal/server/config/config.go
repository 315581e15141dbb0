// Package config handles configuration for the vault node: defaults, then an
// optional JSON or YAML file, then environment variables, then command-line
// flags. Each layer overrides the previous one.
package config

import "time"

// Config holds runtime settings for the vault node.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps the ledger in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - ProgramID: base58 id of the vault program; every vault address is derived under it.
//   - LamportsPerSignature: transaction fee.
//   - TransactionMaxAge: accepted drift of a transaction timestamp.
//   - FaucetEnabled / FaucetMaxLamports: devnet-style airdrops.
//   - LoginWindow: accepted drift of a signed login challenge.
//   - S3*: receipt archive. An empty bucket disables archiving.
type Config struct {
	EndpointAddrGRPC             string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	ProgramID                    string
	LamportsPerSignature         uint64
	TransactionMaxAge            time.Duration
	FaucetEnabled                bool
	FaucetMaxLamports            uint64
	LoginWindow                  time.Duration
	LogLevel                     string
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
}

// DefaultProgramID is the id the vault program is deployed under unless
// configured otherwise.
const DefaultProgramID = "8ZYbvge282tfWmbg5MtDaWTicbbj46zDT8HKynnvC9Qn"

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = ""
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 1 * time.Minute
	c.RefreshTokenValidityDuration = 3 * time.Minute
	c.ProgramID = DefaultProgramID
	c.LamportsPerSignature = 5000
	c.TransactionMaxAge = 2 * time.Minute
	c.FaucetEnabled = true
	c.FaucetMaxLamports = 2_000_000_000
	c.LoginWindow = 30 * time.Second
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config from defaults, an optional config file, the
// environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
