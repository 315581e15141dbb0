package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/lamportvault/internal/flagx"
	"github.com/dmitrijs2005/lamportvault/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration so files may say "90s" or give nanoseconds. Zero values do
// not override what is already set.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	ProgramID                    string         `json:"program_id" yaml:"program_id"`
	LamportsPerSignature         uint64         `json:"lamports_per_signature" yaml:"lamports_per_signature"`
	TransactionMaxAge            timex.Duration `json:"transaction_max_age" yaml:"transaction_max_age"`
	FaucetEnabled                *bool          `json:"faucet_enabled" yaml:"faucet_enabled"`
	FaucetMaxLamports            uint64         `json:"faucet_max_lamports" yaml:"faucet_max_lamports"`
	LoginWindow                  timex.Duration `json:"login_window" yaml:"login_window"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. A missing flag
// leaves config untouched; an unreadable or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ProgramID, c.ProgramID)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.TransactionMaxAge.Duration != 0 {
		config.TransactionMaxAge = c.TransactionMaxAge.Duration
	}
	if c.LoginWindow.Duration != 0 {
		config.LoginWindow = c.LoginWindow.Duration
	}
	if c.LamportsPerSignature != 0 {
		config.LamportsPerSignature = c.LamportsPerSignature
	}
	if c.FaucetMaxLamports != 0 {
		config.FaucetMaxLamports = c.FaucetMaxLamports
	}
	if c.FaucetEnabled != nil {
		config.FaucetEnabled = *c.FaucetEnabled
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
