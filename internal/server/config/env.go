package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the node reads.
const EnvPrefix = "VAULT_"

// parseEnv overlays VAULT_* variables, after loading a .env file from the
// working directory if there is one. Malformed values panic.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	envString("GRPC_ADDR", &config.EndpointAddrGRPC)
	envString("DATABASE_DSN", &config.DatabaseDSN)
	envString("SECRET_KEY", &config.SecretKey)
	envString("PROGRAM_ID", &config.ProgramID)
	envString("LOG_LEVEL", &config.LogLevel)
	envString("S3_ROOT_USER", &config.S3RootUser)
	envString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	envString("S3_BUCKET", &config.S3Bucket)
	envString("S3_REGION", &config.S3Region)
	envString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	envDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	envDuration("REFRESH_TOKEN_TTL", &config.RefreshTokenValidityDuration)
	envDuration("TX_MAX_AGE", &config.TransactionMaxAge)
	envDuration("LOGIN_WINDOW", &config.LoginWindow)

	envUint("LAMPORTS_PER_SIGNATURE", &config.LamportsPerSignature)
	envUint("FAUCET_MAX_LAMPORTS", &config.FaucetMaxLamports)
	envBool("FAUCET_ENABLED", &config.FaucetEnabled)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return v, ok && v != ""
}

func envString(key string, dst *string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func envDuration(key string, dst *time.Duration) {
	if v, ok := lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		}
		*dst = d
	}
}

func envUint(key string, dst *uint64) {
	if v, ok := lookup(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		}
		*dst = n
	}
}

func envBool(key string, dst *bool) {
	if v, ok := lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
		}
		*dst = b
	}
}
