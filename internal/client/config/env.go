package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "VAULT_"

// parseEnv overlays VAULT_SERVER_ADDR, VAULT_ONLINE_CHECK_INTERVAL,
// VAULT_KEY_FILE and VAULT_JOURNAL_DSN.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envPrefix + "SERVER_ADDR"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv(envPrefix + "ONLINE_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%sONLINE_CHECK_INTERVAL: %w", envPrefix, err))
		}
		cfg.OnlineCheckInterval = d
	}
	if v := os.Getenv(envPrefix + "KEY_FILE"); v != "" {
		cfg.KeyFile = v
	}
	if v := os.Getenv(envPrefix + "JOURNAL_DSN"); v != "" {
		cfg.JournalDSN = v
	}
}
