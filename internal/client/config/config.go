package config

import "time"

// Config holds runtime settings for the wallet CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the vault node gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - KeyFile: path of the passphrase-sealed wallet key.
//   - JournalDSN: sqlite DSN of the local receipt journal.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	KeyFile             string
	JournalDSN          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.KeyFile = "wallet.key"
	c.JournalDSN = "file:wallet.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
