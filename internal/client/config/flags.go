package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   node address
//	-i int      online check interval, seconds
//	-k string   key file
//	-j string   journal DSN
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "wallet key file")
	fs.StringVar(&cfg.JournalDSN, "j", cfg.JournalDSN, "receipt journal sqlite DSN")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
