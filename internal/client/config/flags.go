package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the
// flags known here are kept (flagx.FilterArgs); bad values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-m", "-l", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.OllamaURL, "o", cfg.OllamaURL, "base URL of the Ollama server")
	fs.StringVar(&cfg.DefaultModel, "m", cfg.DefaultModel, "default generation model")
	fs.StringVar(&cfg.LocalDBPath, "l", cfg.LocalDBPath, "local database path")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
