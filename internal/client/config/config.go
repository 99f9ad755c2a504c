package config

import "time"

// DefaultModel is the generation model used until the user picks another.
const DefaultModel = "llama3:latest"

// Config holds runtime settings for the MCP client CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OllamaURL: base URL of the generation provider.
//   - DefaultModel: model used when no selection is stored locally.
//   - LocalDBPath: SQLite file holding local preferences.
//   - OnlineCheckInterval: how often the client pings the server.
type Config struct {
	ServerEndpointAddr  string
	OllamaURL           string
	DefaultModel        string
	LocalDBPath         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OllamaURL = "http://localhost:11434"
	c.DefaultModel = DefaultModel
	c.LocalDBPath = "mcpclient.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
