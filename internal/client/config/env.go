package config

import "github.com/dmitrijs2005/mcpclient/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.EnvString(&cfg.OllamaURL, "OLLAMA_URL")
}
