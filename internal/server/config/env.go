package config

import "github.com/dmitrijs2005/mcpclient/internal/flagx"

// parseEnv reads the SMTP relay settings. A malformed SMTP_PORT panics,
// like a malformed flag.
func parseEnv(config *Config) {
	flagx.EnvString(&config.SMTPHost, "SMTP_HOST")
	flagx.EnvString(&config.SMTPUser, "SMTP_USER")
	flagx.EnvString(&config.SMTPPassword, "SMTP_PASS")
	flagx.EnvString(&config.SMTPFrom, "SMTP_FROM")
	if err := flagx.EnvInt(&config.SMTPPort, "SMTP_PORT"); err != nil {
		panic(err)
	}
}
