package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/mcpclient/internal/client/client"
	"github.com/dmitrijs2005/mcpclient/internal/client/config"
	"github.com/dmitrijs2005/mcpclient/internal/client/ollama"
	"github.com/dmitrijs2005/mcpclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcpclient/internal/client/services"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/guardrail"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

// Bootstrap opens the local database, connects to the server and the
// generation provider, and returns an App reading from stdin.
func Bootstrap(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.LocalDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewMCPClientService(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sess := session.New(c.DefaultModel)

	settings := services.NewSettingsService(metadata.NewSQLiteRepository(db))
	if err := settings.LoadModel(ctx, sess); err != nil {
		logger.Warn(ctx, "failed to load stored model", "error", err)
	}

	generator := ollama.NewClient(c.OllamaURL, ollama.DefaultRequestsPerSecond, ollama.DefaultBurst, logger)

	as := services.NewAuthService(apiClient, logger)
	qs := services.NewQueryService(generator, apiClient, guardrail.New(), logger)
	rs := services.NewRecordService(apiClient, "")

	app := NewApp(c, sess, as, qs, rs, settings, logger, os.Stdin, os.Stdout)
	app.closeDB = db.Close
	return app, nil
}
