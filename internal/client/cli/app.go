package cli

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/client/config"
	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/services"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type queryHandler interface {
	Handle(ctx context.Context, sess *session.Session, query string, onFragment func(string)) (*services.Result, error)
}

type recordStore interface {
	Add(ctx context.Context, sess *session.Session, content string) (int64, error)
	Read(ctx context.Context, sess *session.Session, id int64) (string, error)
	Update(ctx context.Context, sess *session.Session, id int64, content string) (int64, error)
	Delete(ctx context.Context, sess *session.Session, id int64) (int64, error)
	Search(ctx context.Context, sess *session.Session, text string) ([]*models.Record, error)
	List(ctx context.Context, sess *session.Session) ([]*models.Record, error)
	Export(ctx context.Context, sess *session.Session) (*services.ExportedFile, error)
}

type modelSettings interface {
	Models() []string
	SelectModel(ctx context.Context, sess *session.Session, model string) error
}

type App struct {
	config   *config.Config
	auth     services.AuthService
	query    queryHandler
	records  recordStore
	settings modelSettings
	sess     *session.Session
	logger   logging.Logger

	in  *bufio.Scanner
	out io.Writer

	closeDB func() error

	mu   sync.Mutex
	mode Mode
}

// NewApp assembles the CLI around an existing session. Commands read
// follow-up input from in and write to out.
func NewApp(c *config.Config, sess *session.Session, as services.AuthService, qs queryHandler,
	rs recordStore, ss modelSettings, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		auth:     as,
		query:    qs,
		records:  rs,
		settings: ss,
		sess:     sess,
		logger:   logger.With("module", "cli"),
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.auth.Close(ctx); err != nil {
			a.logger.Warn(ctx, "failed to close server connection", "error", err)
		}
		if a.closeDB != nil {
			_ = a.closeDB()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sess.IsAuthenticated()
}

// checkOnline pings the server once and records the resulting mode.
func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
