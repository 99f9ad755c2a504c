package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/logging"
	"github.com/dmitrijs2005/mcpclient/internal/server/metrics"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/repomanager"
)

// AuditLog is the append-only trail of security events.
type AuditLog struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewAuditLog(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AuditLog {
	return &AuditLog{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "audit"),
		now:         time.Now,
	}
}

func (a *AuditLog) Append(ctx context.Context, username, action, details string) error {
	if err := a.repomanager.Audit(a.db).Append(ctx, username, action, details, a.now()); err != nil {
		metrics.AuditWriteFailed()
		return fmt.Errorf("error writing audit entry: %w", err)
	}
	return nil
}

// Record appends an entry and only logs a failure. The state transition it
// describes has already been committed by then.
func (a *AuditLog) Record(ctx context.Context, username, action, details string) {
	if err := a.Append(ctx, username, action, details); err != nil {
		a.logger.Error(ctx, "audit write failed", "username", username, "action", action, "error", err)
	}
}

// Query returns entries oldest first, optionally for one username.
func (a *AuditLog) Query(ctx context.Context, username string) ([]*models.AuditEntry, error) {
	return a.repomanager.Audit(a.db).List(ctx, username)
}
