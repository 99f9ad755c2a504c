// Package audit stores the append-only audit trail.
package audit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, username, action, details string, at time.Time) error
	// List returns entries in insertion order. An empty username lists all.
	List(ctx context.Context, username string) ([]*models.AuditEntry, error)
}
