// Package users declares the server-side repository contract for account
// security records and its PostgreSQL implementation.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type Repository interface {
	// Lock takes a table lock that serialises concurrent account creation.
	// It must be called inside a transaction.
	Lock(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// Create returns common.ErrDuplicateUser when the username is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByUsername returns common.ErrorNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// IncrementFailedAttempts bumps the counter in one statement and sets
	// locked_until to lockUntil once the new count reaches threshold. A row
	// whose lock is still active at now is left alone and reported with
	// AlreadyLocked.
	IncrementFailedAttempts(ctx context.Context, username string, now time.Time, threshold int, lockUntil time.Time) (*models.FailureResult, error)
	// ResetFailedAttempts clears the counter unless a lock is active at now
	// and returns the number of rows changed.
	ResetFailedAttempts(ctx context.Context, username string, now time.Time) (int64, error)
	UpdatePasswordHash(ctx context.Context, username string, hash string) (int64, error)
}
