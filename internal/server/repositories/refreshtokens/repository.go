// Package refreshtokens declares the repository contract for refresh tokens
// and its PostgreSQL implementation.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, username string, token string, expires time.Time) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes one token owned by username. Deleting a missing or
	// foreign token is not an error and changes nothing.
	Delete(ctx context.Context, token, username string) error

	// DeleteByUsername revokes every session of the account.
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}
