// Package records stores the plain-text records that conversations are
// persisted into.
package records

import (
	"context"

	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type Repository interface {
	Add(ctx context.Context, content string) (int64, error)
	// Get returns common.ErrorNotFound when absent.
	Get(ctx context.Context, id int64) (*models.Record, error)
	Update(ctx context.Context, id int64, content string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// Search matches substrings literally, so % and _ carry no meaning.
	Search(ctx context.Context, text string) ([]*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
}
