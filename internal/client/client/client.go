package client

import (
	"context"

	"github.com/dmitrijs2005/mcpclient/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, password, email, role string) (*models.Identity, error)
	Login(ctx context.Context, username, password string) (*models.Identity, error)
	Logout(ctx context.Context) error
	// ClearTokens forgets the local token pair without a server call.
	ClearTokens()
	ResetPassword(ctx context.Context, username, newPassword string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	AuditTrail(ctx context.Context, username string) ([]*models.AuditEntry, error)

	AddRecord(ctx context.Context, content string) (int64, error)
	ReadRecord(ctx context.Context, id int64) (string, error)
	UpdateRecord(ctx context.Context, id int64, content string) (int64, error)
	DeleteRecord(ctx context.Context, id int64) (int64, error)
	SearchRecords(ctx context.Context, query string) ([]*models.Record, error)
	ListRecords(ctx context.Context) ([]*models.Record, error)
	ExportRecords(ctx context.Context) (*models.ExportResult, error)
}
