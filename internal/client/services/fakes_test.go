package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/ollama"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	RegisterErr  error
	LoginID      *models.Identity
	LoginErr     error
	LogoutErr    error
	LogoutCalled bool
	Cleared      int
	ResetErr     error
	PingErr      error

	Users   []*models.User
	Audit   []*models.AuditEntry
	AuditOf string

	Added   []string
	AddErr  error
	Records []*models.Record
	Export  *models.ExportResult
	LastID  int64
	Query   *string
}

func (f *fakeClient) Close() error                 { return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, username, password, email, role string) (*models.Identity, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.Identity{Username: username, Role: "user"}, nil
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	return f.LoginID, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalled = true
	return f.LogoutErr
}

func (f *fakeClient) ClearTokens() { f.Cleared++ }

func (f *fakeClient) ResetPassword(ctx context.Context, username, newPassword string) error {
	return f.ResetErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]*models.User, error) {
	return f.Users, nil
}

func (f *fakeClient) AuditTrail(ctx context.Context, username string) ([]*models.AuditEntry, error) {
	f.AuditOf = username
	return f.Audit, nil
}

func (f *fakeClient) AddRecord(ctx context.Context, content string) (int64, error) {
	if f.AddErr != nil {
		return 0, f.AddErr
	}
	f.Added = append(f.Added, content)
	return int64(len(f.Added)), nil
}

func (f *fakeClient) ReadRecord(ctx context.Context, id int64) (string, error) {
	f.LastID = id
	return "content", nil
}

func (f *fakeClient) UpdateRecord(ctx context.Context, id int64, content string) (int64, error) {
	f.LastID = id
	return 1, nil
}

func (f *fakeClient) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	f.LastID = id
	return 0, nil
}

func (f *fakeClient) SearchRecords(ctx context.Context, query string) ([]*models.Record, error) {
	f.Query = &query
	return f.Records, nil
}

func (f *fakeClient) ListRecords(ctx context.Context) ([]*models.Record, error) {
	return f.Records, nil
}

func (f *fakeClient) ExportRecords(ctx context.Context) (*models.ExportResult, error) {
	if f.Export == nil {
		return nil, errors.New("no export configured")
	}
	return f.Export, nil
}

// sliceStream replays fragments and then err.
type sliceStream struct {
	fragments []string
	err       error
	i         int
	cur       string
	closed    bool
}

func (s *sliceStream) Next() bool {
	if s.i >= len(s.fragments) {
		return false
	}
	s.cur = s.fragments[s.i]
	s.i++
	return true
}

func (s *sliceStream) Fragment() string { return s.cur }
func (s *sliceStream) Err() error       { return s.err }
func (s *sliceStream) Close() error     { s.closed = true; return nil }

type fakeGenerator struct {
	stream     *sliceStream
	err        error
	lastModel  string
	lastPrompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, model, prompt string) (ollama.FragmentStream, error) {
	g.lastModel = model
	g.lastPrompt = prompt
	if g.err != nil {
		return nil, g.err
	}
	return g.stream, nil
}
