// Package services contains the application services behind the CLI
// commands: authentication, the query pipeline, records and settings.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/client/client"
	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

// AuthService drives the session state machine from server answers.
//
// Login moves the session to Authenticated on success, to Locked when the
// account is locked and back to Anonymous on invalid credentials. Logout
// always ends Anonymous with an empty conversation.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*models.Identity, error)
	Login(ctx context.Context, sess *session.Session, username, password string) (*models.Identity, error)
	Logout(ctx context.Context, sess *session.Session) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	ListUsers(ctx context.Context, sess *session.Session) ([]*models.User, error)
	AuditTrail(ctx context.Context, sess *session.Session, username string) ([]*models.AuditEntry, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	logger logging.Logger
}

func NewAuthService(c client.Client, logger logging.Logger) AuthService {
	return &authService{client: c, logger: logger.With("module", "auth")}
}

func requireFields(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return &common.ValidationError{Field: fields[i]}
		}
	}
	return nil
}

func (a *authService) Register(ctx context.Context, username, password, email, role string) (*models.Identity, error) {
	if err := requireFields("username", username, "password", password); err != nil {
		return nil, err
	}
	return a.client.Register(ctx, username, password, email, role)
}

func (a *authService) Login(ctx context.Context, sess *session.Session, username, password string) (*models.Identity, error) {
	if err := requireFields("username", username, "password", password); err != nil {
		return nil, err
	}

	id, err := a.client.Login(ctx, username, password)
	if err != nil {
		var locked *common.AccountLockedError
		var invalid *common.InvalidCredentialsError
		switch {
		case errors.As(err, &locked):
			a.client.ClearTokens()
			sess.Lock(locked.Until)
		case errors.As(err, &invalid):
			a.client.ClearTokens()
			sess.Reset()
		}
		return nil, err
	}

	sess.Authenticate(id.Username, id.Role)
	a.logger.Info(ctx, "logged in", "session", sess.ID(), "username", id.Username, "role", id.Role)
	return id, nil
}

func (a *authService) Logout(ctx context.Context, sess *session.Session) error {
	if !sess.IsAuthenticated() {
		a.client.ClearTokens()
		sess.Reset()
		return nil
	}

	err := a.client.Logout(ctx)
	sess.Reset()
	if err != nil {
		a.logger.Warn(ctx, "server logout failed", "session", sess.ID(), "error", err)
	}
	return err
}

func (a *authService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if err := requireFields("username", username, "new password", newPassword); err != nil {
		return err
	}
	return a.client.ResetPassword(ctx, username, newPassword)
}

func requireAdmin(sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return common.ErrorUnauthorized
	}
	if !sess.IsAdmin() {
		return common.ErrForbidden
	}
	return nil
}

func (a *authService) ListUsers(ctx context.Context, sess *session.Session) ([]*models.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return a.client.ListUsers(ctx)
}

func (a *authService) AuditTrail(ctx context.Context, sess *session.Session, username string) ([]*models.AuditEntry, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return a.client.AuditTrail(ctx, username)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
