package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
	"github.com/dmitrijs2005/mcpclient/internal/server/auth"
	"github.com/dmitrijs2005/mcpclient/internal/server/config"
	"github.com/dmitrijs2005/mcpclient/internal/server/metrics"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/notify"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/repomanager"
)

const notifyTimeout = 30 * time.Second

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Session is what a successful login or token refresh hands back.
type Session struct {
	Username string
	Role     string
	Tokens   TokenPair
}

// UserService drives the account lifecycle: registration, the login state
// machine, password reset, token rotation and the admin views.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	credentials                  *CredentialStore
	audit                        *AuditLog
	notifier                     notify.Notifier
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
	wg                           sync.WaitGroup
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, credentials *CredentialStore, audit *AuditLog,
	notifier notify.Notifier, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		credentials:                  credentials,
		audit:                        audit,
		notifier:                     notifier,
		logger:                       logger.With("module", "users"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

func required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return &common.ValidationError{Field: fields[i]}
		}
	}
	return nil
}

// Register creates an account. Only an admin caller can choose the role of
// anything but the first account.
func (s *UserService) Register(ctx context.Context, username, password, email, requestedRole string, callerIsAdmin bool) (*models.User, error) {
	if err := required("username", username, "password", password); err != nil {
		return nil, err
	}

	user, err := s.credentials.Create(ctx, username, password, email, requestedRole, callerIsAdmin)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", user.Username, "role", user.Role)
	s.audit.Record(ctx, user.Username, models.ActionRegister, "role="+user.Role)

	s.notifyAsync(user.Email,
		"Welcome to MCP Client",
		fmt.Sprintf("Hello %s,\n\nYour account has been created.\nRole: %s\n", user.Username, user.Role))

	return user, nil
}

// Login runs the lockout state machine. Failures come back as
// *common.InvalidCredentialsError or *common.AccountLockedError.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := required("username", username, "password", password); err != nil {
		return nil, err
	}

	now := s.now()

	user, err := s.credentials.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNoSuchUser) {
			return nil, s.unknownUser(ctx, username)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if user.IsLocked(now) {
		return nil, s.lockedOut(ctx, username, now, *user.LockedUntil)
	}

	result, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}

	switch result {
	case VerifyNoSuchUser:
		return nil, s.unknownUser(ctx, username)

	case VerifyInvalid:
		failure, err := s.credentials.RecordFailure(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("error recording failed attempt: %w", err)
		}
		if failure.AlreadyLocked && failure.LockedUntil != nil {
			return nil, s.lockedOut(ctx, username, now, *failure.LockedUntil)
		}

		if failure.JustLocked {
			until := now.Add(common.LockoutMinutes * time.Minute)
			if failure.LockedUntil != nil {
				until = *failure.LockedUntil
			}
			metrics.AccountLocked()
			metrics.LoginAttempt(metrics.LoginLocked)
			s.logger.Warn(ctx, "account locked", "username", username, "until", until)
			s.audit.Record(ctx, username, models.ActionLoginFailed,
				fmt.Sprintf("wrong password, account locked until %s", until.UTC().Format(time.RFC3339)))
			return nil, &common.AccountLockedError{
				Until:            until,
				RemainingMinutes: common.LockoutMinutes,
				JustLocked:       true,
			}
		}

		metrics.LoginAttempt(metrics.LoginInvalid)
		s.audit.Record(ctx, username, models.ActionLoginFailed,
			fmt.Sprintf("wrong password, attempt %d", failure.FailedAttempts))
		return nil, &common.InvalidCredentialsError{AttemptsLeft: common.MaxFailedAttempts - failure.FailedAttempts}
	}

	if err := s.credentials.RecordSuccess(ctx, username); err != nil {
		var locked *common.AccountLockedError
		if errors.As(err, &locked) {
			return nil, s.lockedOut(ctx, username, now, locked.Until)
		}
		return nil, fmt.Errorf("error resetting failed attempts: %w", err)
	}

	tokens, err := s.generateTokenPair(ctx, s.db, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttempt(metrics.LoginOK)
	s.audit.Record(ctx, username, models.ActionLogin, "")

	return &Session{Username: user.Username, Role: user.Role, Tokens: *tokens}, nil
}

// lockedOut rejects a login against an active lock without touching the
// counter.
func (s *UserService) lockedOut(ctx context.Context, username string, now, until time.Time) error {
	metrics.LoginAttempt(metrics.LoginLocked)
	s.audit.Record(ctx, username, models.ActionLoginFailed, "account locked")
	return &common.AccountLockedError{
		Until:            until,
		RemainingMinutes: common.RemainingLockMinutes(now, until),
	}
}

func (s *UserService) unknownUser(ctx context.Context, username string) error {
	metrics.LoginAttempt(metrics.LoginUnknownUser)
	s.audit.Record(ctx, username, models.ActionLoginFailed, "unknown user")
	return &common.InvalidCredentialsError{AttemptsLeft: -1}
}

// ResetPassword overwrites the password of an existing account and revokes
// its refresh tokens.
func (s *UserService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if err := required("username", username, "new password", newPassword); err != nil {
		return err
	}

	if err := s.credentials.SetPassword(ctx, username, newPassword); err != nil {
		return err
	}

	if _, err := s.repomanager.RefreshTokens(s.db).DeleteByUsername(ctx, username); err != nil {
		s.logger.Warn(ctx, "failed to revoke refresh tokens", "username", username, "error", err)
	}

	s.audit.Record(ctx, username, models.ActionPasswordReset, "")

	user, err := s.credentials.Lookup(ctx, username)
	if err != nil {
		s.logger.Warn(ctx, "failed to load user for reset notification", "username", username, "error", err)
		return nil
	}

	s.notifyAsync(user.Email,
		"MCP Client Password Reset",
		fmt.Sprintf("Hello %s,\n\nYour password has been reset. If you did not request this, please contact support.", user.Username))

	return nil
}

// Logout revokes one refresh token of username. A token owned by another
// account is left alone.
func (s *UserService) Logout(ctx context.Context, username, refreshToken string) error {
	if refreshToken != "" {
		if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken, username); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
	}
	s.audit.Record(ctx, username, models.ActionLogout, "")
	return nil
}

// RefreshToken validates a refresh token, rotates it transactionally and
// returns a fresh pair. The role is re-read so promotions take effect.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(s.now()) {
		if err := repo.Delete(ctx, refreshToken, token.Username); err != nil {
			s.logger.Warn(ctx, "failed to delete expired refresh token", "error", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.credentials.Lookup(ctx, token.Username)
	if err != nil {
		return nil, err
	}

	var tokens *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken, token.Username); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokens, err = s.generateTokenPair(ctx, tx, user.Username, user.Role)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Session{Username: user.Username, Role: user.Role, Tokens: *tokens}, nil
}

func (s *UserService) ListUsers(ctx context.Context, caller models.Principal) ([]*models.User, error) {
	if !caller.IsAdmin() {
		return nil, common.ErrForbidden
	}

	users, err := s.credentials.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	s.audit.Record(ctx, caller.Username, models.ActionAdminListUsers, "")
	return users, nil
}

func (s *UserService) AuditTrail(ctx context.Context, caller models.Principal, username string) ([]*models.AuditEntry, error) {
	if !caller.IsAdmin() {
		return nil, common.ErrForbidden
	}

	entries, err := s.audit.Query(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error reading audit log: %w", err)
	}

	details := ""
	if username != "" {
		details = "filter=" + username
	}
	s.audit.Record(ctx, caller.Username, models.ActionAdminViewAudit, details)

	return entries, nil
}

// Drain blocks until every pending notification has finished.
func (s *UserService) Drain() {
	s.wg.Wait()
}

func (s *UserService) notifyAsync(to, subject, body string) {
	if to == "" || s.notifier == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		metrics.Notification(s.notifier.Notify(ctx, to, subject, body))
	}()
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, username, role string) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(username, role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	err = s.repomanager.RefreshTokens(db).Create(ctx, username, refreshToken, s.now().Add(s.refreshTokenValidityDuration))
	if err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
