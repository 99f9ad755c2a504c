// Package services contains the server-side business logic: the credential
// store and login state machine, the audit log, the record store and record
// export.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

type VerifyResult int

const (
	VerifyNoSuchUser VerifyResult = iota
	VerifyInvalid
	VerifyValid
)

func (v VerifyResult) String() string {
	switch v {
	case VerifyValid:
		return "valid"
	case VerifyInvalid:
		return "invalid"
	default:
		return "no such user"
	}
}

// AdminBootstrapPolicy decides the role of a new account. The very first
// account is always an admin; afterwards only an admin caller may choose the
// role.
func AdminBootstrapPolicy(existingUsers int64, requestedRole string, callerIsAdmin bool) string {
	if existingUsers == 0 {
		return common.RoleAdmin
	}
	if callerIsAdmin && requestedRole == common.RoleAdmin {
		return common.RoleAdmin
	}
	return common.RoleUser
}

// CredentialStore owns the durable security record of every account.
type CredentialStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
	now         func() time.Time
}

func NewCredentialStore(db *sql.DB, m repomanager.RepositoryManager, bcryptCost int) *CredentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialStore{
		db:          db,
		repomanager: m,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

func (s *CredentialStore) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(h), nil
}

// Create stores a new account. The user count, role decision and insert run
// under a table lock so two concurrent first registrations cannot both
// become admin.
func (s *CredentialStore) Create(ctx context.Context, username, password, email, requestedRole string, callerIsAdmin bool) (*models.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	var created *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := repo.Lock(ctx); err != nil {
			return err
		}

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.User{
			Username:     username,
			PasswordHash: hash,
			Email:        email,
			Role:         AdminBootstrapPolicy(count, requestedRole, callerIsAdmin),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Lookup returns common.ErrNoSuchUser for an unknown username.
func (s *CredentialStore) Lookup(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoSuchUser
		}
		return nil, err
	}
	return user, nil
}

// Verify checks a password without touching the failure counter.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (VerifyResult, error) {
	user, err := s.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNoSuchUser) {
			return VerifyNoSuchUser, nil
		}
		return VerifyNoSuchUser, err
	}
	return checkPassword(user.PasswordHash, password), nil
}

func checkPassword(hash, password string) VerifyResult {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return VerifyInvalid
	}
	return VerifyValid
}

// RecordFailure bumps the failure counter atomically and arms the lock when
// the threshold is reached. The counter is only bumped while not locked;
// otherwise the result carries AlreadyLocked.
func (s *CredentialStore) RecordFailure(ctx context.Context, username string) (*models.FailureResult, error) {
	now := s.now()
	lockUntil := now.Add(common.LockoutMinutes * time.Minute)

	res, err := s.repomanager.Users(s.db).IncrementFailedAttempts(ctx, username, now, common.MaxFailedAttempts, lockUntil)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoSuchUser
		}
		return nil, err
	}
	return res, nil
}

// RecordSuccess clears the failure counter. A lock armed after the caller
// checked it is kept and reported as *common.AccountLockedError.
func (s *CredentialStore) RecordSuccess(ctx context.Context, username string) error {
	now := s.now()

	n, err := s.repomanager.Users(s.db).ResetFailedAttempts(ctx, username, now)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	user, err := s.Lookup(ctx, username)
	if err != nil {
		return err
	}
	if user.IsLocked(now) {
		return &common.AccountLockedError{
			Until:            *user.LockedUntil,
			RemainingMinutes: common.RemainingLockMinutes(now, *user.LockedUntil),
		}
	}
	return common.ErrNoSuchUser
}

// SetPassword replaces the password hash and nothing else.
func (s *CredentialStore) SetPassword(ctx context.Context, username, newPassword string) error {
	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}

	n, err := s.repomanager.Users(s.db).UpdatePasswordHash(ctx, username, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrNoSuchUser
	}
	return nil
}

func (s *CredentialStore) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}
