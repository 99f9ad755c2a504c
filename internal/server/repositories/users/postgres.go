package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lock(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, password_hash, email, role)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username) DO NOTHING
		 RETURNING created_at
		 `

	email := sql.NullString{String: user.Email, Valid: user.Email != ""}

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, email, user.Role).Scan(&user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const selectUser = `SELECT username, password_hash, email, role, failed_attempts, locked_until, created_at FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user        models.User
		email       sql.NullString
		lockedUntil sql.NullTime
	)
	if err := row.Scan(&user.Username, &user.PasswordHash, &email, &user.Role,
		&user.FailedAttempts, &lockedUntil, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.Email = email.String
	if lockedUntil.Valid {
		t := lockedUntil.Time
		user.LockedUntil = &t
	}
	return &user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY created_at, username`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) IncrementFailedAttempts(ctx context.Context, username string, now time.Time, threshold int, lockUntil time.Time) (*models.FailureResult, error) {
	query :=
		`UPDATE users
		 SET failed_attempts = failed_attempts + 1,
		     locked_until = CASE WHEN failed_attempts + 1 >= $2 THEN $3 ELSE locked_until END
		 WHERE username = $1 AND (locked_until IS NULL OR locked_until <= $4)
		 RETURNING failed_attempts, locked_until
		 `

	var (
		res         models.FailureResult
		lockedUntil sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, username, threshold, lockUntil, now).Scan(&res.FailedAttempts, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return r.lockState(ctx, username)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		res.LockedUntil = &t
	}
	res.JustLocked = res.FailedAttempts >= threshold

	return &res, nil
}

// lockState explains an increment that matched no row: either the user is
// gone or a lock is active.
func (r *PostgresRepository) lockState(ctx context.Context, username string) (*models.FailureResult, error) {
	var (
		res         models.FailureResult
		lockedUntil sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `SELECT failed_attempts, locked_until FROM users WHERE username = $1`, username).
		Scan(&res.FailedAttempts, &lockedUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if lockedUntil.Valid {
		t := lockedUntil.Time
		res.LockedUntil = &t
	}
	res.AlreadyLocked = true

	return &res, nil
}

func (r *PostgresRepository) ResetFailedAttempts(ctx context.Context, username string, now time.Time) (int64, error) {
	query := `UPDATE users SET failed_attempts = 0, locked_until = NULL
		WHERE username = $1 AND (locked_until IS NULL OR locked_until <= $2)`
	return dbx.RowsAffected(r.db.ExecContext(ctx, query, username, now))
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, username string, hash string) (int64, error) {
	query := `UPDATE users SET password_hash = $2 WHERE username = $1`
	return dbx.RowsAffected(r.db.ExecContext(ctx, query, username, hash))
}
