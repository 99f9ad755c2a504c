// Package common defines shared constants, sentinel errors and typed errors
// used across client and server layers. Callers should use errors.Is and
// errors.As to match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Account errors.
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("username already exists")
	ErrNoSuchUser         = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account locked")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidCredentialsError is returned for both unknown users and wrong
// passwords. AttemptsLeft is negative when the count is not reported.
type InvalidCredentialsError struct {
	AttemptsLeft int
}

func (e *InvalidCredentialsError) Error() string {
	if e.AttemptsLeft > 0 {
		return fmt.Sprintf("invalid username or password, %d attempts left before lockout", e.AttemptsLeft)
	}
	return ErrInvalidCredentials.Error()
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// AccountLockedError is returned while a lock is active and when a failed
// attempt crosses the lockout threshold (JustLocked).
type AccountLockedError struct {
	Until            time.Time
	RemainingMinutes int
	JustLocked       bool
}

func (e *AccountLockedError) Error() string {
	if e.JustLocked {
		return fmt.Sprintf("account locked due to too many failed attempts, try again in %d minutes", e.RemainingMinutes)
	}
	return fmt.Sprintf("account locked, try again in %d minutes", e.RemainingMinutes)
}

func (e *AccountLockedError) Unwrap() error {
	return ErrAccountLocked
}

// RemainingLockMinutes returns the whole minutes left until until, rounded
// up so that a lock with any time left reports at least one minute.
func RemainingLockMinutes(now, until time.Time) int {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining/time.Minute) + 1
}
