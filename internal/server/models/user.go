// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the durable security record of one account.
type User struct {
	Username       string
	PasswordHash   string
	Email          string
	Role           string
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

// IsLocked reports whether a lock is active at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// FailureResult is what a recorded failed login left behind.
type FailureResult struct {
	FailedAttempts int
	LockedUntil    *time.Time
	JustLocked     bool
	// AlreadyLocked means a lock was active and the counter was not touched.
	AlreadyLocked bool
}
