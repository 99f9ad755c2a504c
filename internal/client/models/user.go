// Package models defines the client-side views of server data.
package models

import "time"

// Identity is who the server says logged in.
type Identity struct {
	Username string
	Role     string
}

type User struct {
	Username       string
	Email          string
	Role           string
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

type AuditEntry struct {
	ID        int64
	Username  string
	Action    string
	Timestamp time.Time
	Details   string
}
