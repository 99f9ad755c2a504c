// Package proto declares the wire contract between the MCP client and
// server: request and response messages, the gRPC service description and
// a typed client stub. Messages travel as JSON (see CodecName).
package proto

import "time"

// Login outcomes carried in LoginResponse.Outcome.
const (
	LoginOutcomeOK      = "ok"
	LoginOutcomeInvalid = "invalid"
	LoginOutcomeLocked  = "locked"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Outcome          string    `json:"outcome"`
	AccessToken      string    `json:"access_token,omitempty"`
	RefreshToken     string    `json:"refresh_token,omitempty"`
	Username         string    `json:"username,omitempty"`
	Role             string    `json:"role,omitempty"`
	AttemptsLeft     int       `json:"attempts_left,omitempty"`
	LockedUntil      time.Time `json:"locked_until"`
	RemainingMinutes int       `json:"remaining_minutes,omitempty"`
	JustLocked       bool      `json:"just_locked,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordResponse struct{}

type User struct {
	Username       string     `json:"username"`
	Email          string     `json:"email,omitempty"`
	Role           string     `json:"role"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type AuditEntry struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

type AuditTrailRequest struct {
	Username string `json:"username,omitempty"`
}

type AuditTrailResponse struct {
	Entries []*AuditEntry `json:"entries"`
}

type Record struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type AddRecordRequest struct {
	Content string `json:"content"`
}

type AddRecordResponse struct {
	ID int64 `json:"id"`
}

type ReadRecordRequest struct {
	ID int64 `json:"id"`
}

type ReadRecordResponse struct {
	Content string `json:"content"`
}

type UpdateRecordRequest struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

type DeleteRecordRequest struct {
	ID int64 `json:"id"`
}

type RowsAffectedResponse struct {
	RowsAffected int64 `json:"rows_affected"`
}

type SearchRecordsRequest struct {
	Query string `json:"query"`
}

type ListRecordsRequest struct{}

type RecordsResponse struct {
	Records []*Record `json:"records"`
}

type ExportRecordsRequest struct{}

type ExportRecordsResponse struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}
