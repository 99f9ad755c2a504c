package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Lockout policy shared by the server state machine and client messages.
const (
	MaxFailedAttempts = 5
	LockoutMinutes    = 10
)
