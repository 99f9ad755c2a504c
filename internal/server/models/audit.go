package models

import "time"

// Audit actions.
const (
	ActionRegister       = "register"
	ActionLogin          = "login"
	ActionLoginFailed    = "login_failed"
	ActionLogout         = "logout"
	ActionPasswordReset  = "password_reset"
	ActionAdminListUsers = "admin_list_users"
	ActionAdminViewAudit = "admin_view_audit"
	ActionExportRecords  = "export_records"
)

// AuditEntry is one immutable row of the audit trail.
type AuditEntry struct {
	ID        int64
	Username  string
	Action    string
	Timestamp time.Time
	Details   string
}
