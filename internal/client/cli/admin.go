package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Users prints every account. Admin only.
func (a *App) Users(ctx context.Context) error {
	users, err := a.auth.ListUsers(ctx, a.sess)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tEMAIL\tFAILED\tLOCKED UNTIL\tCREATED")
	for _, u := range users {
		locked := "-"
		if u.LockedUntil != nil && u.LockedUntil.After(time.Now()) {
			locked = u.LockedUntil.Local().Format(timeLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			u.Username, u.Role, u.Email, u.FailedAttempts, locked, u.CreatedAt.Local().Format(timeLayout))
	}
	return w.Flush()
}

// Audit prints the audit log, optionally filtered to one user. Admin only.
func (a *App) Audit(ctx context.Context, args string) error {
	entries, err := a.auth.AuditTrail(ctx, a.sess, args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tUSERNAME\tACTION\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), e.Username, e.Action, e.Details)
	}
	return w.Flush()
}
