package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mcpclient/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register asks for the account fields and creates the account. The role
// prompt may be left empty; the server decides the effective role.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.in, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}

	role, err := getSimpleText(a.in, "Enter role: user or admin (optional)", a.out)
	if err != nil {
		return err
	}

	id, err := a.auth.Register(ctx, username, password, email, role)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s with role %s\n", id.Username, id.Role)
	return nil
}

// Login authenticates the session. Lockout and invalid credential answers
// are returned to the REPL, which prints them as is.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	id, err := a.auth.Login(ctx, a.sess, username, password)
	if err != nil {
		var locked *common.AccountLockedError
		if errors.As(err, &locked) {
			a.logger.Warn(ctx, "login rejected, account locked", "username", username, "until", locked.Until)
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", id.Username, id.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx, a.sess); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Reset sets a new password for username without further verification.
func (a *App) Reset(ctx context.Context) error {
	username, err := getSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ResetPassword(ctx, username, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated.")
	return nil
}
