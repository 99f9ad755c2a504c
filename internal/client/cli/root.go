package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/client/session"
)

// getStatus renders the prompt status, e.g. "(alice admin online)" or
// "(locked until 14:05 offline)".
func (a *App) getStatus() string {
	var parts []string

	switch a.sess.State() {
	case session.Authenticated:
		parts = append(parts, a.sess.Username(), a.sess.Role())
	case session.Locked:
		parts = append(parts, "locked until "+a.sess.LockedUntil().Local().Format("15:04"))
	}

	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MCP client (type 'help' for commands)")

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(wctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.in)
}
