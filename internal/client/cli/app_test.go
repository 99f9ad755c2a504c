package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
)

func TestIsLoggedIn_FollowsSession(t *testing.T) {
	app := newTestApp(t, "")
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false for a new session")
	}

	app.sess.Authenticate("alice", common.RoleUser)
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true after authentication")
	}
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.setMode(ctx, ModeOnline)
	if app.Mode() != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.Mode())
	}
	app.setMode(ctx, ModeOnline)
	if n := app.logger.count("switched mode"); n != 1 {
		t.Fatalf("expected one log line for repeated mode, got %d", n)
	}

	app.setMode(ctx, ModeOffline)
	if app.Mode() != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.Mode())
	}
	if n := app.logger.count("switched mode"); n != 2 {
		t.Fatalf("expected a log line on switch to offline, got %d", n)
	}
}

func TestCheckOnline(t *testing.T) {
	app := newTestApp(t, "")
	ctx := context.Background()

	app.checkOnline(ctx)
	if app.Mode() != ModeOnline {
		t.Fatalf("expected online, got %q", app.Mode())
	}

	app.auth.pingErr = errors.New("unavailable")
	app.checkOnline(ctx)
	if app.Mode() != ModeOffline {
		t.Fatalf("expected offline, got %q", app.Mode())
	}
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	app := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}

	app.auth.mu.Lock()
	calls := app.auth.pingCalled
	app.auth.mu.Unlock()
	if calls < 2 {
		t.Fatalf("expected repeated pings, got %d", calls)
	}
}

func TestGetStatus(t *testing.T) {
	app := newTestApp(t, "")
	if got := app.getStatus(); got != "" {
		t.Fatalf("want empty status, got %q", got)
	}

	app.sess.Authenticate("alice", common.RoleAdmin)
	app.setMode(context.Background(), ModeOnline)
	if got, want := app.getStatus(), "(alice admin online)"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	until := time.Date(2025, 1, 1, 14, 5, 0, 0, time.Local)
	app.sess.Lock(until)
	if got, want := app.getStatus(), "(locked until 14:05 online)"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
