package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginSuccessAuthenticates(t *testing.T) {
	fc := &fakeClient{LoginID: &models.Identity{Username: "alice", Role: common.RoleAdmin}}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("llama3:latest")

	id, err := a.Login(context.Background(), sess, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, session.Authenticated, sess.State())
	assert.True(t, sess.IsAdmin())
}

func TestAuth_LoginLockedMovesToLocked(t *testing.T) {
	until := time.Date(2025, 3, 1, 10, 10, 0, 0, time.UTC)
	fc := &fakeClient{LoginErr: &common.AccountLockedError{Until: until, RemainingMinutes: 10, JustLocked: true}}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("m")

	_, err := a.Login(context.Background(), sess, "alice", "bad")
	var locked *common.AccountLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, session.Locked, sess.State())
	assert.Equal(t, until, sess.LockedUntil())
}

func TestAuth_LoginInvalidResetsToAnonymous(t *testing.T) {
	fc := &fakeClient{LoginErr: &common.InvalidCredentialsError{AttemptsLeft: 4}}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("m")
	sess.Lock(time.Now().Add(time.Minute))

	_, err := a.Login(context.Background(), sess, "alice", "bad")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, session.Anonymous, sess.State())
}

func TestAuth_RejectedLoginDropsPreviousCredentials(t *testing.T) {
	rejections := []error{
		&common.InvalidCredentialsError{AttemptsLeft: 4},
		&common.AccountLockedError{Until: time.Now().Add(10 * time.Minute), RemainingMinutes: 10},
	}

	for _, rejection := range rejections {
		fc := &fakeClient{LoginErr: rejection}
		a := NewAuthService(fc, nopLogger{})
		sess := session.New("m")
		sess.Authenticate("alice", common.RoleAdmin)

		_, err := a.Login(context.Background(), sess, "bob", "bad")
		require.Error(t, err)
		assert.False(t, sess.IsAuthenticated())
		assert.False(t, sess.IsAdmin())
		assert.Equal(t, 1, fc.Cleared)
	}
}

func TestAuth_LoginTransportErrorKeepsState(t *testing.T) {
	fc := &fakeClient{LoginErr: errors.New("server unavailable")}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("m")
	sess.Authenticate("bob", common.RoleUser)

	_, err := a.Login(context.Background(), sess, "alice", "pw")
	require.Error(t, err)
	assert.Equal(t, session.Authenticated, sess.State())
	assert.Equal(t, "bob", sess.Username())
	assert.Zero(t, fc.Cleared)
}

func TestAuth_ValidationBeforeCalls(t *testing.T) {
	a := NewAuthService(&fakeClient{}, nopLogger{})
	sess := session.New("m")

	_, err := a.Login(context.Background(), sess, "", "pw")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = a.Register(context.Background(), "bob", "", "", "")
	require.ErrorIs(t, err, common.ErrValidation)

	err = a.ResetPassword(context.Background(), "bob", "")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestAuth_LogoutClearsConversation(t *testing.T) {
	fc := &fakeClient{}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("m")
	sess.Authenticate("alice", common.RoleUser)
	sess.AppendTurn("q", "a")

	require.NoError(t, a.Logout(context.Background(), sess))
	assert.True(t, fc.LogoutCalled)
	assert.Equal(t, session.Anonymous, sess.State())
	assert.Empty(t, sess.History())
}

func TestAuth_LogoutAnonymousSkipsServer(t *testing.T) {
	fc := &fakeClient{}
	a := NewAuthService(fc, nopLogger{})

	require.NoError(t, a.Logout(context.Background(), session.New("m")))
	assert.False(t, fc.LogoutCalled)
}

func TestAuth_AdminViews(t *testing.T) {
	fc := &fakeClient{
		Users: []*models.User{{Username: "root"}},
		Audit: []*models.AuditEntry{{ID: 1, Action: "login"}},
	}
	a := NewAuthService(fc, nopLogger{})
	sess := session.New("m")

	_, err := a.ListUsers(context.Background(), sess)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	sess.Authenticate("bob", common.RoleUser)
	_, err = a.ListUsers(context.Background(), sess)
	require.ErrorIs(t, err, common.ErrForbidden)

	sess.Authenticate("root", common.RoleAdmin)
	users, err := a.ListUsers(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	entries, err := a.AuditTrail(context.Background(), sess, "bob")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "bob", fc.AuditOf)
}
