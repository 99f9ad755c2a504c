package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mcpclient/internal/client/config"
	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/services"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

type recLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.msgs {
		if m == msg {
			n++
		}
	}
	return n
}

func (l *recLogger) Debug(_ context.Context, msg string, _ ...any) { l.add(msg) }
func (l *recLogger) Info(_ context.Context, msg string, _ ...any)  { l.add(msg) }
func (l *recLogger) Warn(_ context.Context, msg string, _ ...any)  { l.add(msg) }
func (l *recLogger) Error(_ context.Context, msg string, _ ...any) { l.add(msg) }
func (l *recLogger) With(...any) logging.Logger                    { return l }

type fakeAuth struct {
	regArgs []string
	regErr  error

	loginUser, loginPass string
	loginRole            string
	loginErr             error

	logoutErr error

	resetUser, resetPass string
	resetErr             error

	users      []*models.User
	audit      []*models.AuditEntry
	auditOf    string
	forbidErr  error
	pingErr    error
	pingCalled int
	mu         sync.Mutex
}

func (f *fakeAuth) Register(_ context.Context, username, password, email, role string) (*models.Identity, error) {
	f.regArgs = []string{username, password, email, role}
	if f.regErr != nil {
		return nil, f.regErr
	}
	if role == "" {
		role = "user"
	}
	return &models.Identity{Username: username, Role: role}, nil
}

func (f *fakeAuth) Login(_ context.Context, sess *session.Session, username, password string) (*models.Identity, error) {
	f.loginUser, f.loginPass = username, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	sess.Authenticate(username, f.loginRole)
	return &models.Identity{Username: username, Role: f.loginRole}, nil
}

func (f *fakeAuth) Logout(_ context.Context, sess *session.Session) error {
	sess.Reset()
	return f.logoutErr
}

func (f *fakeAuth) ResetPassword(_ context.Context, username, newPassword string) error {
	f.resetUser, f.resetPass = username, newPassword
	return f.resetErr
}

func (f *fakeAuth) ListUsers(context.Context, *session.Session) ([]*models.User, error) {
	return f.users, f.forbidErr
}

func (f *fakeAuth) AuditTrail(_ context.Context, _ *session.Session, username string) ([]*models.AuditEntry, error) {
	f.auditOf = username
	return f.audit, f.forbidErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingCalled++
	return f.pingErr
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeQuery struct {
	query  string
	result *services.Result
	err    error
}

func (f *fakeQuery) Handle(_ context.Context, _ *session.Session, query string, _ func(string)) (*services.Result, error) {
	f.query = query
	return f.result, f.err
}

type fakeRecords struct {
	added    []string
	lastID   int64
	content  string
	affected int64
	list     []*models.Record
	search   string
	export   *services.ExportedFile
	err      error
}

func (f *fakeRecords) Add(_ context.Context, _ *session.Session, content string) (int64, error) {
	f.added = append(f.added, content)
	return int64(len(f.added)), f.err
}

func (f *fakeRecords) Read(_ context.Context, _ *session.Session, id int64) (string, error) {
	f.lastID = id
	return f.content, f.err
}

func (f *fakeRecords) Update(_ context.Context, _ *session.Session, id int64, content string) (int64, error) {
	f.lastID, f.content = id, content
	return f.affected, f.err
}

func (f *fakeRecords) Delete(_ context.Context, _ *session.Session, id int64) (int64, error) {
	f.lastID = id
	return f.affected, f.err
}

func (f *fakeRecords) Search(_ context.Context, _ *session.Session, text string) ([]*models.Record, error) {
	f.search = text
	return f.list, f.err
}

func (f *fakeRecords) List(context.Context, *session.Session) ([]*models.Record, error) {
	return f.list, f.err
}

func (f *fakeRecords) Export(context.Context, *session.Session) (*services.ExportedFile, error) {
	return f.export, f.err
}

type fakeSettings struct {
	selected string
	err      error
}

func (f *fakeSettings) Models() []string { return services.AvailableModels }

func (f *fakeSettings) SelectModel(_ context.Context, sess *session.Session, model string) error {
	if f.err != nil {
		return f.err
	}
	f.selected = model
	sess.SetModel(model)
	return nil
}

type testApp struct {
	*App
	auth     *fakeAuth
	query    *fakeQuery
	records  *fakeRecords
	settings *fakeSettings
	logger   *recLogger
	out      *bytes.Buffer
}

// newTestApp builds an App whose follow-up prompts read from input.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ta := &testApp{
		auth:     &fakeAuth{loginRole: "user"},
		query:    &fakeQuery{},
		records:  &fakeRecords{},
		settings: &fakeSettings{},
		logger:   &recLogger{},
		out:      &bytes.Buffer{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	ta.App = NewApp(cfg, session.New(config.DefaultModel), ta.auth, ta.query, ta.records, ta.settings,
		ta.logger, strings.NewReader(input), ta.out)
	return ta
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}
