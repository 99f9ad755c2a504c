package services

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
	"github.com/dmitrijs2005/mcpclient/internal/server/config"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/audit"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/records"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- in-memory repositories ---

type memUsers struct {
	mu       sync.Mutex
	users    map[string]*models.User
	order    []string
	failNext error

	// afterGet runs once, right after the next GetByUsername returns its row.
	afterGet func()
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) Lock(context.Context) error { return nil }

func (m *memUsers) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return nil, err
	}
	if _, ok := m.users[u.Username]; ok {
		return nil, common.ErrDuplicateUser
	}
	c := *u
	c.CreatedAt = time.Now()
	m.users[u.Username] = &c
	m.order = append(m.order, u.Username)
	out := c
	return &out, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	u, ok := m.users[username]
	var c models.User
	if ok {
		c = *u
	}
	hook := m.afterGet
	m.afterGet = nil
	m.mu.Unlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	if hook != nil {
		hook()
	}
	return &c, nil
}

func (m *memUsers) List(context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, name := range m.order {
		c := *m.users[name]
		out = append(out, &c)
	}
	return out, nil
}

func (m *memUsers) IncrementFailedAttempts(_ context.Context, username string, now time.Time, threshold int, lockUntil time.Time) (*models.FailureResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if u.IsLocked(now) {
		t := *u.LockedUntil
		return &models.FailureResult{FailedAttempts: u.FailedAttempts, LockedUntil: &t, AlreadyLocked: true}, nil
	}
	u.FailedAttempts++
	if u.FailedAttempts >= threshold {
		t := lockUntil
		u.LockedUntil = &t
	}
	return &models.FailureResult{
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		JustLocked:     u.FailedAttempts >= threshold,
	}, nil
}

func (m *memUsers) ResetFailedAttempts(_ context.Context, username string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok || u.IsLocked(now) {
		return 0, nil
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	return 1, nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, username, hash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = hash
	return 1, nil
}

func (m *memUsers) get(username string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *m.users[username]
	return &c
}

type memAudit struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
	err     error
}

func (m *memAudit) Append(_ context.Context, username, action, details string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, &models.AuditEntry{
		ID: int64(len(m.entries) + 1), Username: username, Action: action, Timestamp: at, Details: details,
	})
	return nil
}

func (m *memAudit) List(_ context.Context, username string) ([]*models.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.AuditEntry
	for _, e := range m.entries {
		if username == "" || e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memAudit) actions(username string) []string {
	entries, _ := m.List(context.Background(), username)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

type memRefresh struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newMemRefresh() *memRefresh {
	return &memRefresh{tokens: map[string]*models.RefreshToken{}}
}

func (m *memRefresh) Create(_ context.Context, username, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &models.RefreshToken{Username: username, Token: token, Expires: expires}
	return nil
}

func (m *memRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (m *memRefresh) Delete(_ context.Context, token, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[token]; ok && t.Username == username {
		delete(m.tokens, token)
	}
	return nil
}

func (m *memRefresh) DeleteByUsername(_ context.Context, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if t.Username == username {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

func (m *memRefresh) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

type memRecords struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]string
	err    error
}

func newMemRecords() *memRecords {
	return &memRecords{rows: map[int64]string{}}
}

func (m *memRecords) Add(_ context.Context, content string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	m.rows[m.nextID] = content
	return m.nextID, nil
}

func (m *memRecords) Get(_ context.Context, id int64) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Record{ID: id, Content: c}, nil
}

func (m *memRecords) Update(_ context.Context, id int64, content string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	m.rows[id] = content
	return 1, nil
}

func (m *memRecords) Delete(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *memRecords) Search(ctx context.Context, text string) ([]*models.Record, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Record
	for _, r := range all {
		if strings.Contains(r.Content, text) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecords) List(context.Context) ([]*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Record
	for id, c := range m.rows {
		out = append(out, &models.Record{ID: id, Content: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- repository manager ---

type fakeRepoManager struct {
	users   *memUsers
	audit   *memAudit
	refresh *memRefresh
	records *memRecords
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newMemUsers(),
		audit:   &memAudit{},
		refresh: newMemRefresh(),
		records: newMemRecords(),
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository { return f.users }
func (f *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return f.refresh }
func (f *fakeRepoManager) Audit(dbx.DBTX) audit.Repository { return f.audit }
func (f *fakeRepoManager) Records(dbx.DBTX) records.Repository { return f.records }

// --- helpers ---

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To, Subject, Body string
}

func (n *recordingNotifier) Notify(_ context.Context, to, subject, body string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return true
}

func (n *recordingNotifier) mails() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.sent...)
}

func nopLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, 0)
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type testEnv struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	rm       *fakeRepoManager
	clock    *fakeClock
	creds    *CredentialStore
	audit    *AuditLog
	notifier *recordingNotifier
	users    *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}

	creds := NewCredentialStore(db, rm, bcrypt.MinCost)
	creds.now = clock.Now

	auditLog := NewAuditLog(db, rm, nopLogger())
	auditLog.now = clock.Now

	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}

	notifier := &recordingNotifier{}
	us := NewUserService(db, rm, creds, auditLog, notifier, nopLogger(), cfg)
	us.now = clock.Now

	return &testEnv{db: db, mock: mock, rm: rm, clock: clock, creds: creds, audit: auditLog, notifier: notifier, users: us}
}

// expectTx queues one committed transaction on the mock.
func (e *testEnv) expectTx() {
	e.mock.ExpectBegin()
	e.mock.ExpectCommit()
}
