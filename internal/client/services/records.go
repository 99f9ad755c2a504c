package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/client/client"
	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/filex"
	"github.com/dmitrijs2005/mcpclient/internal/netx"
)

const exportSubDir = "exports"

// download is a seam for tests.
var download = netx.Download

// ExportedFile is a downloaded export document.
type ExportedFile struct {
	Path  string
	Key   string
	Count int
	Bytes int64
}

// RecordService exposes the server record store to an authenticated
// session.
type RecordService struct {
	client    client.Client
	exportDir string
}

// NewRecordService stores downloaded exports under exportDir/exports
// (the working directory when exportDir is empty).
func NewRecordService(c client.Client, exportDir string) *RecordService {
	return &RecordService{client: c, exportDir: exportDir}
}

func requireSession(sess *session.Session) error {
	if !sess.IsAuthenticated() {
		return common.ErrorUnauthorized
	}
	return nil
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &common.ValidationError{Field: field}
	}
	return nil
}

func (s *RecordService) Add(ctx context.Context, sess *session.Session, content string) (int64, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	if err := requireText("content", content); err != nil {
		return 0, err
	}
	return s.client.AddRecord(ctx, content)
}

func (s *RecordService) Read(ctx context.Context, sess *session.Session, id int64) (string, error) {
	if err := requireSession(sess); err != nil {
		return "", err
	}
	return s.client.ReadRecord(ctx, id)
}

func (s *RecordService) Update(ctx context.Context, sess *session.Session, id int64, content string) (int64, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	if err := requireText("content", content); err != nil {
		return 0, err
	}
	return s.client.UpdateRecord(ctx, id, content)
}

func (s *RecordService) Delete(ctx context.Context, sess *session.Session, id int64) (int64, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	return s.client.DeleteRecord(ctx, id)
}

func (s *RecordService) Search(ctx context.Context, sess *session.Session, text string) ([]*models.Record, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.client.SearchRecords(ctx, text)
}

func (s *RecordService) List(ctx context.Context, sess *session.Session) ([]*models.Record, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.client.ListRecords(ctx)
}

// Export asks the server for an export document and downloads it.
func (s *RecordService) Export(ctx context.Context, sess *session.Session) (*ExportedFile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	res, err := s.client.ExportRecords(ctx)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureSubDir(s.exportDir, exportSubDir)
	if err != nil {
		return nil, err
	}

	path := filex.LocalName(dir, res.Key)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := download(ctx, res.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("download export: %w", err)
	}

	return &ExportedFile{Path: path, Key: res.Key, Count: res.Count, Bytes: n}, nil
}
