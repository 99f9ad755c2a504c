package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/repositories/repomanager"
)

// RecordService is the plain-text record store answers are persisted into.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func (s *RecordService) Add(ctx context.Context, content string) (int64, error) {
	if content == "" {
		return 0, &common.ValidationError{Field: "content"}
	}
	return s.repomanager.Records(s.db).Add(ctx, content)
}

// Read returns common.ErrorNotFound for an unknown id.
func (s *RecordService) Read(ctx context.Context, id int64) (string, error) {
	rec, err := s.repomanager.Records(s.db).Get(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.Content, nil
}

func (s *RecordService) Update(ctx context.Context, id int64, content string) (int64, error) {
	if content == "" {
		return 0, &common.ValidationError{Field: "content"}
	}
	return s.repomanager.Records(s.db).Update(ctx, id, content)
}

func (s *RecordService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repomanager.Records(s.db).Delete(ctx, id)
}

// Search returns records containing text in ascending id order. Every record
// contains the empty string, so "" yields the full list.
func (s *RecordService) Search(ctx context.Context, text string) ([]*models.Record, error) {
	if text == "" {
		return s.List(ctx)
	}
	return s.repomanager.Records(s.db).Search(ctx, text)
}

func (s *RecordService) List(ctx context.Context) ([]*models.Record, error) {
	return s.repomanager.Records(s.db).List(ctx)
}
