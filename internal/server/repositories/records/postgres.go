package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, content string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `INSERT INTO records (content) VALUES ($1) RETURNING id`, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Record, error) {
	rec := &models.Record{ID: id}
	err := r.db.QueryRowContext(ctx, `SELECT content FROM records WHERE id = $1`, id).Scan(&rec.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string) (int64, error) {
	return dbx.RowsAffected(r.db.ExecContext(ctx, `UPDATE records SET content = $2 WHERE id = $1`, id, content))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return dbx.RowsAffected(r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id))
}

func (r *PostgresRepository) Search(ctx context.Context, text string) ([]*models.Record, error) {
	return r.query(ctx, `SELECT id, content FROM records WHERE strpos(content, $1) > 0 ORDER BY id ASC`, text)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Record, error) {
	return r.query(ctx, `SELECT id, content FROM records ORDER BY id ASC`)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		rec := &models.Record{}
		if err := rows.Scan(&rec.ID, &rec.Content); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
