package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/dbx"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, username, action, details string, at time.Time) error {
	query := `
		INSERT INTO audit_log (username, action, timestamp, details)
		VALUES ($1, $2, $3, $4)
	`
	d := sql.NullString{String: details, Valid: details != ""}
	if _, err := r.db.ExecContext(ctx, query, username, action, at, d); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, username string) ([]*models.AuditEntry, error) {
	query := `SELECT id, username, action, timestamp, details FROM audit_log`
	var args []any
	if username != "" {
		query += ` WHERE username = $1`
		args = append(args, username)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditEntry
	for rows.Next() {
		var (
			e       models.AuditEntry
			details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.Timestamp, &details); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Details = details.String
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
