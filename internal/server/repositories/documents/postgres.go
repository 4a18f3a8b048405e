package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlukyanov/promptstash/internal/dbx"
	"github.com/mlukyanov/promptstash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.Document) error {

	query :=
		`INSERT INTO documents (user_id, collection, id, payload, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (user_id, collection, id)
		 DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
		 `

	_, err := r.db.ExecContext(ctx, query, doc.UserID, doc.Collection, doc.ID, doc.Payload)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, collection, id string) error {

	query :=
		`DELETE FROM documents
		 WHERE user_id = $1 AND collection = $2 AND id = $3
		 `

	_, err := r.db.ExecContext(ctx, query, userID, collection, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID, collection string) ([]json.RawMessage, error) {

	query :=
		`SELECT payload FROM documents
		 WHERE user_id = $1 AND collection = $2
		 ORDER BY updated_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	payloads := make([]json.RawMessage, 0)
	for rows.Next() {
		var p json.RawMessage
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		payloads = append(payloads, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return payloads, nil
}
