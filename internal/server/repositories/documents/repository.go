package documents

import (
	"context"
	"encoding/json"

	"github.com/mlukyanov/promptstash/internal/server/models"
)

type Repository interface {
	// Upsert stores the document under its (user, collection, id) key,
	// replacing any previous payload.
	Upsert(ctx context.Context, doc *models.Document) error
	// Delete removes the document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, userID, collection, id string) error
	// ListByOwner returns the payloads of every document the user has in
	// the collection, oldest write first.
	ListByOwner(ctx context.Context, userID, collection string) ([]json.RawMessage, error)
}
