package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mlukyanov/promptstash/internal/common"
	"github.com/mlukyanov/promptstash/internal/server/models"
	"github.com/mlukyanov/promptstash/internal/server/repositories/documents"
)

// DocumentService stores replicated entities. The server treats payloads as
// opaque JSON objects except for two fields it always overwrites: ownerId is
// forced to the authenticated user and syncState to "synced" (pending is a
// client-local flag that must never round-trip).
type DocumentService struct {
	repo documents.Repository
}

func NewDocumentService(repo documents.Repository) *DocumentService {
	return &DocumentService{repo: repo}
}

// Upsert stores the payload under (user, collection, id). Re-pushing the same
// entity is idempotent.
func (s *DocumentService) Upsert(ctx context.Context, userID, collection, id string, payload json.RawMessage) error {
	if !models.ValidCollection(collection) {
		return common.ErrNotFound
	}

	normalized, err := normalizePayload(payload, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	doc := &models.Document{
		Collection: collection,
		ID:         id,
		UserID:     userID,
		Payload:    normalized,
	}
	return s.repo.Upsert(ctx, doc)
}

// Delete removes the document. Absent documents delete cleanly.
func (s *DocumentService) Delete(ctx context.Context, userID, collection, id string) error {
	if !models.ValidCollection(collection) {
		return common.ErrNotFound
	}
	return s.repo.Delete(ctx, userID, collection, id)
}

// List returns every payload the user has in the collection.
func (s *DocumentService) List(ctx context.Context, userID, collection string) ([]json.RawMessage, error) {
	if !models.ValidCollection(collection) {
		return nil, common.ErrNotFound
	}
	return s.repo.ListByOwner(ctx, userID, collection)
}

func normalizePayload(payload json.RawMessage, userID string) (json.RawMessage, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	fields["ownerId"] = userID
	if _, ok := fields["syncState"]; ok {
		fields["syncState"] = "synced"
	}
	return json.Marshal(fields)
}
