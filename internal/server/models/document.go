package models

import (
	"encoding/json"
	"time"
)

// Document is one replicated entity. The server never interprets the payload
// beyond forcing the ownership and sync-state fields; merge semantics live
// entirely in the client.
type Document struct {
	Collection string
	ID         string
	UserID     string
	Payload    json.RawMessage
	UpdatedAt  time.Time
}

// Replicated collections.
const (
	CollectionPrompts = "prompts"
	CollectionFolders = "folders"
)

// ValidCollection reports whether name is a replicated collection.
func ValidCollection(name string) bool {
	return name == CollectionPrompts || name == CollectionFolders
}
