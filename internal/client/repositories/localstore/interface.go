// Package localstore implements the durable key-value persistence of the
// three local collections: prompts, folders, and settings. Each collection is
// stored as a single serialized JSON value under a fixed key, mirroring the
// catalogue's storage contract: reads degrade to empty on absence or
// corruption, writes report failure but never roll back in-memory state.
package localstore

import "context"

// Fixed collection keys.
const (
	CollectionPrompts  = "prompts"
	CollectionFolders  = "folders"
	CollectionSettings = "settings"
)

// Store persists whole collections by key.
type Store interface {
	// Load decodes the stored value for collection into v. If the value is
	// absent, unreadable, or corrupt, v is left untouched and the condition
	// is logged; load never fails toward the caller.
	Load(ctx context.Context, collection string, v any)

	// Save serializes v and stores it under collection. A failure is
	// returned to the caller; the caller's in-memory state stays valid
	// regardless.
	Save(ctx context.Context, collection string, v any) error

	// SaveAll stores every pair in one atomic write. Either all collections
	// are persisted or none is.
	SaveAll(ctx context.Context, pairs map[string]any) error
}

// MetaStore persists small opaque metadata values (auth token, identity).
type MetaStore interface {
	GetMeta(ctx context.Context, key string) ([]byte, error)
	SetMeta(ctx context.Context, key string, value []byte) error
	DeleteMeta(ctx context.Context, key string) error
}
