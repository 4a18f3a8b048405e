// Package models defines the client-side entities of the prompt catalogue.
package models

import (
	"strings"
	"time"
)

// SyncState marks whether the last local mutation of an entity has been
// confirmed written to the remote replica. It is transient: after a restart
// an entity is treated as pending until proven otherwise.
type SyncState string

const (
	SyncStatePending SyncState = "pending"
	SyncStateSynced  SyncState = "synced"
)

// Prompt is a user-authored snippet.
//
// OwnerID is empty for entities not yet claimed by any identity (local-only);
// once claimed it is permanently set. FolderID is empty for unfiled prompts;
// a dangling FolderID is tolerated and such prompts render as unfiled.
type Prompt struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"ownerId,omitempty"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Category   string     `json:"category"`
	Tags       []string   `json:"tags"`
	FolderID   string     `json:"folderId,omitempty"`
	Starred    bool       `json:"starred"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt time.Time  `json:"modifiedAt"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	UseCount   int        `json:"useCount"`
	SyncState  SyncState  `json:"syncState"`
}

// Clone returns a deep copy. Listing operations hand out clones so callers
// cannot mutate library state through the returned values.
func (p Prompt) Clone() Prompt {
	c := p
	if p.Tags != nil {
		c.Tags = make([]string, len(p.Tags))
		copy(c.Tags, p.Tags)
	}
	if p.LastUsedAt != nil {
		t := *p.LastUsedAt
		c.LastUsedAt = &t
	}
	return c
}

// NormalizeTags trims every tag and drops the ones that are empty after
// trimming. Order and duplicates are preserved.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
