package models

import "time"

// ExportVersion is the current export document version.
const ExportVersion = 2

// ExportDocument is the bulk export/import envelope. A legacy export (bare
// JSON array of LegacyPrompt) is also accepted on import.
type ExportDocument struct {
	Version int      `json:"version"`
	Prompts []Prompt `json:"prompts"`
	Folders []Folder `json:"folders"`
}

// LegacyPrompt is a version-1 export entry: no folders, no sync fields, and
// the body stored under "text".
type LegacyPrompt struct {
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	Category     string     `json:"category"`
	Tags         []string   `json:"tags"`
	Starred      bool       `json:"starred"`
	DateAdded    time.Time  `json:"dateAdded"`
	DateModified *time.Time `json:"dateModified,omitempty"`
	LastUsed     *time.Time `json:"lastUsed,omitempty"`
	UseCount     int        `json:"useCount"`
}

// Upgrade converts a legacy entry to the current Prompt shape. The id and
// owner are left empty: the importer assigns fresh ones. ModifiedAt is
// backfilled from DateAdded when the legacy entry carries no modification
// time.
func (l LegacyPrompt) Upgrade() Prompt {
	modified := l.DateAdded
	if l.DateModified != nil {
		modified = *l.DateModified
	}
	return Prompt{
		Title:      l.Title,
		Body:       l.Text,
		Category:   l.Category,
		Tags:       NormalizeTags(l.Tags),
		Starred:    l.Starred,
		CreatedAt:  l.DateAdded,
		ModifiedAt: modified,
		LastUsedAt: l.LastUsed,
		UseCount:   l.UseCount,
		SyncState:  SyncStatePending,
	}
}
