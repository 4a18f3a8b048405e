// Package library holds the in-memory authoritative copy of the prompt
// catalogue. Every mutating operation is synchronous: it mutates memory,
// persists through the local store before returning, and marks the touched
// entity for outbound sync. Remote pushes are detached and never influence
// the result of an operation.
package library

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/client/repositories/localstore"
	"github.com/mlukyanov/promptstash/internal/logging"
)

// Pusher schedules detached, best-effort remote operations after a local
// mutation. Implementations must return immediately; failures are reflected
// only in the sync status, never in the result of the mutation.
type Pusher interface {
	PushPrompt(p models.Prompt)
	PushFolder(f models.Folder)
	DeletePrompt(id string)
	DeleteFolder(id string)
}

// Library is the synchronous source of truth for the UI. A single mutex makes
// every exported operation one atomic read-modify-write step; remote calls
// happen outside the lock through the Pusher.
//
// The error returned by mutating operations reports a persistence failure
// only: the in-memory mutation has been applied regardless (availability of
// in-memory data is favored over persistence guarantees).
type Library struct {
	mu       sync.Mutex
	store    localstore.Store
	log      logging.Logger
	pusher   Pusher
	now      func() time.Time
	identity string

	prompts  []models.Prompt
	folders  []models.Folder
	settings models.Settings
}

// New constructs a Library and loads the three collections from the store.
// Settings are decoded over the hardcoded defaults so that missing keys get
// sane values for existing installations.
func New(ctx context.Context, store localstore.Store, logger logging.Logger) *Library {
	l := &Library{
		store:    store,
		log:      logger,
		now:      time.Now,
		settings: models.DefaultSettings(),
	}
	store.Load(ctx, localstore.CollectionPrompts, &l.prompts)
	store.Load(ctx, localstore.CollectionFolders, &l.folders)
	store.Load(ctx, localstore.CollectionSettings, &l.settings)
	return l
}

// SetPusher wires the detached push sink. Passing nil disables pushes.
func (l *Library) SetPusher(p Pusher) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pusher = p
}

// SetIdentity sets the identity new entities are owned by. An empty identity
// means signed-out: entities are created unclaimed and nothing is pushed.
// Existing OwnerID values are never touched here.
func (l *Library) SetIdentity(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.identity = id
}

func (l *Library) Identity() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.identity
}

// AddPrompt creates a prompt, prepends it to the collection (newest first)
// and persists. The new prompt is owned by the current identity, or unclaimed
// when signed out.
func (l *Library) AddPrompt(ctx context.Context, title, body, category string, tags []string, folderID string, starred bool) (models.Prompt, error) {
	l.mu.Lock()
	now := l.now().UTC()
	p := models.Prompt{
		ID:         uuid.NewString(),
		OwnerID:    l.identity,
		Title:      strings.TrimSpace(title),
		Body:       strings.TrimSpace(body),
		Category:   category,
		Tags:       models.NormalizeTags(tags),
		FolderID:   folderID,
		Starred:    starred,
		CreatedAt:  now,
		ModifiedAt: now,
		UseCount:   0,
		SyncState:  models.SyncStatePending,
	}
	l.prompts = append([]models.Prompt{p}, l.prompts...)
	err := l.persistPrompts(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && p.OwnerID != "" {
		pusher.PushPrompt(p.Clone())
	}
	return p.Clone(), err
}

// UpdatePrompt replaces all mutable fields of the prompt with the given id.
// Returns false when the id is unknown.
func (l *Library) UpdatePrompt(ctx context.Context, id, title, body, category string, tags []string, folderID string, starred bool) (bool, error) {
	l.mu.Lock()
	i := l.promptIndex(id)
	if i < 0 {
		l.mu.Unlock()
		return false, nil
	}
	p := &l.prompts[i]
	p.Title = strings.TrimSpace(title)
	p.Body = strings.TrimSpace(body)
	p.Category = category
	p.Tags = models.NormalizeTags(tags)
	p.FolderID = folderID
	p.Starred = starred
	p.ModifiedAt = l.now().UTC()
	p.SyncState = models.SyncStatePending

	updated := p.Clone()
	err := l.persistPrompts(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && updated.OwnerID != "" {
		pusher.PushPrompt(updated)
	}
	return true, err
}

// RemovePrompt deletes the prompt locally and, for owned prompts, schedules a
// best-effort remote deletion. Returns false when the id is unknown.
func (l *Library) RemovePrompt(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	i := l.promptIndex(id)
	if i < 0 {
		l.mu.Unlock()
		return false, nil
	}
	owned := l.prompts[i].OwnerID != ""
	l.prompts = append(l.prompts[:i], l.prompts[i+1:]...)
	err := l.persistPrompts(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && owned {
		pusher.DeletePrompt(id)
	}
	return true, err
}

// ToggleStar flips the favorite flag and returns the new state, or nil when
// the id is unknown.
func (l *Library) ToggleStar(ctx context.Context, id string) (*bool, error) {
	l.mu.Lock()
	i := l.promptIndex(id)
	if i < 0 {
		l.mu.Unlock()
		return nil, nil
	}
	p := &l.prompts[i]
	p.Starred = !p.Starred
	p.ModifiedAt = l.now().UTC()
	p.SyncState = models.SyncStatePending

	starred := p.Starred
	updated := p.Clone()
	err := l.persistPrompts(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && updated.OwnerID != "" {
		pusher.PushPrompt(updated)
	}
	return &starred, err
}

// RecordUse registers a consumption event: the use counter is incremented and
// the last-used timestamp set. Unknown ids are a no-op.
func (l *Library) RecordUse(ctx context.Context, id string) error {
	l.mu.Lock()
	i := l.promptIndex(id)
	if i < 0 {
		l.mu.Unlock()
		return nil
	}
	p := &l.prompts[i]
	p.UseCount++
	used := l.now().UTC()
	p.LastUsedAt = &used
	p.ModifiedAt = used
	p.SyncState = models.SyncStatePending

	updated := p.Clone()
	err := l.persistPrompts(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && updated.OwnerID != "" {
		pusher.PushPrompt(updated)
	}
	return err
}

// GetPrompt returns a copy of the prompt with the given id.
func (l *Library) GetPrompt(id string) (models.Prompt, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.promptIndex(id)
	if i < 0 {
		return models.Prompt{}, false
	}
	return l.prompts[i].Clone(), true
}

// MarkPromptSynced records a confirmed remote write. Called back by the sync
// layer after a successful push; a late callback for a prompt that changed
// again in the meantime is harmless (the next push re-marks it pending).
func (l *Library) MarkPromptSynced(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.promptIndex(id)
	if i < 0 {
		return
	}
	l.prompts[i].SyncState = models.SyncStateSynced
	if err := l.persistPrompts(ctx); err != nil {
		l.log.Error(ctx, "error persisting sync state", "id", id, "error", err.Error())
	}
}

// AddFolder appends a folder; OrderIndex is the insertion-order hint.
func (l *Library) AddFolder(ctx context.Context, name string, color models.FolderColor) (models.Folder, error) {
	l.mu.Lock()
	f := models.Folder{
		ID:         uuid.NewString(),
		OwnerID:    l.identity,
		Name:       strings.TrimSpace(name),
		Color:      color.Normalize(),
		CreatedAt:  l.now().UTC(),
		OrderIndex: len(l.folders),
	}
	l.folders = append(l.folders, f)
	err := l.persistFolders(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && f.OwnerID != "" {
		pusher.PushFolder(f.Clone())
	}
	return f.Clone(), err
}

// RemoveFolder deletes the folder and clears FolderID on every referencing
// prompt, marking those prompts pending. Returns false when the id is
// unknown.
func (l *Library) RemoveFolder(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	idx := -1
	for i := range l.folders {
		if l.folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false, nil
	}
	owned := l.folders[idx].OwnerID != ""

	for i := range l.prompts {
		if l.prompts[i].FolderID == id {
			l.prompts[i].FolderID = ""
			l.prompts[i].SyncState = models.SyncStatePending
		}
	}
	l.folders = append(l.folders[:idx], l.folders[idx+1:]...)

	err := l.persistAll(ctx)
	pusher := l.pusher
	l.mu.Unlock()

	if pusher != nil && owned {
		pusher.DeleteFolder(id)
	}
	return true, err
}

// ListFolders returns copies of all folders in insertion order.
func (l *Library) ListFolders() []models.Folder {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Folder, 0, len(l.folders))
	for _, f := range l.folders {
		out = append(out, f.Clone())
	}
	return out
}

// Settings returns the current settings.
func (l *Library) Settings() models.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// UpdateSettings replaces the settings and persists them.
func (l *Library) UpdateSettings(ctx context.Context, s models.Settings) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings = s
	return l.store.Save(ctx, localstore.CollectionSettings, l.settings)
}

// promptIndex must be called with the mutex held.
func (l *Library) promptIndex(id string) int {
	for i := range l.prompts {
		if l.prompts[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) persistPrompts(ctx context.Context) error {
	return l.store.Save(ctx, localstore.CollectionPrompts, l.prompts)
}

func (l *Library) persistFolders(ctx context.Context) error {
	return l.store.Save(ctx, localstore.CollectionFolders, l.folders)
}

// persistAll writes both mutable collections in one atomic store write.
func (l *Library) persistAll(ctx context.Context) error {
	return l.store.SaveAll(ctx, map[string]any{
		localstore.CollectionPrompts: l.prompts,
		localstore.CollectionFolders: l.folders,
	})
}
