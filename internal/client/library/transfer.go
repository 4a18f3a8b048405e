package library

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/common"
)

// Export serializes the full catalogue as a version-2 export document.
func (l *Library) Export() ([]byte, error) {
	l.mu.Lock()
	doc := models.ExportDocument{
		Version: models.ExportVersion,
		Prompts: make([]models.Prompt, 0, len(l.prompts)),
		Folders: make([]models.Folder, 0, len(l.folders)),
	}
	for _, p := range l.prompts {
		doc.Prompts = append(doc.Prompts, p.Clone())
	}
	for _, f := range l.folders {
		doc.Folders = append(doc.Folders, f.Clone())
	}
	l.mu.Unlock()

	return json.MarshalIndent(doc, "", "  ")
}

// Import accepts either a version-2 export document or a legacy bare array of
// prompt-like objects and returns the number of prompts imported. Every
// imported entity gets a fresh id and is owned by the current identity (or
// unclaimed when signed out). A structurally invalid payload fails the whole
// import with zero entities changed.
func (l *Library) Import(ctx context.Context, data []byte) (int, error) {
	var legacy []models.LegacyPrompt
	if err := json.Unmarshal(data, &legacy); err == nil {
		return l.importLegacy(ctx, legacy)
	}

	var doc models.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}
	if doc.Version != models.ExportVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", common.ErrInvalidImport, doc.Version)
	}
	return l.importDocument(ctx, doc)
}

func (l *Library) importLegacy(ctx context.Context, legacy []models.LegacyPrompt) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, old := range legacy {
		p := old.Upgrade()
		p.ID = uuid.NewString()
		p.OwnerID = l.identity
		l.prompts = append([]models.Prompt{p}, l.prompts...)
		count++
	}
	return count, l.persistPrompts(ctx)
}

func (l *Library) importDocument(ctx context.Context, doc models.ExportDocument) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Folders first. Folder ids are regenerated without rewriting the
	// FolderID of imported prompts, so an import can leave dangling
	// references; those prompts list as unfiled.
	for _, f := range doc.Folders {
		nf := f.Clone()
		nf.ID = uuid.NewString()
		nf.OwnerID = l.identity
		nf.Color = nf.Color.Normalize()
		l.folders = append(l.folders, nf)
	}

	count := 0
	for _, p := range doc.Prompts {
		np := p.Clone()
		np.ID = uuid.NewString()
		np.OwnerID = l.identity
		np.SyncState = models.SyncStatePending
		l.prompts = append([]models.Prompt{np}, l.prompts...)
		count++
	}

	return count, l.persistAll(ctx)
}
