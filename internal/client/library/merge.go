package library

import (
	"context"

	"github.com/mlukyanov/promptstash/internal/client/models"
)

// MergeRemote reconciles the pulled remote replica into the local collections
// using a last-writer-wins policy, keyed by id and applied independently per
// collection:
//
//   - a remote entity with no local counterpart is inserted;
//   - a remote prompt replaces the local one only when its ModifiedAt is
//     strictly newer (local wins ties);
//   - a remote folder always replaces the local one (folders carry no
//     modification time).
//
// There is no field-level reconciliation: the losing side's divergent fields
// are discarded entirely. The merged collections are persisted before
// returning.
func (l *Library) MergeRemote(ctx context.Context, remotePrompts []models.Prompt, remoteFolders []models.Folder) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rp := range remotePrompts {
		i := l.promptIndex(rp.ID)
		if i < 0 {
			l.prompts = append(l.prompts, rp.Clone())
			continue
		}
		if rp.ModifiedAt.After(l.prompts[i].ModifiedAt) {
			l.prompts[i] = rp.Clone()
		}
	}

	for _, rf := range remoteFolders {
		replaced := false
		for i := range l.folders {
			if l.folders[i].ID == rf.ID {
				l.folders[i] = rf.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			l.folders = append(l.folders, rf.Clone())
		}
	}

	return l.persistAll(ctx)
}

// UnclaimedCount returns the number of local prompts not yet claimed by any
// identity. It drives the migration consent dialog.
func (l *Library) UnclaimedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.prompts {
		if l.prompts[i].OwnerID == "" {
			n++
		}
	}
	return n
}

// ClaimAll assigns the current identity to every unclaimed entity, marks the
// claimed prompts pending, persists, and returns copies of everything claimed
// so the caller can push each entity individually. The returned count is the
// number of claimed prompts. Once claimed, OwnerID never reverts.
func (l *Library) ClaimAll(ctx context.Context) (prompts []models.Prompt, folders []models.Folder, count int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.identity == "" {
		return nil, nil, 0, nil
	}

	for i := range l.prompts {
		if l.prompts[i].OwnerID != "" {
			continue
		}
		l.prompts[i].OwnerID = l.identity
		l.prompts[i].SyncState = models.SyncStatePending
		prompts = append(prompts, l.prompts[i].Clone())
		count++
	}
	for i := range l.folders {
		if l.folders[i].OwnerID != "" {
			continue
		}
		l.folders[i].OwnerID = l.identity
		folders = append(folders, l.folders[i].Clone())
	}

	err = l.persistAll(ctx)
	return prompts, folders, count, err
}

// PendingPrompts returns copies of every owned prompt still awaiting a
// confirmed remote write.
func (l *Library) PendingPrompts() []models.Prompt {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Prompt, 0)
	for i := range l.prompts {
		if l.prompts[i].OwnerID != "" && l.prompts[i].SyncState == models.SyncStatePending {
			out = append(out, l.prompts[i].Clone())
		}
	}
	return out
}
