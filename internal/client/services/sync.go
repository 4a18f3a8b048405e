// Package services wires the catalogue to the remote replica: detached
// pushes after local mutations, explicit pull-and-merge on sign-in, claim
// migration, and session handling.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/models"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/logging"
)

// Status describes the most recent outcome of remote activity. It is purely
// observational: no decision branches on it.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusOffline Status = "offline"
)

const pushTimeout = 15 * time.Second

// SyncService owns all traffic between the library and the remote replica.
// It implements library.Pusher: every push and delete runs in a detached
// goroutine whose outcome is reflected only in Status and in the entity's
// sync state, never in the result of the originating mutation.
type SyncService struct {
	lib *library.Library
	gw  remote.Gateway
	log logging.Logger

	mu     sync.Mutex
	status Status

	wg sync.WaitGroup
}

func NewSyncService(lib *library.Library, gw remote.Gateway, log logging.Logger) *SyncService {
	return &SyncService{lib: lib, gw: gw, log: log, status: StatusIdle}
}

// Status returns the current sync status.
func (s *SyncService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *SyncService) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// PushPrompt schedules a detached write of the prompt to the replica.
func (s *SyncService) PushPrompt(p models.Prompt) {
	s.detach(func(ctx context.Context) error {
		if err := s.gw.PushPrompt(ctx, p); err != nil {
			return err
		}
		s.lib.MarkPromptSynced(ctx, p.ID)
		return nil
	})
}

// PushFolder schedules a detached write of the folder to the replica.
func (s *SyncService) PushFolder(f models.Folder) {
	s.detach(func(ctx context.Context) error {
		return s.gw.PushFolder(ctx, f)
	})
}

// DeletePrompt schedules a detached remote deletion.
func (s *SyncService) DeletePrompt(id string) {
	s.detach(func(ctx context.Context) error {
		return s.gw.DeletePrompt(ctx, id)
	})
}

// DeleteFolder schedules a detached remote deletion.
func (s *SyncService) DeleteFolder(id string) {
	s.detach(func(ctx context.Context) error {
		return s.gw.DeleteFolder(ctx, id)
	})
}

func (s *SyncService) detach(op func(ctx context.Context) error) {
	s.setStatus(StatusSyncing)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := op(ctx); err != nil {
			s.log.Warn(ctx, "remote push failed", "error", err.Error())
			s.setStatus(StatusOffline)
			return
		}
		s.setStatus(StatusSynced)
	}()
}

// Wait blocks until every detached operation scheduled so far has finished.
func (s *SyncService) Wait() {
	s.wg.Wait()
}

// SignIn pulls both remote collections and merges them into the local
// catalogue. It returns the number of local prompts still unclaimed, which
// drives the migration consent prompt. Merge always completes before any
// migration may run.
func (s *SyncService) SignIn(ctx context.Context) (int, error) {
	s.setStatus(StatusSyncing)

	prompts, err := s.gw.PullPrompts(ctx)
	if err != nil {
		s.setStatus(StatusOffline)
		return 0, fmt.Errorf("error pulling prompts: %w", err)
	}
	folders, err := s.gw.PullFolders(ctx)
	if err != nil {
		s.setStatus(StatusOffline)
		return 0, fmt.Errorf("error pulling folders: %w", err)
	}

	if err := s.lib.MergeRemote(ctx, prompts, folders); err != nil {
		s.setStatus(StatusOffline)
		return 0, fmt.Errorf("error merging remote state: %w", err)
	}

	s.setStatus(StatusSynced)
	return s.lib.UnclaimedCount(), nil
}

// Migrate claims every unclaimed entity for the current identity and pushes
// each one individually. Callers invoke it only after the user consented.
// Returns the number of migrated prompts. A push failure leaves the affected
// prompt pending for the next sync pass; the claim itself never reverts.
func (s *SyncService) Migrate(ctx context.Context) (int, error) {
	prompts, folders, count, err := s.lib.ClaimAll(ctx)
	if err != nil {
		return count, fmt.Errorf("error claiming local entities: %w", err)
	}

	s.setStatus(StatusSyncing)
	failed := false
	for _, f := range folders {
		if err := s.gw.PushFolder(ctx, f); err != nil {
			s.log.Warn(ctx, "error pushing migrated folder", "id", f.ID, "error", err.Error())
			failed = true
		}
	}
	for _, p := range prompts {
		if err := s.gw.PushPrompt(ctx, p); err != nil {
			s.log.Warn(ctx, "error pushing migrated prompt", "id", p.ID, "error", err.Error())
			failed = true
			continue
		}
		s.lib.MarkPromptSynced(ctx, p.ID)
	}

	if failed {
		s.setStatus(StatusOffline)
	} else {
		s.setStatus(StatusSynced)
	}
	return count, nil
}

// SyncPending re-pushes every owned entity still marked pending. One pass,
// no retries: an entity that fails stays pending for the next call.
func (s *SyncService) SyncPending(ctx context.Context) error {
	pending := s.lib.PendingPrompts()
	if len(pending) == 0 {
		return nil
	}

	s.setStatus(StatusSyncing)
	failed := false
	for _, p := range pending {
		if err := s.gw.PushPrompt(ctx, p); err != nil {
			s.log.Warn(ctx, "error syncing pending prompt", "id", p.ID, "error", err.Error())
			failed = true
			continue
		}
		s.lib.MarkPromptSynced(ctx, p.ID)
	}

	if failed {
		s.setStatus(StatusOffline)
		return fmt.Errorf("some pending prompts were not synced")
	}
	s.setStatus(StatusSynced)
	return nil
}
