// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type clientConflictService struct {
	records   *store.RecordStore
	conflicts *ConflictSet
	sync      ClientSyncService
	now       func() time.Time

	logger *logger.Logger
}

// NewClientConflictService returns the resolution applier. Every resolution
// is followed by a sync pass through syncService.
func NewClientConflictService(records *store.RecordStore, conflicts *ConflictSet, syncService ClientSyncService, logger *logger.Logger) ClientConflictService {
	return &clientConflictService{
		records:   records,
		conflicts: conflicts,
		sync:      syncService,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *clientConflictService) ListConflicts() []models.Conflict {
	return s.conflicts.List()
}

func (s *clientConflictService) Resolve(ctx context.Context, id string, choice models.ResolutionChoice) error {
	if !choice.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidResolutionChoice, choice)
	}

	resolved, err := s.resolveExclusive(ctx, []string{id}, func(models.Conflict) (models.ResolutionChoice, bool) {
		return choice, true
	})
	if err != nil {
		return err
	}
	if resolved > 0 {
		s.syncAfterResolution(ctx)
	}
	return nil
}

func (s *clientConflictService) ResolveAll(ctx context.Context, choice models.ResolutionChoice) (int, error) {
	if !choice.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidResolutionChoice, choice)
	}

	return s.resolveAndSync(ctx, func(models.Conflict) (models.ResolutionChoice, bool) {
		return choice, true
	})
}

func (s *clientConflictService) ApplyPolicy(ctx context.Context, policy models.ConflictPolicy) (int, error) {
	if policy == models.PolicyManual || policy == "" || s.conflicts.Len() == 0 {
		return 0, nil
	}

	return s.resolveAndSync(ctx, policy.Choose)
}

func (s *clientConflictService) resolveAndSync(ctx context.Context, choose func(models.Conflict) (models.ResolutionChoice, bool)) (int, error) {
	list := s.conflicts.List()
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}

	resolved, err := s.resolveExclusive(ctx, ids, choose)
	if err != nil {
		return resolved, err
	}
	if resolved > 0 {
		s.syncAfterResolution(ctx)
	}
	return resolved, nil
}

// resolveExclusive runs resolve between sync passes, so an identity
// reconciliation is never half applied while conflicts are read.
func (s *clientConflictService) resolveExclusive(ctx context.Context, ids []string, choose func(models.Conflict) (models.ResolutionChoice, bool)) (int, error) {
	var resolved int
	err := s.sync.Exclusive(func() error {
		var err error
		resolved, err = s.resolve(ctx, ids, choose)
		return err
	})
	return resolved, err
}

// resolve writes the chosen side of every listed conflict into the record
// store and removes the conflicts. Ids without a conflict are skipped.
func (s *clientConflictService) resolve(ctx context.Context, ids []string, choose func(models.Conflict) (models.ResolutionChoice, bool)) (int, error) {
	log := s.logger.GetChildLogger()

	now := s.now()
	resolved := 0
	for _, id := range ids {
		c, ok := s.conflicts.Get(id)
		if !ok {
			continue
		}
		choice, ok := choose(c)
		if !ok {
			continue
		}

		winner := chosenVersion(c, choice)
		prev := latestUpdate(c)
		if current, exists := s.records.Get(id); exists {
			if current.UpdatedAt.After(prev) {
				prev = current.UpdatedAt
			}
			// edits made while the conflict was open are the local side
			if choice == models.ChoiceLocal && current.UpdatedAt.After(c.Local.UpdatedAt) {
				winner = current
			}
		}
		winner.UpdatedAt = nextUpdatedAt(prev, now)

		s.records.Upsert(winner)
		s.conflicts.Remove(id)
		resolved++

		log.Info().
			Str("func", "clientConflictService.resolve").
			Str("task_id", id).
			Str("choice", string(choice)).
			Msg("conflict resolved")
	}

	if resolved == 0 {
		return 0, nil
	}

	if err := s.records.Flush(ctx); err != nil {
		return resolved, fmt.Errorf("%w: %w", ErrPersistLocalState, err)
	}
	if err := s.conflicts.Flush(ctx); err != nil {
		return resolved, fmt.Errorf("%w: %w", ErrPersistLocalState, err)
	}

	return resolved, nil
}

func (s *clientConflictService) syncAfterResolution(ctx context.Context) {
	if _, err := s.sync.TriggerSync(ctx); err != nil {
		s.logger.Err(err).
			Str("func", "clientConflictService.syncAfterResolution").
			Msg("sync after resolution failed, resolved records stay pending")
	}
}

func chosenVersion(c models.Conflict, choice models.ResolutionChoice) models.Task {
	var winner models.Task
	if choice == models.ChoiceLocal {
		winner = c.Local.Clone()
	} else {
		winner = c.Remote.Clone()
	}
	winner.ID = c.ID
	return winner
}

func latestUpdate(c models.Conflict) time.Time {
	if c.Remote.UpdatedAt.After(c.Local.UpdatedAt) {
		return c.Remote.UpdatedAt
	}
	return c.Local.UpdatedAt
}

// nextUpdatedAt returns now, or the smallest step after prev when the clock
// has not moved past it.
func nextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}
