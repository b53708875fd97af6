// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// ConflictSet holds the unresolved conflicts, at most one per task id.
type ConflictSet struct {
	mu    sync.RWMutex
	items map[string]models.Conflict
	dirty bool

	saver     store.ConflictSaver
	persistMu sync.Mutex
}

// NewConflictSet returns an empty set persisted through saver.
func NewConflictSet(saver store.ConflictSaver) *ConflictSet {
	return &ConflictSet{
		items: make(map[string]models.Conflict),
		saver: saver,
	}
}

// Load replaces the in-memory set with the persisted one.
func (s *ConflictSet) Load(ctx context.Context) error {
	conflicts, err := s.saver.LoadConflicts(ctx)
	if err != nil {
		return fmt.Errorf("load conflicts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]models.Conflict, len(conflicts))
	for _, c := range conflicts {
		s.items[c.ID] = c
	}
	s.dirty = false
	return nil
}

// List returns the conflicts ordered by detection time, then id.
func (s *ConflictSet) List() []models.Conflict {
	s.mu.RLock()
	out := make([]models.Conflict, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Conflict) int {
		if c := a.DetectedAt.Compare(b.DetectedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// IDs returns the ids of all conflicted tasks.
func (s *ConflictSet) IDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{}, len(s.items))
	for id := range s.items {
		ids[id] = struct{}{}
	}
	return ids
}

func (s *ConflictSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *ConflictSet) Get(id string) (models.Conflict, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	return c, ok
}

// Put stores c, replacing an older conflict for the same id.
func (s *ConflictSet) Put(c models.Conflict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.ID] = c
	s.dirty = true
}

// Remove deletes the conflict for id and reports whether there was one.
func (s *ConflictSet) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	s.dirty = true
	return true
}

// Rekey implements [Rekeyer].
func (s *ConflictSet) Rekey(oldID, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[oldID]
	if !ok {
		return
	}
	delete(s.items, oldID)
	c.ID = newID
	c.Local.ID = newID
	c.Remote.ID = newID
	s.items[newID] = c
	s.dirty = true
}

// Flush persists the set when it changed since the last Load or Flush.
func (s *ConflictSet) Flush(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	conflicts := make([]models.Conflict, 0, len(s.items))
	for _, c := range s.items {
		conflicts = append(conflicts, c)
	}
	s.dirty = false
	s.mu.Unlock()

	slices.SortFunc(conflicts, func(a, b models.Conflict) int { return cmp.Compare(a.ID, b.ID) })

	if err := s.saver.SaveConflicts(ctx, conflicts); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return fmt.Errorf("save conflicts: %w", err)
	}
	return nil
}
