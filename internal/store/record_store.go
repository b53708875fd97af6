// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// RecordSaver persists the full content of the record store.
type RecordSaver interface {
	LoadRecords(ctx context.Context) ([]models.Task, error)
	SaveRecords(ctx context.Context, records []models.Task) error
}

// RecordStore is the in-memory replica of the user's tasks backed by a
// [RecordSaver]. All methods are safe for concurrent use and never block on
// I/O except Load and Flush.
//
// Upsert is monotonic: a write whose UpdatedAt is older than the stored
// value is silently ignored. Both local edits and merged server results go
// through it.
type RecordStore struct {
	mu    sync.RWMutex
	items map[string]models.Task
	order []string

	saver RecordSaver

	// persistMu serializes writes to the saver; generation lets a flush
	// skip a snapshot that a newer flush has already written.
	persistMu  sync.Mutex
	generation uint64
	persisted  uint64
}

// NewRecordStore returns an empty store that persists through saver.
func NewRecordStore(saver RecordSaver) *RecordStore {
	return &RecordStore{
		items: make(map[string]models.Task),
		saver: saver,
	}
}

// Load replaces the in-memory content with the persisted one.
func (s *RecordStore) Load(ctx context.Context) error {
	records, err := s.saver.LoadRecords(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]models.Task, len(records))
	s.order = s.order[:0]
	for _, r := range records {
		if _, dup := s.items[r.ID]; !dup {
			s.order = append(s.order, r.ID)
		}
		s.items[r.ID] = r.Clone()
	}

	return nil
}

// Get returns the record stored under id.
func (s *RecordStore) Get(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[id]
	if !ok {
		return models.Task{}, false
	}
	return t.Clone(), true
}

// Upsert inserts task or replaces the stored record with the same id. It
// reports whether the write was applied: a task older than the stored
// version is rejected.
func (s *RecordStore) Upsert(task models.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, exists := s.items[task.ID]
	if exists && task.UpdatedAt.Before(prev.UpdatedAt) {
		return false
	}

	if !exists {
		s.order = append(s.order, task.ID)
	}
	s.items[task.ID] = task.Clone()
	s.generation++
	return true
}

// Remove deletes the record stored under id and reports whether it existed.
func (s *RecordStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}

	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	s.generation++
	return true
}

// Rename moves the record stored under oldID to newID, keeping its position
// and every other field. If a record already exists under newID, the newer of
// the two survives. Rename reports false when oldID is absent.
func (s *RecordStore) Rename(oldID, newID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.items[oldID]
	if !ok {
		return false
	}
	if oldID == newID {
		return true
	}

	task.ID = newID
	existing, clash := s.items[newID]

	delete(s.items, oldID)
	if clash {
		s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == oldID })
		if task.UpdatedAt.Before(existing.UpdatedAt) {
			s.generation++
			return true
		}
	} else {
		for i, v := range s.order {
			if v == oldID {
				s.order[i] = newID
				break
			}
		}
	}

	s.items[newID] = task
	s.generation++
	return true
}

// List returns all records, tombstones included, in insertion order.
func (s *RecordStore) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// SnapshotPending returns, atomically, the records changed strictly after
// cursor plus the records listed in extraIDs, in insertion order.
func (s *RecordStore) SnapshotPending(cursor time.Time, extraIDs []string) []models.Task {
	extra := make(map[string]struct{}, len(extraIDs))
	for _, id := range extraIDs {
		extra[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, id := range s.order {
		t := s.items[id]
		if _, forced := extra[id]; forced || t.UpdatedAt.After(cursor) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Snapshot returns an id-keyed copy of the store.
func (s *RecordStore) Snapshot() map[string]models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Task, len(s.items))
	for id, t := range s.items {
		out[id] = t.Clone()
	}
	return out
}

// Flush writes the current content through the saver. Concurrent flushes
// are serialized and a flush that finds its generation already persisted is
// skipped.
func (s *RecordStore) Flush(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.RLock()
	gen := s.generation
	if gen == s.persisted && gen != 0 {
		s.mu.RUnlock()
		return nil
	}
	records := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.items[id].Clone())
	}
	s.mu.RUnlock()

	if err := s.saver.SaveRecords(ctx, records); err != nil {
		return fmt.Errorf("save records: %w", err)
	}

	s.persisted = gen
	return nil
}
