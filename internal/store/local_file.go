// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// fileLocalStorage keeps the whole client state in one JSON document. Every
// save rewrites the file through a temporary sibling and a rename, so a
// crash leaves either the old or the new state on disk.
type fileLocalStorage struct {
	path string

	mu    sync.Mutex
	state filePersistedState
}

type filePersistedState struct {
	Records   []models.Task     `json:"records"`
	Conflicts []models.Conflict `json:"conflicts"`
	Cursor    time.Time         `json:"cursor"`
	Outbox    []string          `json:"outbox,omitempty"`
	Session   *models.Session   `json:"session,omitempty"`
}

// NewFileLocalStorage opens (or lazily creates) the JSON state file at path.
func NewFileLocalStorage(path string) (LocalStorage, error) {
	s := &fileLocalStorage{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileLocalStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if err = json.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("%w: decode local storage file: %w", ErrEncoding, err)
	}

	return nil
}

// persist must be called with s.mu held.
func (s *fileLocalStorage) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

func (s *fileLocalStorage) LoadRecords(_ context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.state.Records...), nil
}

func (s *fileLocalStorage) SaveRecords(_ context.Context, records []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Records = append([]models.Task(nil), records...)
	return s.persist()
}

func (s *fileLocalStorage) LoadConflicts(_ context.Context) ([]models.Conflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Conflict(nil), s.state.Conflicts...), nil
}

func (s *fileLocalStorage) SaveConflicts(_ context.Context, conflicts []models.Conflict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Conflicts = append([]models.Conflict(nil), conflicts...)
	return s.persist()
}

func (s *fileLocalStorage) LoadCursor(_ context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Cursor, nil
}

func (s *fileLocalStorage) LoadOutbox(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.Outbox...), nil
}

func (s *fileLocalStorage) SaveSyncState(_ context.Context, cursor time.Time, outbox []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Cursor = cursor
	s.state.Outbox = append([]string(nil), outbox...)
	return s.persist()
}

func (s *fileLocalStorage) SaveOutbox(_ context.Context, outbox []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Outbox = append([]string(nil), outbox...)
	return s.persist()
}

func (s *fileLocalStorage) LoadSession(_ context.Context) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return models.Session{}, ErrSessionNotFound
	}
	return *s.state.Session, nil
}

func (s *fileLocalStorage) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Session = &session
	return s.persist()
}

// ClearSession drops the session together with the replicated data: the
// next login may belong to another user.
func (s *fileLocalStorage) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = filePersistedState{}
	return s.persist()
}

func (s *fileLocalStorage) Close() error {
	return nil
}
