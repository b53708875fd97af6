// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	kvCursor  = "cursor"
	kvOutbox  = "outbox"
	kvSession = "session"
)

// sqliteLocalStorage is the SQLite-backed [LocalStorage]. Records and
// conflicts are stored as JSON payloads keyed by id; scalar state lives in a
// key-value table.
type sqliteLocalStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteLocalStorage wraps an already migrated SQLite connection.
func NewSQLiteLocalStorage(db *DB, log *logger.Logger) LocalStorage {
	return &sqliteLocalStorage{db: db, logger: log}
}

func (s *sqliteLocalStorage) LoadRecords(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectLocalRecords)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteLocalStorage.LoadRecords").Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.Task
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var task models.Task
		if err = json.Unmarshal([]byte(payload), &task); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		records = append(records, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (s *sqliteLocalStorage) SaveRecords(ctx context.Context, records []models.Task) error {
	return s.replaceAll(ctx, "sqliteLocalStorage.SaveRecords", deleteLocalRecords, func(tx *sql.Tx) error {
		for i, r := range records {
			payload, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrEncoding, err)
			}
			if _, err = tx.ExecContext(ctx, insertLocalRecord, r.ID, i, string(payload)); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (s *sqliteLocalStorage) LoadConflicts(ctx context.Context) ([]models.Conflict, error) {
	rows, err := s.db.QueryContext(ctx, selectLocalConflicts)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteLocalStorage.LoadConflicts").Msg("failed to query conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		var c models.Conflict
		if err = json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		conflicts = append(conflicts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (s *sqliteLocalStorage) SaveConflicts(ctx context.Context, conflicts []models.Conflict) error {
	return s.replaceAll(ctx, "sqliteLocalStorage.SaveConflicts", deleteLocalConflicts, func(tx *sql.Tx) error {
		for _, c := range conflicts {
			payload, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrEncoding, err)
			}
			if _, err = tx.ExecContext(ctx, insertLocalConflict, c.ID, string(payload)); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (s *sqliteLocalStorage) LoadCursor(ctx context.Context) (time.Time, error) {
	var cursor time.Time
	found, err := s.getValue(ctx, kvCursor, &cursor)
	if err != nil || !found {
		return time.Time{}, err
	}
	return cursor, nil
}

func (s *sqliteLocalStorage) LoadOutbox(ctx context.Context) ([]string, error) {
	var outbox []string
	if _, err := s.getValue(ctx, kvOutbox, &outbox); err != nil {
		return nil, err
	}
	return outbox, nil
}

func (s *sqliteLocalStorage) SaveSyncState(ctx context.Context, cursor time.Time, outbox []string) error {
	return s.inTx(ctx, "sqliteLocalStorage.SaveSyncState", func(tx *sql.Tx) error {
		if err := putValue(ctx, tx, kvCursor, cursor); err != nil {
			return err
		}
		return putValue(ctx, tx, kvOutbox, outbox)
	})
}

func (s *sqliteLocalStorage) SaveOutbox(ctx context.Context, outbox []string) error {
	return s.inTx(ctx, "sqliteLocalStorage.SaveOutbox", func(tx *sql.Tx) error {
		return putValue(ctx, tx, kvOutbox, outbox)
	})
}

func (s *sqliteLocalStorage) LoadSession(ctx context.Context) (models.Session, error) {
	var session models.Session
	found, err := s.getValue(ctx, kvSession, &session)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *sqliteLocalStorage) SaveSession(ctx context.Context, session models.Session) error {
	return s.inTx(ctx, "sqliteLocalStorage.SaveSession", func(tx *sql.Tx) error {
		return putValue(ctx, tx, kvSession, session)
	})
}

// ClearSession drops the session together with the replicated data: the
// next login may belong to another user.
func (s *sqliteLocalStorage) ClearSession(ctx context.Context) error {
	return s.inTx(ctx, "sqliteLocalStorage.ClearSession", func(tx *sql.Tx) error {
		for _, stmt := range []string{deleteLocalRecords, deleteLocalConflicts, deleteLocalKV} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (s *sqliteLocalStorage) Close() error {
	return s.db.Close()
}

func (s *sqliteLocalStorage) getValue(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, selectLocalKV, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteLocalStorage.getValue").Str("key", key).Msg("failed to read value")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrEncoding, key, err)
	}
	return true, nil
}

func putValue(ctx context.Context, tx *sql.Tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, key, err)
	}
	if _, err = tx.ExecContext(ctx, upsertLocalKV, key, string(raw)); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteLocalStorage) replaceAll(ctx context.Context, funcName, deleteStmt string, insert func(tx *sql.Tx) error) error {
	return s.inTx(ctx, funcName, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteStmt); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return insert(tx)
	})
}

func (s *sqliteLocalStorage) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", funcName).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		s.logger.Err(err).Str("func", funcName).Msg("transaction rolled back")
		return err
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", funcName).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
