package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ConflictSaver persists the unresolved conflicts.
type ConflictSaver interface {
	LoadConflicts(ctx context.Context) ([]models.Conflict, error)
	SaveConflicts(ctx context.Context, conflicts []models.Conflict) error
}

// SyncStateSaver persists the sync cursor together with the ids of the
// records whose submission failed in the last completed pass. Both are
// written in one call so the cursor never advances past a failed record.
type SyncStateSaver interface {
	LoadCursor(ctx context.Context) (time.Time, error)
	LoadOutbox(ctx context.Context) ([]string, error)
	SaveSyncState(ctx context.Context, cursor time.Time, outbox []string) error
	SaveOutbox(ctx context.Context, outbox []string) error
}

// SessionSaver persists the authenticated client session.
type SessionSaver interface {
	// LoadSession returns ErrSessionNotFound when nothing was saved.
	LoadSession(ctx context.Context) (models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error
}

// LocalStorage is the client's durable key-value contract. It is
// implemented by the SQLite replica and by a single JSON file.
type LocalStorage interface {
	RecordSaver
	ConflictSaver
	SyncStateSaver
	SessionSaver

	// Close releases the underlying resources.
	Close() error
}
