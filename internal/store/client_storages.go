package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// ClientStorages groups the client-side persistence: the durable local
// storage and the in-memory record store backed by it.
type ClientStorages struct {
	Local   LocalStorage
	Records *RecordStore
}

// NewClientStorages opens the local storage selected by cfg.Driver, runs
// migrations when it is SQLite and loads the record store from it.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Str("path", cfg.Path).Msg("creating client storages...")

	var local LocalStorage
	switch cfg.Driver {
	case config.DriverFile:
		fileStorage, err := NewFileLocalStorage(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		local = fileStorage
	default:
		db, err := NewConnectSQLite(ctx, cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		local = NewSQLiteLocalStorage(db, log)
	}

	records := NewRecordStore(local)
	if err := records.Load(ctx); err != nil {
		_ = local.Close()
		return nil, err
	}

	return &ClientStorages{
		Local:   local,
		Records: records,
	}, nil
}
