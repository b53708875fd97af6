package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
)

// ClientServices is the fully wired client engine. Every component is an
// instance owned by this struct.
type ClientServices struct {
	AuthService     ClientAuthService
	TaskService     ClientTaskService
	SyncService     ClientSyncService
	ConflictService ClientConflictService
	SyncJob         ClientSyncJob

	records   *store.RecordStore
	conflicts *ConflictSet
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	validator := validators.NewTaskValidator()

	conflicts := NewConflictSet(storages.Local)
	identity := NewIdentityReconciler(storages.Records, conflicts)

	authSvc := NewClientAuthService(storages.Local, serverAdapter, validator, logger)
	syncSvc := NewClientSyncService(storages.Records, conflicts, identity, storages.Local, serverAdapter, authSvc, SyncOptions{
		RequestTimeout: cfg.Adapter.RequestTimeout,
		MaxParallel:    cfg.Workers.MaxParallel,
	}, logger)
	conflictSvc := NewClientConflictService(storages.Records, conflicts, syncSvc, logger)
	syncJob := NewClientSyncJob(syncSvc, conflictSvc, cfg.Workers.ConflictPolicy, logger)

	return &ClientServices{
		AuthService:     authSvc,
		TaskService:     NewClientTaskService(storages.Records, validator, syncJob, logger),
		SyncService:     syncSvc,
		ConflictService: conflictSvc,
		SyncJob:         syncJob,
		records:         storages.Records,
		conflicts:       conflicts,
	}
}

// Reload reads the replica, the conflicts and the sync state back from local
// storage. It is called at startup and after logout wiped the storage.
func (s *ClientServices) Reload(ctx context.Context) error {
	return errors.Join(
		s.records.Load(ctx),
		s.conflicts.Load(ctx),
		s.SyncService.Load(ctx),
	)
}

// Logout stops the background job, waits for the pass in flight, then ends
// the session and forgets the in-memory state of the wiped replica.
func (s *ClientServices) Logout(ctx context.Context) error {
	s.SyncJob.Stop()

	return s.SyncService.Exclusive(func() error {
		if err := s.AuthService.Logout(ctx); err != nil {
			return err
		}

		s.SyncService.Reset()
		return s.Reload(ctx)
	})
}
