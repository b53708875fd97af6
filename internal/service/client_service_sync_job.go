package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService     ClientSyncService
	conflictService ClientConflictService
	policy          models.ConflictPolicy

	// triggers has capacity 1. Whatever arrived while a pass ran is dropped
	// once the pass ends; the next trigger picks up later mutations.
	triggers chan models.TriggerReason

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a job that runs syncService.TriggerSync on a
// ticker and on every trigger, then settles conflicts with policy. The job
// is idle until Start is called; triggers fired before that are kept.
func NewClientSyncJob(syncService ClientSyncService, conflictService ClientConflictService, policy models.ConflictPolicy, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService:     syncService,
		conflictService: conflictService,
		policy:          policy,
		triggers:        make(chan models.TriggerReason, 1),
		logger:          logger,
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a pass every interval and on
// every trigger. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runPass(jobCtx, models.TriggerTimer)
			case reason := <-j.triggers:
				j.runPass(jobCtx, reason)
			}
			j.dropPending(t.C)
		}
	}()
}

// Trigger implements SyncTrigger. It never blocks.
func (j *clientSyncJob) Trigger(reason models.TriggerReason) {
	select {
	case j.triggers <- reason:
	default:
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// dropPending discards the trigger and the tick that arrived during a pass.
func (j *clientSyncJob) dropPending(tick <-chan time.Time) {
	select {
	case <-j.triggers:
	default:
	}
	select {
	case <-tick:
	default:
	}
}

func (j *clientSyncJob) runPass(ctx context.Context, reason models.TriggerReason) {
	log := j.logger.GetChildLogger()

	_, err := j.syncService.TriggerSync(ctx)
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		log.Debug().Str("func", "clientSyncJob.runPass").Str("reason", string(reason)).Msg("skipping sync, not authenticated")
		return
	case err != nil:
		log.Err(err).Str("func", "clientSyncJob.runPass").Str("reason", string(reason)).Msg("sync pass failed")
	}

	if j.conflictService == nil {
		return
	}
	resolved, err := j.conflictService.ApplyPolicy(ctx, j.policy)
	if err != nil {
		log.Err(err).Str("func", "clientSyncJob.runPass").Str("policy", string(j.policy)).Msg("failed to apply conflict policy")
		return
	}
	if resolved > 0 {
		log.Info().Str("func", "clientSyncJob.runPass").Str("policy", string(j.policy)).Int("resolved", resolved).Msg("conflicts settled by policy")
	}
}
