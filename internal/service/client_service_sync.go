// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	syncFlightKey = "sync"

	defaultRequestTimeout = 10 * time.Second
	defaultMaxParallel    = 4
)

// SyncOptions tunes a [ClientSyncService].
type SyncOptions struct {
	// RequestTimeout bounds every single request of a pass.
	RequestTimeout time.Duration
	// MaxParallel bounds the concurrent submissions of a pass.
	MaxParallel int
}

type clientSyncService struct {
	records   *store.RecordStore
	conflicts *ConflictSet
	identity  *IdentityReconciler
	local     store.SyncStateSaver
	adapter   adapter.ServerAdapter
	auth      Authenticator

	requestTimeout time.Duration
	maxParallel    int
	now            func() time.Time

	flight singleflight.Group
	// passMu is held for the whole pass and by Exclusive.
	passMu sync.Mutex

	mu     sync.RWMutex
	state  models.SyncState
	cursor time.Time
	outbox *idSet

	subsMu  sync.Mutex
	subs    map[int]chan models.SyncEvent
	nextSub int

	logger *logger.Logger
}

// NewClientSyncService wires the sync orchestrator. The cursor and the outbox
// are read from local by Load.
func NewClientSyncService(
	records *store.RecordStore,
	conflicts *ConflictSet,
	identity *IdentityReconciler,
	local store.SyncStateSaver,
	serverAdapter adapter.ServerAdapter,
	auth Authenticator,
	opts SyncOptions,
	logger *logger.Logger,
) ClientSyncService {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = defaultMaxParallel
	}

	s := &clientSyncService{
		records:        records,
		conflicts:      conflicts,
		identity:       identity,
		local:          local,
		adapter:        serverAdapter,
		auth:           auth,
		requestTimeout: opts.RequestTimeout,
		maxParallel:    opts.MaxParallel,
		now:            time.Now,
		outbox:         newIDSet(nil),
		subs:           make(map[int]chan models.SyncEvent),
		logger:         logger,
	}
	identity.Register(s.outbox)

	return s
}

// Load implements [ClientSyncService].
func (s *clientSyncService) Load(ctx context.Context) error {
	cursor, err := s.local.LoadCursor(ctx)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	outbox, err := s.local.LoadOutbox(ctx)
	if err != nil {
		return fmt.Errorf("load outbox: %w", err)
	}

	s.mu.Lock()
	s.cursor = cursor
	s.state = models.SyncState{LastSyncAt: cursor}
	s.mu.Unlock()
	s.outbox.Replace(outbox)

	return nil
}

// TriggerSync implements [ClientSyncService]. Concurrent callers share one
// pass. The pass is detached from ctx: cancelling ctx only stops the wait.
func (s *clientSyncService) TriggerSync(ctx context.Context) (models.SyncResult, error) {
	if !s.authenticated() {
		return models.SyncResult{}, ErrNotAuthenticated
	}

	passCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(syncFlightKey, func() (any, error) {
		return s.runPass(passCtx)
	})

	select {
	case res := <-ch:
		result, _ := res.Val.(models.SyncResult)
		return result, res.Err
	case <-ctx.Done():
		return models.SyncResult{}, ctx.Err()
	}
}

// Exclusive implements [ClientSyncService]. fn runs after the pass in flight,
// if any, has finished; passes triggered meanwhile start after fn returns and
// check the session again.
func (s *clientSyncService) Exclusive(fn func() error) error {
	s.passMu.Lock()
	defer s.passMu.Unlock()
	return fn()
}

func (s *clientSyncService) authenticated() bool {
	return s.auth != nil && s.auth.IsAuthenticated()
}

func (s *clientSyncService) State() models.SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *clientSyncService) Cursor() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// Subscribe implements [ClientSyncService]. Events are dropped for a
// subscriber that has not consumed the previous one.
func (s *clientSyncService) Subscribe() (<-chan models.SyncEvent, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan models.SyncEvent, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *clientSyncService) publish(event models.SyncEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (s *clientSyncService) runPass(ctx context.Context) (models.SyncResult, error) {
	log := s.logger.GetChildLogger()

	s.passMu.Lock()
	defer s.passMu.Unlock()

	// the session may have ended while this pass waited for Exclusive
	if !s.authenticated() {
		return models.SyncResult{}, ErrNotAuthenticated
	}

	passStart := s.now()

	s.mu.Lock()
	s.state.InFlight = true
	cursor := s.cursor
	s.mu.Unlock()

	batch := s.pendingBatch(cursor)
	log.Debug().Str("func", "clientSyncService.runPass").Int("pending", len(batch)).Time("cursor", cursor).Msg("sync pass started")

	submissions := s.submitAll(ctx, batch, cursor)

	resp, fetchErr := s.fetchDelta(ctx, cursor, changedRecords(batch, submissions))
	if fetchErr != nil {
		log.Err(fetchErr).Str("func", "clientSyncService.runPass").Msg("delta fetch failed, applying confirmed writes only")
		resp = models.SyncResponse{}
	}

	out := Merge(MergeInput{
		Local:       s.records.Snapshot(),
		Delta:       resp.Records,
		Conflicts:   resp.Conflicts,
		Submissions: submissions,
		Unresolved:  s.unresolved(),
		PassStart:   passStart,
	})

	applyErr := s.apply(ctx, out)
	outbox := s.nextOutbox(submissions, out)
	outbox = append(outbox, s.stampedAtPassStart(batch, submissions, passStart, outbox)...)

	var passErr error
	switch {
	case fetchErr != nil:
		passErr = fmt.Errorf("%w: %w", ErrDeltaFetch, fetchErr)
	case applyErr != nil:
		passErr = applyErr
	}

	if passErr == nil {
		if err := s.local.SaveSyncState(ctx, passStart, outbox); err != nil {
			passErr = fmt.Errorf("%w: save sync state: %w", ErrPersistLocalState, err)
		}
	} else if err := s.local.SaveOutbox(ctx, outbox); err != nil {
		log.Err(err).Str("func", "clientSyncService.runPass").Msg("failed to save outbox")
	}

	s.outbox.Replace(outbox)

	s.mu.Lock()
	if passErr == nil {
		s.cursor = passStart
		s.state.LastSyncAt = passStart
		s.state.LastError = ""
	} else {
		s.state.LastError = shortError(passErr)
	}
	s.state.InFlight = false
	result := s.result(submissions, resp, out)
	s.mu.Unlock()

	s.publish(models.SyncEvent{LastSyncAt: result.LastSyncAt, Err: passErr})

	log.Info().
		Str("func", "clientSyncService.runPass").
		Int("submitted", result.Submitted).
		Int("failed", result.Failed).
		Int("received", result.Received).
		Int("conflicts", result.Conflicts).
		AnErr("error", passErr).
		Msg("sync pass finished")

	return result, passErr
}

// pendingBatch returns the records to submit: changed after cursor or held in
// the outbox, minus the ones waiting for a resolution.
func (s *clientSyncService) pendingBatch(cursor time.Time) []models.Task {
	conflicted := s.conflicts.IDs()
	pending := s.records.SnapshotPending(cursor, s.outbox.List())

	return slices.DeleteFunc(pending, func(t models.Task) bool {
		_, skip := conflicted[t.ID]
		return skip
	})
}

func (s *clientSyncService) submitAll(ctx context.Context, batch []models.Task, cursor time.Time) []Submission {
	submissions := make([]Submission, len(batch))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, task := range batch {
		g.Go(func() error {
			submissions[i] = s.submit(ctx, task, cursor)
			return nil
		})
	}
	_ = g.Wait()

	return submissions
}

func (s *clientSyncService) submit(ctx context.Context, task models.Task, cursor time.Time) Submission {
	log := s.logger.GetChildLogger()

	sub := Submission{ID: task.ID}
	if IsProvisional(task.ID) && task.Deleted {
		sub.Outcome = SubmissionDropped
		return sub
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	switch {
	case IsProvisional(task.ID):
		created, err := s.adapter.CreateTask(reqCtx, models.CreateTaskRequest{ClientRef: task.ID, Task: task})
		switch {
		case err != nil:
			sub.Err = err
		case created.ID == "":
			sub.Err = errors.New("server returned no id")
		default:
			sub.Outcome = SubmissionAcked
			sub.Authoritative = created.ID
		}

	case task.Deleted:
		err := s.adapter.DeleteTask(reqCtx, task.ID)
		if err == nil || errors.Is(err, adapter.ErrNotFound) {
			sub.Outcome = SubmissionDeleted
		} else {
			sub.Err = err
		}

	default:
		_, err := s.adapter.UpdateTask(reqCtx, models.UpdateTaskRequest{Task: task, LastSyncAt: cursor})
		switch {
		case err == nil:
			sub.Outcome = SubmissionUpdated
		case errors.Is(err, adapter.ErrVersionConflict):
			sub.Outcome = SubmissionConflicted
		default:
			sub.Err = err
		}
	}

	if sub.Err != nil {
		log.Err(sub.Err).
			Str("func", "clientSyncService.submit").
			Str("task_id", task.ID).
			Msg("submission failed, record stays pending")
	}

	return sub
}

// changedRecords is the batch as the server should see it: acknowledged
// creations under their authoritative id, unacknowledged ones left out.
func changedRecords(batch []models.Task, submissions []Submission) []models.Task {
	out := make([]models.Task, 0, len(batch))
	for i, task := range batch {
		sub := submissions[i]
		switch {
		case sub.Outcome == SubmissionAcked:
			task.ID = sub.Authoritative
		case sub.Outcome == SubmissionDropped, IsProvisional(task.ID):
			continue
		}
		out = append(out, task)
	}
	return out
}

func (s *clientSyncService) fetchDelta(ctx context.Context, cursor time.Time, changed []models.Task) (models.SyncResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	return s.adapter.Sync(reqCtx, models.SyncRequest{LastSyncAt: cursor, ChangedRecords: changed})
}

func (s *clientSyncService) unresolved() map[string]models.Conflict {
	list := s.conflicts.List()
	out := make(map[string]models.Conflict, len(list))
	for _, c := range list {
		out[c.ID] = c
	}
	return out
}

func (s *clientSyncService) apply(ctx context.Context, out MergeOutput) error {
	for _, m := range out.Mappings {
		if !s.identity.Reconcile(m.Provisional, m.Authoritative) {
			s.logger.Debug().
				Str("func", "clientSyncService.apply").
				Str("provisional", m.Provisional).
				Msg("acknowledgment discarded, record is gone")
		}
	}
	for _, id := range out.Removals {
		s.records.Remove(id)
		s.conflicts.Remove(id)
	}
	for _, t := range out.Upserts {
		s.records.Upsert(t)
	}
	for _, c := range out.Conflicts {
		s.conflicts.Put(c)
	}

	if err := errors.Join(s.records.Flush(ctx), s.conflicts.Flush(ctx)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistLocalState, err)
	}
	return nil
}

// nextOutbox lists the records that must be resubmitted regardless of the
// cursor: failed submissions and rejected updates the server did not report
// as a conflict.
func (s *clientSyncService) nextOutbox(submissions []Submission, out MergeOutput) []string {
	registered := make(map[string]struct{}, len(out.Conflicts))
	for _, c := range out.Conflicts {
		registered[c.ID] = struct{}{}
	}

	var ids []string
	for _, sub := range submissions {
		switch sub.Outcome {
		case SubmissionFailed:
		case SubmissionConflicted:
			if _, ok := registered[sub.ID]; ok {
				continue
			}
		default:
			continue
		}
		if _, ok := s.records.Get(sub.ID); ok {
			ids = append(ids, sub.ID)
		}
	}
	return ids
}

// stampedAtPassStart lists the records written during the pass in the same
// clock tick as passStart. The new cursor equals their UpdatedAt, so only the
// outbox keeps them pending. Ids in skip are left out.
func (s *clientSyncService) stampedAtPassStart(batch []models.Task, submissions []Submission, passStart time.Time, skip []string) []string {
	sent := make(map[string]time.Time, len(batch))
	for i, task := range batch {
		id := task.ID
		if submissions[i].Outcome == SubmissionAcked {
			id = submissions[i].Authoritative
		}
		sent[id] = task.UpdatedAt
	}

	var ids []string
	for _, task := range s.records.List() {
		if !task.UpdatedAt.Equal(passStart) || slices.Contains(skip, task.ID) {
			continue
		}
		if at, ok := sent[task.ID]; ok && at.Equal(task.UpdatedAt) {
			continue
		}
		if _, conflicted := s.conflicts.Get(task.ID); conflicted {
			continue
		}
		ids = append(ids, task.ID)
	}
	return ids
}

// result must be called with s.mu held.
func (s *clientSyncService) result(submissions []Submission, resp models.SyncResponse, out MergeOutput) models.SyncResult {
	res := models.SyncResult{
		Received:   len(resp.Records),
		Conflicts:  len(out.Conflicts),
		Reconciled: out.Mappings,
		LastSyncAt: s.cursor,
	}
	for _, sub := range submissions {
		if sub.Outcome == SubmissionDropped {
			continue
		}
		res.Submitted++
		if sub.Outcome == SubmissionFailed {
			res.Failed++
		}
	}
	return res
}

// Reset implements [ClientSyncService].
func (s *clientSyncService) Reset() {
	s.mu.Lock()
	s.cursor = time.Time{}
	s.state = models.SyncState{}
	s.mu.Unlock()
	s.outbox.Replace(nil)
}

func shortError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "sync timed out"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "session expired, log in again"
	case errors.Is(err, adapter.ErrBadGateway):
		return "server unreachable"
	}
	return err.Error()
}

// idSet is an ordered set of record ids safe for concurrent use.
type idSet struct {
	mu  sync.Mutex
	ids []string
}

func newIDSet(ids []string) *idSet {
	s := &idSet{}
	s.Replace(ids)
	return s
}

func (s *idSet) Replace(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = s.ids[:0]
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

func (s *idSet) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

// Rekey implements [Rekeyer].
func (s *idSet) Rekey(oldID, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.ids))
	out := s.ids[:0]
	for _, id := range s.ids {
		if id == oldID {
			id = newID
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	s.ids = out
}
