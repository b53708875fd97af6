package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/mock"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type staticAuth struct {
	token string
}

func (a staticAuth) IsAuthenticated() bool { return a.token != "" }
func (a staticAuth) AuthToken() string     { return a.token }

// sessionAuth is an Authenticator whose token can change during a test.
type sessionAuth struct {
	mu    sync.Mutex
	token string
}

func (a *sessionAuth) IsAuthenticated() bool { return a.AuthToken() != "" }

func (a *sessionAuth) AuthToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *sessionAuth) Set(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type syncFixture struct {
	svc       *clientSyncService
	adapter   *mock.MockServerAdapter
	records   *store.RecordStore
	conflicts *ConflictSet
	local     store.LocalStorage
	clock     *testClock
}

func newSyncFixture(t *testing.T, ctrl *gomock.Controller) *syncFixture {
	t.Helper()

	local := newFileStorage(t)
	records := store.NewRecordStore(local)
	conflicts := NewConflictSet(local)
	identity := NewIdentityReconciler(records, conflicts)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	clock := &testClock{now: passStart}

	svc := NewClientSyncService(records, conflicts, identity, local, serverAdapter, staticAuth{token: "jwt"}, SyncOptions{
		RequestTimeout: time.Second,
		MaxParallel:    2,
	}, logger.Nop()).(*clientSyncService)
	svc.now = clock.Now

	return &syncFixture{
		svc:       svc,
		adapter:   serverAdapter,
		records:   records,
		conflicts: conflicts,
		local:     local,
		clock:     clock,
	}
}

func TestClientSyncService_TriggerSync_NotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	f.svc.auth = staticAuth{}

	_, err := f.svc.TriggerSync(context.Background())

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, f.svc.State().InFlight)
}

func TestClientSyncService_ProvisionalCreationIsReconciled(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	created := makeTask("tmp_1", "buy milk", passStart.Add(-time.Minute))
	f.records.Upsert(created)

	f.adapter.EXPECT().CreateTask(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.CreateTaskRequest) (models.Task, error) {
			assert.Equal(t, "tmp_1", req.ClientRef)
			acked := req.Task
			acked.ID = "srv_9"
			return acked, nil
		})
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
			assert.True(t, req.LastSyncAt.IsZero())
			require.Len(t, req.ChangedRecords, 1)
			assert.Equal(t, "srv_9", req.ChangedRecords[0].ID, "changed records carry the authoritative id")

			echo := created
			echo.ID = "srv_9"
			return models.SyncResponse{Records: []models.Task{echo}, ServerTime: passStart}, nil
		})

	result, err := f.svc.TriggerSync(ctx)
	require.NoError(t, err)

	assert.Equal(t, []models.IdentityMapping{{Provisional: "tmp_1", Authoritative: "srv_9"}}, result.Reconciled)
	assert.Equal(t, 1, result.Submitted)
	assert.Zero(t, result.Failed)

	_, ok := f.records.Get("tmp_1")
	assert.False(t, ok)
	got, ok := f.records.Get("srv_9")
	require.True(t, ok)
	assert.Equal(t, "buy milk", got.Name)
	assert.Len(t, f.records.List(), 1)

	assert.Equal(t, passStart, f.svc.Cursor())
	cursor, err := f.local.LoadCursor(ctx)
	require.NoError(t, err)
	assert.True(t, passStart.Equal(cursor))

	persisted, err := f.local.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "srv_9", persisted[0].ID)
}

func TestClientSyncService_ConflictThenResolveRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	local := makeTask("5", "local name", passStart.Add(-time.Minute))
	remote := makeTask("5", "remote name", passStart.Add(-30*time.Second))
	f.records.Upsert(local)

	// first pass: the server rejects the update and reports the conflict
	f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).
		Return(models.Task{}, fmt.Errorf("%w: %w", adapter.ErrVersionConflict, adapter.ErrConflict))
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(models.SyncResponse{
		Conflicts: []models.SyncConflict{{ID: "5", LocalSnapshotEcho: local, RemoteRecord: remote}},
	}, nil)

	result, err := f.svc.TriggerSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicts)

	c, ok := f.conflicts.Get("5")
	require.True(t, ok)
	assert.Equal(t, "local name", c.Local.Name)
	assert.Equal(t, "remote name", c.Remote.Name)

	stored, _ := f.records.Get("5")
	assert.Equal(t, "local name", stored.Name, "the local record stays untouched while conflicted")

	outbox, err := f.local.LoadOutbox(ctx)
	require.NoError(t, err)
	assert.Empty(t, outbox)

	// resolving REMOTE makes the record pending and runs a second pass
	resolver := NewClientConflictService(f.records, f.conflicts, f.svc, logger.Nop()).(*clientConflictService)
	resolutionTime := passStart.Add(time.Minute)
	resolver.now = func() time.Time { return resolutionTime }
	f.clock.Set(passStart.Add(2 * time.Minute))

	f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.UpdateTaskRequest) (models.Task, error) {
			assert.Equal(t, "5", req.Task.ID)
			assert.Equal(t, "remote name", req.Task.Name)
			assert.Equal(t, resolutionTime, req.Task.UpdatedAt)
			assert.Equal(t, passStart, req.LastSyncAt)
			return req.Task, nil
		})
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, nil)

	require.NoError(t, resolver.Resolve(ctx, "5", models.ChoiceRemote))

	assert.Zero(t, f.conflicts.Len())
	stored, _ = f.records.Get("5")
	assert.Equal(t, "remote name", stored.Name)
	assert.Equal(t, passStart.Add(2*time.Minute), f.svc.Cursor())

	// resolving again is a no-op: no request is expected
	require.NoError(t, resolver.Resolve(ctx, "5", models.ChoiceRemote))
}

func TestClientSyncService_DeltaTimeoutKeepsCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	f.records.Upsert(makeTask("3", "edited offline", passStart.Add(-time.Minute)))

	f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(models.Task{}, nil).Times(2)
	gomock.InOrder(
		f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, context.DeadlineExceeded),
		f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
				assert.True(t, req.LastSyncAt.IsZero(), "the next pass reuses the old cursor")
				return models.SyncResponse{}, nil
			}),
	)

	_, err := f.svc.TriggerSync(ctx)
	require.ErrorIs(t, err, ErrDeltaFetch)

	state := f.svc.State()
	assert.False(t, state.InFlight)
	assert.Equal(t, "sync timed out", state.LastError)
	assert.True(t, f.svc.Cursor().IsZero())

	cursor, err := f.local.LoadCursor(ctx)
	require.NoError(t, err)
	assert.True(t, cursor.IsZero())

	f.clock.Set(passStart.Add(time.Minute))
	_, err = f.svc.TriggerSync(ctx)
	require.NoError(t, err)

	state = f.svc.State()
	assert.Empty(t, state.LastError)
	assert.Equal(t, passStart.Add(time.Minute), state.LastSyncAt)
}

func TestClientSyncService_FailedSubmissionGoesToOutbox(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	f.records.Upsert(makeTask("3", "edited offline", passStart.Add(-time.Minute)))

	gomock.InOrder(
		f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(models.Task{}, errors.New("connection reset")),
		f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(models.Task{}, nil),
	)
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, nil).Times(2)

	result, err := f.svc.TriggerSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, passStart, f.svc.Cursor(), "the cursor advances, the outbox keeps the record pending")

	outbox, err := f.local.LoadOutbox(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, outbox)

	// the record is older than the cursor now and only the outbox brings it back
	f.clock.Set(passStart.Add(time.Minute))
	result, err = f.svc.TriggerSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)
	assert.Zero(t, result.Failed)

	outbox, err = f.local.LoadOutbox(ctx)
	require.NoError(t, err)
	assert.Empty(t, outbox)
}

func TestClientSyncService_Deletions(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	neverSent := makeTask("tmp_2", "typo", passStart.Add(-time.Minute))
	neverSent.Deleted = true
	known := makeTask("7", "done", passStart.Add(-time.Minute))
	known.Deleted = true
	gone := makeTask("8", "gone", passStart.Add(-time.Minute))
	gone.Deleted = true
	f.records.Upsert(neverSent)
	f.records.Upsert(known)
	f.records.Upsert(gone)

	f.adapter.EXPECT().DeleteTask(gomock.Any(), "7").Return(nil)
	f.adapter.EXPECT().DeleteTask(gomock.Any(), "8").Return(fmt.Errorf("%w: task not found", adapter.ErrNotFound))
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
			for _, r := range req.ChangedRecords {
				assert.NotEqual(t, "tmp_2", r.ID, "a provisional tombstone never reaches the server")
			}
			return models.SyncResponse{}, nil
		})

	result, err := f.svc.TriggerSync(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Submitted)
	assert.Empty(t, f.records.List())
}

func TestClientSyncService_ConcurrentTriggersShareOnePass(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			close(started)
			<-release
			return models.SyncResponse{Records: []models.Task{makeTask("1", "remote", passStart.Add(-time.Minute))}}, nil
		}).Times(1)

	const callers = 5
	results := make([]models.SyncResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = f.svc.TriggerSync(ctx)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.svc.TriggerSync(ctx)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	assert.True(t, f.svc.State().InFlight)
	close(release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.Equal(t, 1, results[0].Received)
}

func TestClientSyncService_CallerCancellationDoesNotAbortPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	done := make(chan struct{})
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(reqCtx context.Context, _ models.SyncRequest) (models.SyncResponse, error) {
			cancel()
			<-release
			assert.NoError(t, reqCtx.Err())
			return models.SyncResponse{}, nil
		})

	events, unsubscribe := f.svc.Subscribe()
	defer unsubscribe()

	go func() {
		defer close(done)
		_, err := f.svc.TriggerSync(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	}()
	<-done
	close(release)

	select {
	case event := <-events:
		require.NoError(t, event.Err)
		assert.Equal(t, passStart, event.LastSyncAt)
	case <-time.After(time.Second):
		t.Fatal("pass did not complete")
	}
	assert.Equal(t, passStart, f.svc.Cursor())
}

func TestClientSyncService_LoadAndReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	require.NoError(t, f.local.SaveSyncState(ctx, passStart, []string{"3"}))
	require.NoError(t, f.svc.Load(ctx))

	assert.True(t, passStart.Equal(f.svc.Cursor()))
	assert.Equal(t, []string{"3"}, f.svc.outbox.List())

	f.svc.Reset()
	assert.True(t, f.svc.Cursor().IsZero())
	assert.Empty(t, f.svc.outbox.List())
	assert.Equal(t, models.SyncState{}, f.svc.State())
}

func TestClientSyncService_WriteInPassStartTickStaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	// a coarse clock: the write lands in the same tick the pass started in
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			f.records.Upsert(makeTask("tmp_new", "typed during the pass", passStart))
			return models.SyncResponse{}, nil
		})

	_, err := f.svc.TriggerSync(ctx)
	require.NoError(t, err)
	require.Equal(t, passStart, f.svc.Cursor())

	outbox, err := f.local.LoadOutbox(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp_new"}, outbox)

	pending := f.svc.pendingBatch(f.svc.Cursor())
	require.Len(t, pending, 1)
	assert.Equal(t, "tmp_new", pending[0].ID)
}

func TestClientSyncService_ExclusiveWaitsForPassInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	auth := &sessionAuth{token: "jwt"}
	f.svc.auth = auth

	started := make(chan struct{})
	release := make(chan struct{})
	f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			close(started)
			<-release
			return models.SyncResponse{Records: []models.Task{makeTask("old-user-task", "previous session", passStart.Add(-time.Minute))}}, nil
		})

	// the sync job gives up waiting on Stop, the pass itself goes on
	jobCtx, stopJob := context.WithCancel(ctx)
	go func() { _, _ = f.svc.TriggerSync(jobCtx) }()
	<-started
	stopJob()

	wiped := make(chan error, 1)
	go func() {
		wiped <- f.svc.Exclusive(func() error {
			auth.Set("")
			if err := f.local.ClearSession(ctx); err != nil {
				return err
			}
			f.svc.Reset()
			return errors.Join(f.records.Load(ctx), f.conflicts.Load(ctx), f.svc.Load(ctx))
		})
	}()

	select {
	case <-wiped:
		t.Fatal("local state was wiped while a pass was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-wiped:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Exclusive did not run after the pass")
	}

	assert.Empty(t, f.records.List(), "the logged-out replica stays empty")
	persisted, err := f.local.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)

	assert.True(t, f.svc.Cursor().IsZero())
	cursor, err := f.local.LoadCursor(ctx)
	require.NoError(t, err)
	assert.True(t, cursor.IsZero())
}

func TestClientSyncService_PassQueuedBehindExclusiveRechecksSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)

	auth := &sessionAuth{token: "jwt"}
	f.svc.auth = auth

	// no adapter call is expected: the pass finds the session gone
	result := make(chan error, 1)
	require.NoError(t, f.svc.Exclusive(func() error {
		go func() {
			_, err := f.svc.TriggerSync(context.Background())
			result <- err
		}()
		time.Sleep(50 * time.Millisecond)
		auth.Set("")
		return nil
	}))

	select {
	case err := <-result:
		require.ErrorIs(t, err, ErrNotAuthenticated)
	case <-time.After(time.Second):
		t.Fatal("queued pass did not return")
	}
	assert.False(t, f.svc.State().InFlight)
}

func TestClientSyncService_ResolutionWaitsForPassInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newSyncFixture(t, ctrl)
	ctx := context.Background()

	local := makeTask("5", "local name", passStart.Add(-time.Minute))
	f.records.Upsert(local)
	f.conflicts.Put(models.Conflict{
		ID:         "5",
		Local:      local,
		Remote:     makeTask("5", "remote name", passStart.Add(-30*time.Second)),
		DetectedAt: passStart.Add(-time.Minute),
	})

	started := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		// "5" is conflicted, so the first pass submits nothing
		f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
				close(started)
				<-release
				return models.SyncResponse{}, nil
			}),
		f.adapter.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.UpdateTaskRequest) (models.Task, error) {
				assert.Equal(t, "remote name", req.Task.Name)
				return req.Task, nil
			}),
		f.adapter.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, nil),
	)

	go func() { _, _ = f.svc.TriggerSync(ctx) }()
	<-started

	resolver := NewClientConflictService(f.records, f.conflicts, f.svc, logger.Nop()).(*clientConflictService)
	resolver.now = func() time.Time { return passStart.Add(time.Minute) }

	done := make(chan error, 1)
	go func() { done <- resolver.Resolve(ctx, "5", models.ChoiceRemote) }()

	select {
	case <-done:
		t.Fatal("the conflict was resolved while a pass was running")
	case <-time.After(50 * time.Millisecond):
	}
	_, open := f.conflicts.Get("5")
	assert.True(t, open)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("resolution did not finish")
	}

	assert.Zero(t, f.conflicts.Len())
	stored, _ := f.records.Get("5")
	assert.Equal(t, "remote name", stored.Name)
}
