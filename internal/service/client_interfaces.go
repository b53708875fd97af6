package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Authenticator reports whether the client holds a usable session.
type Authenticator interface {
	IsAuthenticated() bool
	// AuthToken returns the bearer token of the session, empty when logged
	// out.
	AuthToken() string
}

// ClientAuthService defines the client-side contract for registration,
// login and the persisted session.
type ClientAuthService interface {
	Authenticator

	// Register creates the account on the server and logs in with it.
	Register(ctx context.Context, user models.User) error

	// Login authenticates against the server, installs the token on the
	// adapter and persists the session locally.
	Login(ctx context.Context, user models.User) error

	// RestoreSession loads the persisted session. It returns false when the
	// user has to log in.
	RestoreSession(ctx context.Context) (bool, error)

	// Logout forgets the token and wipes the local replica.
	Logout(ctx context.Context) error

	// Session returns the active session.
	Session() models.Session
}

// ClientTaskService is the mutation surface of the local replica. Every
// write succeeds offline and wakes the sync job.
type ClientTaskService interface {
	Create(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	// Update replaces the user-visible fields of an existing task.
	Update(ctx context.Context, task models.Task) (models.Task, error)
	ToggleComplete(ctx context.Context, id string) (models.Task, error)
	// Delete writes a tombstone that propagates on the next pass.
	Delete(ctx context.Context, id string) error

	// Get returns ErrTaskNotFound for unknown ids and tombstones.
	Get(ctx context.Context, id string) (models.Task, error)
	// List returns the live tasks in insertion order.
	List(ctx context.Context) ([]models.Task, error)
}

// ClientSyncService drives the exchange between the local replica and the
// server.
type ClientSyncService interface {
	// Load restores the cursor and the outbox from local storage.
	Load(ctx context.Context) error

	// TriggerSync runs one pass or joins the pass already running. It
	// returns ErrNotAuthenticated when logged out.
	TriggerSync(ctx context.Context) (models.SyncResult, error)

	State() models.SyncState
	// Cursor is the start time of the last completed pass.
	Cursor() time.Time

	// Subscribe registers for pass completion events. The returned func
	// unsubscribes and closes the channel.
	Subscribe() (<-chan models.SyncEvent, func())

	// Exclusive runs fn with no pass in flight. Logout wipes local state
	// through it so a running pass cannot write the old session back.
	Exclusive(fn func() error) error

	// Reset forgets the cursor and the outbox after logout.
	Reset()
}

// ClientConflictService lists and settles unresolved conflicts.
type ClientConflictService interface {
	ListConflicts() []models.Conflict

	// Resolve keeps the chosen side of the conflict on id and resubmits it.
	// An unknown id is a no-op.
	Resolve(ctx context.Context, id string, choice models.ResolutionChoice) error
	ResolveAll(ctx context.Context, choice models.ResolutionChoice) (int, error)

	// ApplyPolicy settles every conflict the policy decides. PolicyManual
	// resolves nothing.
	ApplyPolicy(ctx context.Context, policy models.ConflictPolicy) (int, error)
}

// SyncTrigger wakes the sync job.
type SyncTrigger interface {
	Trigger(reason models.TriggerReason)
}

// ClientSyncJob is the background goroutine that runs a pass on every
// trigger: timer, reconnect, manual and post-mutation.
type ClientSyncJob interface {
	SyncTrigger

	// Start launches the job. Any previously running job is stopped first.
	// interval defaults to 5 minutes when not positive.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the job to exit and blocks until it has terminated.
	Stop()
}
