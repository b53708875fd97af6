package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrNoUserIDProvided        = errors.New("no user ID provided")

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
)

var (
	// ErrNotAuthenticated is returned by TriggerSync when no session is
	// active.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTaskNotFound is returned when a task does not exist or is a
	// tombstone.
	ErrTaskNotFound = errors.New("task not found")

	// ErrVersionConflict is returned by the server task service when another
	// device changed the task after the client's last sync.
	ErrVersionConflict = errors.New("version conflict")

	ErrInvalidResolutionChoice = errors.New("invalid resolution choice")

	// ErrDeltaFetch wraps a failed sync exchange. The pass is incomplete and
	// the cursor did not advance.
	ErrDeltaFetch = errors.New("delta fetch failed")

	ErrPersistLocalState = errors.New("persist local state failed")
)
