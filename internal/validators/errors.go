package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID           = errors.New("task id is required")
	ErrEmptyName         = errors.New("task name is required")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidUpdatedAt  = errors.New("updated_at is required")
	ErrUpdatedBeforeMade = errors.New("updated_at is before created_at")
	ErrEmptyClientRef    = errors.New("client reference is required")
	ErrEmptyLogin        = errors.New("login is required")
	ErrEmptyPassword     = errors.New("password is required")
)
