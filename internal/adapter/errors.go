package adapter

import "errors"

// Sentinels mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)

// ErrVersionConflict is returned by UpdateTask when the server rejects the
// write because another device changed the task since the client's cursor.
var ErrVersionConflict = errors.New("version conflict")
