package http

import "errors"

// Rejections of the auth middleware. The message is sent to the client as
// the 401 body.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("`Authorization` header must be `Bearer <token>`")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")
)
