// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the server handlers and the
// client error mapper.
//
// Handlers write a Msg* constant into the response body; the client maps the
// body back to a sentinel error, so the wording must stay identical on both
// sides.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the login/password pair does
	// not match a user.
	MsgInvalidLoginPassword = "invalid login/password"

	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgNoUserIDProvided = "no user ID provided"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"
	MsgLoginAlreadyExists = "login already exists"

	// MsgTaskNotFound is returned when an update or delete targets a task the
	// user does not own.
	MsgTaskNotFound = "task not found"

	// MsgVersionConflict is returned when another device changed the task
	// since the client's last sync. The client should sync before retrying.
	MsgVersionConflict = "version conflict, please sync"
)
