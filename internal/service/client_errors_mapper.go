// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
)

// adapterErrors pairs an HTTP status class and the server's message with the
// business error it stands for on the client.
var adapterErrors = []struct {
	status error
	body   string
	mapped error
}{
	{adapter.ErrBadRequest, app.MsgInvalidDataProvided, ErrInvalidDataProvided},
	{adapter.ErrBadRequest, app.MsgNoUserIDProvided, ErrNoUserIDProvided},
	{adapter.ErrUnauthorized, app.MsgInvalidLoginPassword, ErrWrongPassword},
	{adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid, ErrTokenIsExpiredOrInvalid},
	{adapter.ErrNotFound, app.MsgTaskNotFound, ErrTaskNotFound},
	{adapter.ErrConflict, app.MsgLoginAlreadyExists, store.ErrLoginAlreadyExists},
	{adapter.ErrConflict, app.MsgVersionConflict, ErrVersionConflict},
	{adapter.ErrBadGateway, app.MsgRegistrationFailed, ErrRegisterOnServer},
	{adapter.ErrBadGateway, app.MsgLoginFailed, ErrLoginOnServer},
}

// mapAdapterError translates a transport error of the adapter into a service
// error. Errors without a known status and message pair pass through.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	body := extractBody(err)
	for _, e := range adapterErrors {
		if body == e.body && errors.Is(err, e.status) {
			return e.mapped
		}
	}

	return err
}

// extractBody returns the part after the last ": " of messages like
// "conflict: login already exists".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
