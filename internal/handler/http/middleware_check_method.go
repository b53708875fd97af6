// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// methodNotServed replaces chi's 405 answer. A known path called with a
// method it does not serve gets the same 404 as an unknown path, so the
// API surface cannot be probed method by method.
func methodNotServed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not served on this path")

	http.NotFound(w, r)
}
