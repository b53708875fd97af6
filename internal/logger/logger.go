// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the todo sync server and the offline-first
// client.
//
// Both binaries write JSON lines with a "role" field, a timestamp and the
// calling function under "func". The server writes to stdout. The client
// owns the terminal for its UI, so it writes to a rotated file instead.
// Request- and job-scoped loggers travel in a context and are picked up with
// FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// Client log rotation.
const (
	clientLogMaxSizeMB  = 10
	clientLogMaxBackups = 3
	clientLogMaxAgeDays = 28
)

// NewLogger returns a debug-level logger writing to stdout.
func NewLogger(role string) *Logger {
	return newRoleLogger(os.Stdout, role)
}

// NewClientLogger returns a logger writing to the file at path, rotated by
// lumberjack. An empty path discards everything.
func NewClientLogger(role, path string) *Logger {
	if path == "" {
		return Nop()
	}

	// lumberjack creates the file but not a missing parent directory on
	// every platform
	_ = os.MkdirAll(filepath.Dir(path), 0o700)

	return newRoleLogger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    clientLogMaxSizeMB,
		MaxBackups: clientLogMaxBackups,
		MaxAge:     clientLogMaxAgeDays,
	}, role)
}

// Nop returns a logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

func newRoleLogger(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// GetChildLogger returns a copy of l whose context can be extended without
// touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's WithContext.
// Without one, zerolog's default context logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
