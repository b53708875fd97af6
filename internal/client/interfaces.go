// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive front end driven by [App].
type UI interface {
	// LoginFlow blocks until a session is open. notice, when set, is shown
	// on the first page.
	LoginFlow(ctx context.Context, notice string) error
	// MainLoop blocks until the user quits or asks to log out.
	MainLoop(ctx context.Context) (logout bool, err error)
}

// Workers are the background jobs that run while a session is open.
type Workers interface {
	Run(ctx context.Context)
	Stop()
}
