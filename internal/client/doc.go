// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the offline-first todo client.
//
// A session starts at the sign-in screens unless a saved session is found.
// While signed in, the background sync and connectivity workers run next to
// the main task screen. Logging out stops the workers, clears the local
// task state and returns to sign-in; quitting just stops everything and
// keeps local state for the next start.
package client
