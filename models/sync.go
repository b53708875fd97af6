// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncRequest is the body of the delta exchange (POST /api/sync).
//
// LastSyncAt is the client's cursor: the server returns every record of the
// user that changed after it. ChangedRecords are the client's pending
// records; the server compares them against its own copies and reports the
// ones that diverged as conflicts.
type SyncRequest struct {
	LastSyncAt     time.Time `json:"last_sync_at"`
	ChangedRecords []Task    `json:"changed_records"`
}

// SyncConflict is one conflicting record reported by the server.
type SyncConflict struct {
	ID                string `json:"id"`
	LocalSnapshotEcho Task   `json:"local_snapshot_echo"`
	RemoteRecord      Task   `json:"remote_record"`
}

// SyncResponse is the server's answer to a SyncRequest.
//
// Records holds non-conflicting changes since the cursor, tombstones
// included. Conflicts holds the records that changed on both sides.
type SyncResponse struct {
	Records    []Task         `json:"records"`
	Conflicts  []SyncConflict `json:"conflicts"`
	ServerTime time.Time      `json:"server_time"`
}

// CreateTaskRequest submits a task that only exists on the client.
// ClientRef is the provisional id; the server deduplicates on it so a
// retried creation never produces a second record.
type CreateTaskRequest struct {
	ClientRef string `json:"client_ref"`
	Task      Task   `json:"task"`
}

// UpdateTaskRequest submits a modified task. LastSyncAt is the base the
// modification was made against; the server answers 409 Conflict when
// another device changed the record after it.
type UpdateTaskRequest struct {
	Task       Task      `json:"task"`
	LastSyncAt time.Time `json:"last_sync_at"`
}

// IdentityMapping pairs a provisional id with the authoritative id the
// server assigned to it.
type IdentityMapping struct {
	Provisional   string
	Authoritative string
}

// SyncState is the transient, observable state of the sync orchestrator.
// It is reset on every process start.
type SyncState struct {
	InFlight   bool
	LastSyncAt time.Time
	LastError  string
}

// SyncResult summarizes one completed sync pass.
type SyncResult struct {
	Submitted  int
	Failed     int
	Received   int
	Conflicts  int
	Reconciled []IdentityMapping
	LastSyncAt time.Time
}

// SyncEvent is published to subscribers after every pass. Err is nil when
// the pass succeeded.
type SyncEvent struct {
	LastSyncAt time.Time
	Err        error
}

// TriggerReason names what woke the sync job up.
type TriggerReason string

const (
	TriggerTimer     TriggerReason = "timer"
	TriggerReconnect TriggerReason = "reconnect"
	TriggerManual    TriggerReason = "manual"
	TriggerMutation  TriggerReason = "mutation"
)
