// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"
	"sync"

	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
)

// ProvisionalPrefix starts every id minted on the client before the server
// has acknowledged the record.
const ProvisionalPrefix = "tmp_"

var provisionalIDs = utils.NewPrefixedUUIDGenerator(ProvisionalPrefix)

// IsProvisional reports whether id was minted locally and is not yet known to
// the server.
func IsProvisional(id string) bool {
	return strings.HasPrefix(id, ProvisionalPrefix)
}

// NewProvisionalID returns a fresh tmp_<uuid v7> id.
func NewProvisionalID() string {
	return provisionalIDs.Generate()
}

// Rekeyer is anything holding record ids that must follow a provisional id
// to its authoritative replacement.
type Rekeyer interface {
	Rekey(oldID, newID string)
}

// IdentityReconciler moves records from provisional to authoritative ids.
type IdentityReconciler struct {
	records   *store.RecordStore
	conflicts *ConflictSet

	mu   sync.Mutex
	refs []Rekeyer
}

// NewIdentityReconciler returns a reconciler over records and conflicts.
func NewIdentityReconciler(records *store.RecordStore, conflicts *ConflictSet) *IdentityReconciler {
	return &IdentityReconciler{records: records, conflicts: conflicts}
}

// Register adds ref to the id holders rekeyed on every reconciliation.
func (r *IdentityReconciler) Register(ref Rekeyer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs = append(r.refs, ref)
}

// Reconcile renames the record stored under provisional to authoritative,
// keeping every other field, then rekeys the conflict set and the registered
// id holders. It returns false, changing nothing, when the provisional record
// no longer exists.
func (r *IdentityReconciler) Reconcile(provisional, authoritative string) bool {
	if provisional == "" || authoritative == "" {
		return false
	}
	if !r.records.Rename(provisional, authoritative) {
		return false
	}

	// The rekeys run outside the record store lock. Reconcile is only called
	// from a sync pass and resolutions wait for the pass, so no resolution
	// sees the record renamed while its conflict still has the old id.
	r.conflicts.Rekey(provisional, authoritative)

	r.mu.Lock()
	refs := append([]Rekeyer(nil), r.refs...)
	r.mu.Unlock()

	for _, ref := range refs {
		ref.Rekey(provisional, authoritative)
	}

	return true
}
