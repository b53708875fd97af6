// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// SubmissionOutcome is the result of submitting one pending record.
type SubmissionOutcome int

const (
	// SubmissionFailed means the request did not complete; the record stays
	// pending.
	SubmissionFailed SubmissionOutcome = iota
	// SubmissionAcked means the server created the record under
	// Submission.Authoritative.
	SubmissionAcked
	// SubmissionUpdated means the server accepted the change.
	SubmissionUpdated
	// SubmissionConflicted means the server rejected the change because
	// another device changed the record since the cursor.
	SubmissionConflicted
	// SubmissionDeleted means the server confirmed the deletion, or did not
	// know the record.
	SubmissionDeleted
	// SubmissionDropped means a provisional tombstone that never reached the
	// server and is removed without a request.
	SubmissionDropped
)

func (o SubmissionOutcome) String() string {
	switch o {
	case SubmissionAcked:
		return "acked"
	case SubmissionUpdated:
		return "updated"
	case SubmissionConflicted:
		return "conflicted"
	case SubmissionDeleted:
		return "deleted"
	case SubmissionDropped:
		return "dropped"
	default:
		return "failed"
	}
}

// Submission records what happened to one record of the pending batch.
type Submission struct {
	ID            string
	Outcome       SubmissionOutcome
	Authoritative string
	Err           error
}

// MergeInput is everything one pass hands to [Merge].
type MergeInput struct {
	// Local is the record store content at merge time.
	Local map[string]models.Task
	// Delta and Conflicts come from the sync exchange. Both are empty when
	// the exchange failed.
	Delta       []models.Task
	Conflicts   []models.SyncConflict
	Submissions []Submission
	// Unresolved holds the conflicts registered by earlier passes. A delta
	// record for one of them refreshes the conflict instead of touching the
	// local record.
	Unresolved map[string]models.Conflict
	PassStart  time.Time
}

// MergeOutput lists the changes to apply, in application order: mappings,
// removals, upserts, then conflicts.
type MergeOutput struct {
	Mappings  []models.IdentityMapping
	Removals  []string
	Upserts   []models.Task
	Conflicts []models.Conflict
}

// Merge decides how the server results of a pass change the local replica.
// It has no side effects.
//
// A record stamped at or after PassStart is never overwritten by the delta;
// it stays pending for the next pass. Server tombstones and confirmed deletes
// are removed unconditionally.
func Merge(in MergeInput) MergeOutput {
	var out MergeOutput

	// view is Local as it will look once the mappings are applied
	view := make(map[string]models.Task, len(in.Local))
	for id, t := range in.Local {
		view[id] = t
	}

	// authoritative ids of acknowledgments that lost their local record
	orphaned := make(map[string]struct{})
	removed := make(map[string]struct{})

	remove := func(id string) {
		if _, done := removed[id]; done {
			return
		}
		removed[id] = struct{}{}
		out.Removals = append(out.Removals, id)
		delete(view, id)
	}

	for _, sub := range in.Submissions {
		if sub.Outcome != SubmissionAcked || sub.Authoritative == "" {
			continue
		}
		t, ok := view[sub.ID]
		if !ok {
			orphaned[sub.Authoritative] = struct{}{}
			continue
		}
		out.Mappings = append(out.Mappings, models.IdentityMapping{Provisional: sub.ID, Authoritative: sub.Authoritative})
		delete(view, sub.ID)
		t.ID = sub.Authoritative
		if prev, clash := view[t.ID]; !clash || !t.UpdatedAt.Before(prev.UpdatedAt) {
			view[t.ID] = t
		}
	}

	for _, sub := range in.Submissions {
		switch sub.Outcome {
		case SubmissionDeleted, SubmissionDropped:
			remove(sub.ID)
		}
	}

	conflicted := make(map[string]struct{}, len(in.Conflicts))
	for _, c := range in.Conflicts {
		if _, skip := orphaned[c.ID]; skip {
			continue
		}
		if _, gone := removed[c.ID]; gone {
			continue
		}

		local, ok := view[c.ID]
		if !ok {
			local = c.LocalSnapshotEcho
		}
		local.ID = c.ID
		remote := c.RemoteRecord
		remote.ID = c.ID

		conflicted[c.ID] = struct{}{}
		out.Conflicts = append(out.Conflicts, models.Conflict{
			ID:         c.ID,
			Local:      local,
			Remote:     remote,
			DetectedAt: in.PassStart,
		})
	}

	for _, r := range in.Delta {
		if _, skip := orphaned[r.ID]; skip {
			continue
		}
		if _, skip := conflicted[r.ID]; skip {
			continue
		}

		if r.Deleted {
			remove(r.ID)
			continue
		}
		if _, gone := removed[r.ID]; gone {
			continue
		}

		if prev, ok := in.Unresolved[r.ID]; ok {
			local, exists := view[r.ID]
			if !exists {
				local = prev.Local
			}
			out.Conflicts = append(out.Conflicts, models.Conflict{
				ID:         r.ID,
				Local:      local,
				Remote:     r,
				DetectedAt: in.PassStart,
			})
			continue
		}

		if local, ok := view[r.ID]; ok && !local.UpdatedAt.Before(in.PassStart) {
			continue
		}
		out.Upserts = append(out.Upserts, r)
	}

	return out
}
