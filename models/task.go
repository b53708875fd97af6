// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// Priority is the user-assigned importance of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a single synchronizable record of the user's task list.
//
// ID is either a provisional identifier minted on the client (prefixed with
// "tmp_") or an authoritative identifier assigned by the server. For one ID,
// UpdatedAt never decreases across successive writes to the local replica.
//
// Deleted marks a tombstone: the record is hidden from listings but kept in
// the replica until the deletion has been confirmed by the server.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Deleted     bool       `json:"deleted,omitempty"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// Clone returns a deep copy of t so that optional fields of the copy can be
// modified without aliasing the original.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		v := *t.Description
		c.Description = &v
	}
	if t.Deadline != nil {
		v := *t.Deadline
		c.Deadline = &v
	}
	if t.Category != nil {
		v := *t.Category
		c.Category = &v
	}
	if t.Priority != nil {
		v := *t.Priority
		c.Priority = &v
	}
	return c
}

// ContentEqual reports whether t and other carry the same user-visible
// content. Identifiers and timestamps other than the deadline are ignored.
func (t Task) ContentEqual(other Task) bool {
	if t.Name != other.Name || t.Completed != other.Completed || t.Deleted != other.Deleted {
		return false
	}
	if !equalPtr(t.Description, other.Description) ||
		!equalPtr(t.Category, other.Category) ||
		!equalPtr(t.Priority, other.Priority) {
		return false
	}

	switch {
	case t.Deadline == nil && other.Deadline == nil:
		return true
	case t.Deadline == nil || other.Deadline == nil:
		return false
	default:
		return t.Deadline.Equal(*other.Deadline)
	}
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TaskDraft carries the user-supplied fields of a task that is about to be
// created. Identifiers and timestamps are assigned by the task service.
type TaskDraft struct {
	Name        string
	Description *string
	Deadline    *time.Time
	Category    *string
	Priority    *Priority
}
