// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// Conflict is an unresolved pair of divergent versions of one task: both
// the local replica and the server changed it since the last successful
// sync and the contents differ.
type Conflict struct {
	ID         string    `json:"id"`
	Local      Task      `json:"local"`
	Remote     Task      `json:"remote"`
	DetectedAt time.Time `json:"detected_at"`
}

// ResolutionChoice selects which side of a conflict wins.
type ResolutionChoice string

const (
	ChoiceLocal  ResolutionChoice = "LOCAL"
	ChoiceRemote ResolutionChoice = "REMOTE"
)

// IsValid reports whether c is LOCAL or REMOTE.
func (c ResolutionChoice) IsValid() bool {
	return c == ChoiceLocal || c == ChoiceRemote
}

// ConflictPolicy controls how conflicts are settled after a sync pass.
// Only PolicyManual leaves them to the user.
type ConflictPolicy string

const (
	PolicyManual     ConflictPolicy = "manual"
	PolicyServerWins ConflictPolicy = "server_wins"
	PolicyClientWins ConflictPolicy = "client_wins"
	PolicyTimeBased  ConflictPolicy = "time_based"
)

// ParseConflictPolicy converts a configuration string into a ConflictPolicy.
// An empty string selects PolicyManual.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyManual, nil
	case PolicyManual, PolicyServerWins, PolicyClientWins, PolicyTimeBased:
		return p, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", s)
	}
}

// Choose returns the resolution the policy picks for c. The second result is
// false for PolicyManual.
func (p ConflictPolicy) Choose(c Conflict) (ResolutionChoice, bool) {
	switch p {
	case PolicyServerWins:
		return ChoiceRemote, true
	case PolicyClientWins:
		return ChoiceLocal, true
	case PolicyTimeBased:
		if c.Local.UpdatedAt.After(c.Remote.UpdatedAt) {
			return ChoiceLocal, true
		}
		return ChoiceRemote, true
	default:
		return "", false
	}
}
