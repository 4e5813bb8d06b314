// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// SyncLog records one completed sync for one device: which cases the device
// holds (split into directly owned and transitively dependent), the
// change-stream checkpoint the sync was computed at, and a link to the
// previous log, forming a per-device history chain.
//
// A log is immutable once written except for two sanctioned mutations:
// shrinking the footprint when a case is archived, and lazily attaching
// cached payload bytes (held in the response cache, keyed by state hash).
type SyncLog struct {
	// ID is the restore token handed to the device. The device echoes it
	// back as the "since" parameter of its next sync.
	ID string `json:"id"`

	UserID string `json:"user_id"`
	Domain string `json:"domain"`

	// Sequence is the case store's change-stream position at the time the
	// log was computed. The next incremental sync diffs from here.
	Sequence int64 `json:"sequence"`

	Date time.Time `json:"date"`

	// PreviousLogID links to the log this sync was computed against.
	// Empty for the very first sync of a device.
	PreviousLogID string `json:"previous_log_id,omitempty"`

	// OwnedCases are cases directly assigned to the syncing user or one of
	// the user's groups. DependentCases were pulled in transitively because
	// an owned case indexes them.
	OwnedCases     []CaseState `json:"owned_cases"`
	DependentCases []CaseState `json:"dependent_cases,omitempty"`

	// StateHash summarizes the full (owned ∪ dependent) case-ID set. It is
	// a pure, order-independent function of the set, so two logs over the
	// same cases always hash identically.
	StateHash string `json:"state_hash"`
}

// CaseIDsOnPhone returns the union of owned and dependent case IDs.
func (l *SyncLog) CaseIDsOnPhone() map[string]struct{} {
	ids := make(map[string]struct{}, len(l.OwnedCases)+len(l.DependentCases))
	for _, st := range l.OwnedCases {
		ids[st.CaseID] = struct{}{}
	}
	for _, st := range l.DependentCases {
		ids[st.CaseID] = struct{}{}
	}
	return ids
}

// OwnedCaseIDs returns the IDs of the directly owned cases.
func (l *SyncLog) OwnedCaseIDs() []string {
	ids := make([]string, 0, len(l.OwnedCases))
	for _, st := range l.OwnedCases {
		ids = append(ids, st.CaseID)
	}
	return ids
}
