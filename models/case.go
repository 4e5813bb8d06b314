// SPDX-License-Identifier: Apache-2.0

// Package models defines the domain entities shared by every layer of the
// casesync application: cases and their index graph, case transactions
// produced by the form-submission pipeline, per-device sync logs, and the
// ownership-cleanliness bookkeeping records.
package models

import "time"

// Relationship is the kind of an index edge between two cases.
type Relationship string

const (
	// RelationshipChild marks a regular child index: the indexing case is
	// a child of the referenced case.
	RelationshipChild Relationship = "child"

	// RelationshipExtension marks an extension index: the indexing case
	// extends the referenced case and shares its lifecycle.
	RelationshipExtension Relationship = "extension"
)

// CaseIndex is a directed edge in the case graph. The owning case references
// another case under a local identifier ("parent", "host", ...).
//
// The referenced case is bound leniently: it may not exist at the time the
// index is written, and a dangling target must never block processing of
// unrelated updates.
type CaseIndex struct {
	Identifier     string       `json:"identifier"`
	ReferencedType string       `json:"referenced_type"`
	ReferencedID   string       `json:"referenced_id"`
	Relationship   Relationship `json:"relationship"`
}

// ActionKind classifies a single applied case action.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionClose  ActionKind = "close"
	ActionIndex  ActionKind = "index"
)

// CaseAction is one entry of a case's ordered action history. Every accepted
// transaction that touches the case appends at least one action.
type CaseAction struct {
	Kind    ActionKind        `json:"kind"`
	Date    time.Time         `json:"date"`
	UserID  string            `json:"user_id"`
	Updates map[string]string `json:"updates,omitempty"`
	Indices []CaseIndex       `json:"indices,omitempty"`
}

// Case is a mutable tracked entity (person, household, ...). Cases are never
// physically deleted in normal operation; Deleted marks a soft delete so
// corrective reprocessing stays possible.
//
// ServerModifiedOn is the submission date reported by the device and is
// what payloads render as date_modified; it cannot order commits because
// devices backdate. Sequence is the server-assigned change-stream position
// of the last commit that touched the case and is what incremental syncs
// diff against.
type Case struct {
	CaseID           string            `json:"case_id"`
	Domain           string            `json:"domain"`
	Type             string            `json:"type"`
	Name             string            `json:"name"`
	OwnerID          string            `json:"owner_id"`
	OpenedBy         string            `json:"opened_by"`
	ModifiedBy       string            `json:"modified_by"`
	Properties       map[string]string `json:"properties,omitempty"`
	Closed           bool              `json:"closed"`
	Deleted          bool              `json:"deleted"`
	ServerModifiedOn time.Time         `json:"server_modified_on"`
	Sequence         int64             `json:"sequence"`
	Actions          []CaseAction      `json:"actions,omitempty"`
	Indices          []CaseIndex       `json:"indices,omitempty"`
}

// HasIndex reports whether the case carries an index under the given
// identifier.
func (c *Case) HasIndex(identifier string) bool {
	_, ok := c.GetIndex(identifier)
	return ok
}

// GetIndex returns the index stored under identifier, if any.
func (c *Case) GetIndex(identifier string) (CaseIndex, bool) {
	for _, idx := range c.Indices {
		if idx.Identifier == identifier {
			return idx, true
		}
	}
	return CaseIndex{}, false
}

// SetIndex adds or replaces the index stored under idx.Identifier.
func (c *Case) SetIndex(idx CaseIndex) {
	for i := range c.Indices {
		if c.Indices[i].Identifier == idx.Identifier {
			c.Indices[i] = idx
			return
		}
	}
	c.Indices = append(c.Indices, idx)
}

// RemoveIndex deletes the index stored under identifier. Removing an index
// that does not exist is a no-op.
func (c *Case) RemoveIndex(identifier string) {
	for i := range c.Indices {
		if c.Indices[i].Identifier == identifier {
			c.Indices = append(c.Indices[:i], c.Indices[i+1:]...)
			return
		}
	}
}

// ReferencedIDs returns the IDs of every case this case indexes, in index
// order. Duplicates are preserved; callers that need a set must deduplicate.
func (c *Case) ReferencedIDs() []string {
	ids := make([]string, 0, len(c.Indices))
	for _, idx := range c.Indices {
		ids = append(ids, idx.ReferencedID)
	}
	return ids
}
