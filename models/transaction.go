package models

import "time"

// IndexChange describes one index mutation inside a case mutation. An empty
// ReferencedID removes the index stored under Identifier.
type IndexChange struct {
	Identifier     string       `json:"identifier"`
	ReferencedType string       `json:"referenced_type"`
	ReferencedID   string       `json:"referenced_id"`
	Relationship   Relationship `json:"relationship"`
}

// CaseCreate carries the initial attributes of a newly created case.
type CaseCreate struct {
	CaseType string `json:"case_type"`
	CaseName string `json:"case_name"`
	OwnerID  string `json:"owner_id"`
}

// CaseMutation is one case-level change inside a transaction: at most one
// create block, any number of property updates, index changes, an optional
// ownership transfer, and an optional close.
type CaseMutation struct {
	CaseID       string            `json:"case_id"`
	Create       *CaseCreate       `json:"create,omitempty"`
	Updates      map[string]string `json:"updates,omitempty"`
	IndexChanges []IndexChange     `json:"index_changes,omitempty"`
	NewOwnerID   string            `json:"new_owner_id,omitempty"`
	NewType      string            `json:"new_type,omitempty"`
	NewName      string            `json:"new_name,omitempty"`
	Close        bool              `json:"close,omitempty"`
}

// CaseTransaction is the unit of change handed over by the form-submission
// pipeline: an ordered list of case mutations accepted as one atomic
// submission. The sync core consumes transactions to maintain the case store
// and the ownership-cleanliness flags; it never parses form XML itself.
type CaseTransaction struct {
	TransactionID string         `json:"transaction_id"`
	Domain        string         `json:"domain"`
	UserID        string         `json:"user_id"`
	Date          time.Time      `json:"date"`
	Mutations     []CaseMutation `json:"mutations"`
}
