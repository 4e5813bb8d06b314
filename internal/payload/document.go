// SPDX-License-Identifier: Apache-2.0

// Package payload renders restore response documents. The output is
// deterministic: cases are ordered by ID, properties and index edges are
// ordered by name, and no wall-clock values leak into the bytes, so the
// rendered payload of a given sync state is stable across runs and safe to
// cache by content.
package payload

import "github.com/tkarimov/casesync/models"

// Supported wire-format versions. V1 is the flat legacy case block, V2 the
// attribute-based block with index and close support.
const (
	V1 = "1.0"
	V2 = "2.0"
)

// SupportedVersion reports whether v names a wire format this package can
// render.
func SupportedVersion(v string) bool {
	return v == V1 || v == V2
}

// Document is the logical content of one restore response, assembled by the
// restore engine and handed to [Render].
type Document struct {
	// RestoreID is the token of the sync log created by this restore. The
	// device must persist it and echo it on the next sync.
	RestoreID string

	// User is the principal the restore was computed for.
	User models.RestoreUser

	// Incremental marks a response computed against a prior sync log. It
	// only changes the success message wording, not the case blocks.
	Incremental bool

	// Cases are the case blocks to send, in any order; Render sorts them.
	Cases []*models.Case
}
