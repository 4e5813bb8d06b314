// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// stateHashPrefix tags the hash algorithm so the format can evolve without
// breaking deployed devices.
const stateHashPrefix = "sha256:"

// ErrMalformedStateHash is returned by [ParseStateHash] when a
// client-submitted hash string does not match the expected
// "sha256:<64 hex digits>" format. Callers must treat it as a client error,
// never as a server crash.
var ErrMalformedStateHash = errors.New("malformed state hash")

// StateHash computes the order-independent hash of a case-ID set: the IDs
// are sorted, joined with commas and digested with SHA-256. Two sets with
// the same members always hash identically regardless of insertion order.
func StateHash(caseIDs map[string]struct{}) string {
	sorted := make([]string, 0, len(caseIDs))
	for id := range caseIDs {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, ",")))
	return stateHashPrefix + hex.EncodeToString(sum[:])
}

// StateHashOfSlice is a convenience wrapper over [StateHash] for callers
// holding a slice. Duplicate IDs collapse into the set.
func StateHashOfSlice(caseIDs []string) string {
	set := make(map[string]struct{}, len(caseIDs))
	for _, id := range caseIDs {
		set[id] = struct{}{}
	}
	return StateHash(set)
}

// ParseStateHash validates a client-submitted state hash string and returns
// it in canonical (lower-case) form.
//
// Returns [ErrMalformedStateHash] (wrapped with detail) when the prefix is
// missing, the digest has the wrong length, or it contains non-hex
// characters.
func ParseStateHash(raw string) (string, error) {
	if !strings.HasPrefix(raw, stateHashPrefix) {
		return "", fmt.Errorf("%w: missing %q prefix", ErrMalformedStateHash, stateHashPrefix)
	}

	digest := strings.ToLower(strings.TrimPrefix(raw, stateHashPrefix))
	if len(digest) != sha256.Size*2 {
		return "", fmt.Errorf("%w: digest must be %d hex digits, got %d", ErrMalformedStateHash, sha256.Size*2, len(digest))
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedStateHash, err)
	}

	return stateHashPrefix + digest, nil
}
