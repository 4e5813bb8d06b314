// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps any input validation failure; handlers map it to
	// a client error.
	ErrValidation = errors.New("invalid data provided")

	// ErrUnsupportedVersion is returned for a restore version parameter
	// that names no known wire format.
	ErrUnsupportedVersion = errors.New("unsupported restore version")

	// ErrRestoreTimeout is returned when a restore computation exceeds its
	// wall-clock budget. Nothing is persisted; the device may retry.
	ErrRestoreTimeout = errors.New("restore computation timed out")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

// RestoreError marks an unrecoverable restore precondition failure: the
// device's sync state cannot be reconciled and it must start a fresh
// initial sync.
type RestoreError struct {
	Reason string
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore cannot proceed: %s", e.Reason)
}

// BadStateError reports a state-hash mismatch between the device's claimed
// case set and the server-side record of its last sync. CaseIDs lists the
// server's view of what the device should hold, as a debugging aid.
type BadStateError struct {
	Expected string
	Actual   string
	CaseIDs  []string
}

func (e *BadStateError) Error() string {
	return fmt.Sprintf("state hash mismatch: expected %s, got %s (%d cases on record)",
		e.Expected, e.Actual, len(e.CaseIDs))
}
