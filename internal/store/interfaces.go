// SPDX-License-Identifier: Apache-2.0

// Package store defines the persistence contracts of the sync core and
// their implementations: PostgreSQL repositories for cases, sync logs and
// cleanliness flags, an in-memory case index for tests and embedded use,
// and a SQLite-backed restore payload cache.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

import (
	"context"

	"github.com/tkarimov/casesync/models"
)

// FlagUpdate marks one (domain, owner) cleanliness flag dirty with a
// witness case. Flag updates ride inside the same database transaction as
// the case mutation that caused them: a flag silently left clean while
// actually dirty would make a device miss case data.
type FlagUpdate struct {
	Domain     string
	OwnerID    string
	HintCaseID string
}

// CaseStore is the durable record of cases, their index edges and their
// owner assignment. The sync core reads case state and commits transactions
// handed over by the form-submission pipeline.
type CaseStore interface {
	// GetCase returns one case by ID. Soft-deleted cases are returned
	// with Deleted set; a missing case yields [ErrCaseNotFound].
	GetCase(ctx context.Context, domain, caseID string) (*models.Case, error)

	// GetCases returns the cases with the given IDs. IDs that do not
	// exist (or are hard-deleted) are silently absent from the result;
	// dangling index targets must never block a sync.
	GetCases(ctx context.Context, domain string, caseIDs []string) ([]*models.Case, error)

	// GetCaseIDsOwnedBy returns the IDs of all open, non-deleted cases
	// whose owner is one of ownerIDs.
	GetCaseIDsOwnedBy(ctx context.Context, domain string, ownerIDs []string) ([]string, error)

	// GetCasesOwnedBy is GetCaseIDsOwnedBy with full case bodies.
	GetCasesOwnedBy(ctx context.Context, domain string, ownerIDs []string) ([]*models.Case, error)

	// GetCasesIndexing returns every non-deleted case carrying an index
	// edge that references targetCaseID. Used to re-validate cleanliness
	// hints without a full footprint recompute.
	GetCasesIndexing(ctx context.Context, domain, targetCaseID string) ([]*models.Case, error)

	// CommitCases persists the given case states and applies the given
	// cleanliness flag updates in one transaction, advancing the
	// change stream. Returns the new checkpoint.
	CommitCases(ctx context.Context, domain string, cases []*models.Case, flags []FlagUpdate) (int64, error)

	// Checkpoint returns the current change-stream position for a domain.
	// The value is opaque to devices; sync logs record it so the next
	// sync knows where to diff from.
	Checkpoint(ctx context.Context, domain string) (int64, error)
}

// SyncLogStore persists per-device sync logs.
type SyncLogStore interface {
	// Create persists a new sync log. The caller computes the state hash.
	Create(ctx context.Context, log *models.SyncLog) error

	// Get returns a log by its restore token, or [ErrSyncLogNotFound].
	Get(ctx context.Context, id string) (*models.SyncLog, error)

	// LastForUser returns the most recently created log for a user, or
	// (nil, nil) when the user has never synced.
	LastForUser(ctx context.Context, userID string) (*models.SyncLog, error)

	// Update rewrites an existing log in place. Only sanctioned for the
	// footprint shrink performed when a case is archived.
	Update(ctx context.Context, log *models.SyncLog) error
}

// FlagStore persists ownership-cleanliness flags keyed by (domain, owner).
type FlagStore interface {
	// Get returns the flag for (domain, owner), or [ErrFlagNotFound] when
	// the owner has never been tracked.
	Get(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error)

	// Upsert writes the flag atomically (insert-or-update on the
	// (domain, owner) key).
	Upsert(ctx context.Context, flag *models.CleanlinessFlag) error

	// MarkDirty atomically flips the flag for (domain, owner) to dirty
	// with the given hint, creating the row if absent.
	MarkDirty(ctx context.Context, domain, ownerID, hintCaseID string) error
}

// PayloadCache stores rendered restore payloads, content-addressed by the
// syncing user, the state hash of the prior log, and the protocol version.
// Writes are idempotent: storing the same bytes twice for one key is
// harmless.
//
// Every entry records the change-stream checkpoint the payload was computed
// at. Callers compare it against the current checkpoint before serving: a
// commit anywhere in the domain makes older entries stale.
type PayloadCache interface {
	// Get returns the cached bytes and the checkpoint they were computed
	// at, or ok == false on a miss.
	Get(ctx context.Context, userID, stateHash, version string) ([]byte, int64, bool, error)
	Set(ctx context.Context, userID, stateHash, version string, checkpoint int64, payload []byte) error

	// InvalidateAll drops every cached version for (user, stateHash) at
	// once.
	InvalidateAll(ctx context.Context, userID, stateHash string) error

	Close() error
}
