// SPDX-License-Identifier: Apache-2.0

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

import (
	"context"

	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/models"
)

// RestoreService runs the restore state machine: validate the request,
// serve from the payload cache when possible, otherwise compute the case
// footprint, persist a new sync log and render the response.
type RestoreService interface {
	Restore(ctx context.Context, req models.RestoreRequest) (*models.RestoreState, error)
}

// TransactionService applies case transactions from the form-submission
// pipeline to the case store, maintaining cleanliness flags along the way.
type TransactionService interface {
	// Apply commits all mutations of one transaction atomically and
	// returns the new change-stream checkpoint.
	Apply(ctx context.Context, tx *models.CaseTransaction) (int64, error)
}

// CleanlinessService maintains the per-(domain, owner) ownership
// cleanliness flags consulted by the restore engine.
type CleanlinessService interface {
	// Flag returns the owner's flag, computing and persisting it on first
	// access.
	Flag(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error)

	// Recompute rebuilds the flag from the live case graph and persists
	// it, ignoring the sampling probability.
	Recompute(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error)

	// TransactionFlagUpdates derives the dirty-flag writes a set of case
	// mutations implies. The updates must be committed atomically with
	// the mutations themselves.
	TransactionFlagUpdates(ctx context.Context, domain string, before map[string]*models.Case, after []*models.Case) ([]store.FlagUpdate, error)

	// ScheduleRecompute queues a background recompute for the owner,
	// subject to the sampling probability. Never blocks.
	ScheduleRecompute(domain, ownerID string)
}

// SyncLogService exposes sync-log maintenance that happens outside a
// restore, such as shrinking a device footprint after a case is archived.
type SyncLogService interface {
	Get(ctx context.Context, id string) (*models.SyncLog, error)

	// ArchiveCase removes a case, and everything reachable only through
	// it, from the log's footprint, and invalidates cached payloads built
	// on the old state.
	ArchiveCase(ctx context.Context, logID, caseID string) (*models.SyncLog, error)
}

// AppInfoService exposes application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// RecomputeRequest is one queued background flag recompute.
type RecomputeRequest struct {
	Domain  string
	OwnerID string
}
