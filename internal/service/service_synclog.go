// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/models"
)

// syncLogService handles sync-log maintenance outside the restore path.
type syncLogService struct {
	logs     store.SyncLogStore
	payloads store.PayloadCache

	logger *logger.Logger
}

// NewSyncLogService constructs a [SyncLogService].
func NewSyncLogService(logs store.SyncLogStore, payloads store.PayloadCache, logger *logger.Logger) SyncLogService {
	return &syncLogService{
		logs:     logs,
		payloads: payloads,
		logger:   logger,
	}
}

func (s *syncLogService) Get(ctx context.Context, id string) (*models.SyncLog, error) {
	return s.logs.Get(ctx, id)
}

// ArchiveCase shrinks a log's footprint after a case is archived
// server-side: the case leaves, and so does every dependent case reachable
// only through it. The closure is recomputed from the index edges recorded
// in the log itself, so the shrink needs no access to the live case graph.
//
// Archiving a case the log never tracked is a no-op. Cached payloads built
// on the old state hash are invalidated because they no longer describe the
// device's expected state.
func (s *syncLogService) ArchiveCase(ctx context.Context, logID, caseID string) (*models.SyncLog, error) {
	log := logger.FromContext(ctx)

	syncLog, err := s.logs.Get(ctx, logID)
	if err != nil {
		return nil, err
	}

	if _, ok := syncLog.CaseIDsOnPhone()[caseID]; !ok {
		return syncLog, nil
	}

	owned := make([]models.CaseState, 0, len(syncLog.OwnedCases))
	seeds := make([]string, 0, len(syncLog.OwnedCases))
	for _, st := range syncLog.OwnedCases {
		if st.CaseID == caseID {
			continue
		}
		owned = append(owned, st)
		seeds = append(seeds, st.CaseID)
	}

	// The archived case must not act as a bridge, so its edges are dropped
	// before computing reachability.
	states := make([]models.CaseState, 0, len(owned)+len(syncLog.DependentCases))
	states = append(states, owned...)
	for _, st := range syncLog.DependentCases {
		if st.CaseID != caseID {
			states = append(states, st)
		}
	}
	reachable := StateClosure(states, seeds)

	dependent := make([]models.CaseState, 0, len(syncLog.DependentCases))
	for _, st := range syncLog.DependentCases {
		if st.CaseID == caseID {
			continue
		}
		if _, ok := reachable[st.CaseID]; ok {
			dependent = append(dependent, st)
		}
	}

	oldHash := syncLog.StateHash

	syncLog.OwnedCases = owned
	syncLog.DependentCases = dependent
	syncLog.StateHash = utils.StateHash(syncLog.CaseIDsOnPhone())

	if err := s.logs.Update(ctx, syncLog); err != nil {
		return nil, err
	}

	if err := s.payloads.InvalidateAll(ctx, syncLog.UserID, oldHash); err != nil {
		// The stale entry can only cause a cache miss on the device's next
		// sync, not a wrong response, so the shrink itself still counts.
		log.Err(err).
			Str("func", "syncLogService.ArchiveCase").
			Str("sync_log_id", logID).
			Msg("failed to invalidate cached payloads after footprint shrink")
	}

	log.Info().
		Str("func", "syncLogService.ArchiveCase").
		Str("sync_log_id", logID).
		Str("case_id", caseID).
		Int("owned", len(owned)).
		Int("dependent", len(dependent)).
		Msg("sync log footprint shrunk after case archive")

	return syncLog, nil
}
