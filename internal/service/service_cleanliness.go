// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/toggles"
	"github.com/tkarimov/casesync/internal/validators"
	"github.com/tkarimov/casesync/models"
)

// cleanlinessService maintains the ownership-cleanliness flags. A flag is
// clean when every case in the owner's footprint is owned by that owner;
// clean owners let the restore engine skip footprint expansion entirely.
//
// Flags are maintained two ways: incrementally, by deriving dirty-flag
// writes from each case transaction (committed atomically with it), and by
// full recomputes, either forced through the API or sampled into a
// background queue to repair any drift.
type cleanlinessService struct {
	cases     store.CaseStore
	flags     store.FlagStore
	footprint *FootprintCalculator
	toggles   *toggles.Registry
	cfg       config.Cleanliness

	queue chan<- RecomputeRequest

	// sample decides whether one ScheduleRecompute call goes through;
	// overridable in tests.
	sample func() float64

	logger *logger.Logger
}

// NewCleanlinessService constructs the cleanliness tracker. queue receives
// sampled background recomputes and may be nil, which disables sampling.
func NewCleanlinessService(
	cases store.CaseStore,
	flags store.FlagStore,
	footprint *FootprintCalculator,
	reg *toggles.Registry,
	cfg config.Cleanliness,
	queue chan<- RecomputeRequest,
	logger *logger.Logger,
) CleanlinessService {
	return &cleanlinessService{
		cases:     cases,
		flags:     flags,
		footprint: footprint,
		toggles:   reg,
		cfg:       cfg,
		queue:     queue,
		sample:    rand.Float64,
		logger:    logger,
	}
}

// Flag returns the owner's cleanliness flag, computing and persisting it on
// first access.
func (s *cleanlinessService) Flag(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error) {
	if err := validators.ValidateDomain(domain); err != nil {
		return nil, fmt.Errorf("%w: domain: %w", ErrValidation, err)
	}
	if err := validators.ValidateOwnerID(ownerID); err != nil {
		return nil, fmt.Errorf("%w: owner: %w", ErrValidation, err)
	}

	flag, err := s.flags.Get(ctx, domain, ownerID)
	if errors.Is(err, store.ErrFlagNotFound) {
		return s.Recompute(ctx, domain, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return flag, nil
}

// Recompute rebuilds the owner's flag and persists it. A dirty flag whose
// witness hint still describes a live cross-owner edge is confirmed cheaply
// without walking the footprint; everything else triggers a full rebuild.
func (s *cleanlinessService) Recompute(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error) {
	log := logger.FromContext(ctx)

	if err := validators.ValidateDomain(domain); err != nil {
		return nil, fmt.Errorf("%w: domain: %w", ErrValidation, err)
	}
	if err := validators.ValidateOwnerID(ownerID); err != nil {
		return nil, fmt.Errorf("%w: owner: %w", ErrValidation, err)
	}

	prior, err := s.flags.Get(ctx, domain, ownerID)
	if err != nil && !errors.Is(err, store.ErrFlagNotFound) {
		return nil, err
	}

	if prior != nil && !prior.IsClean && prior.HintCaseID != "" {
		valid, err := s.hintStillValid(ctx, domain, ownerID, prior.HintCaseID)
		if err != nil {
			return nil, err
		}
		if valid {
			confirmed := &models.CleanlinessFlag{
				Domain:       domain,
				OwnerID:      ownerID,
				IsClean:      false,
				HintCaseID:   prior.HintCaseID,
				LastComputed: time.Now().UTC(),
			}
			if err := s.flags.Upsert(ctx, confirmed); err != nil {
				return nil, err
			}
			return confirmed, nil
		}
		log.Debug().
			Str("func", "cleanlinessService.Recompute").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Str("hint_case_id", prior.HintCaseID).
			Msg("witness hint no longer valid, running full recompute")
	}

	flag, err := s.fullRecompute(ctx, domain, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.flags.Upsert(ctx, flag); err != nil {
		return nil, err
	}
	return flag, nil
}

// fullRecompute walks the owner's full footprint and derives the flag from
// scratch. The witness hint of a dirty flag is the lexicographically
// smallest foreign-owned case in the footprint, so repeated recomputes over
// the same graph produce the same flag.
func (s *cleanlinessService) fullRecompute(ctx context.Context, domain, ownerID string) (*models.CleanlinessFlag, error) {
	owned, err := s.cases.GetCasesOwnedBy(ctx, domain, []string{ownerID})
	if err != nil {
		return nil, err
	}

	footprint, err := s.footprint.Expand(ctx, domain, owned)
	if err != nil {
		return nil, err
	}

	var foreign []string
	for id, c := range footprint {
		if c.OwnerID != ownerID {
			foreign = append(foreign, id)
		}
	}

	flag := &models.CleanlinessFlag{
		Domain:       domain,
		OwnerID:      ownerID,
		IsClean:      len(foreign) == 0,
		LastComputed: time.Now().UTC(),
	}
	if len(foreign) > 0 {
		sort.Strings(foreign)
		flag.HintCaseID = foreign[0]
	}
	return flag, nil
}

// hintStillValid reports whether the witness case still makes the owner
// dirty: it must be live, foreign-owned, and still referenced by one of the
// owner's cases.
func (s *cleanlinessService) hintStillValid(ctx context.Context, domain, ownerID, hintCaseID string) (bool, error) {
	hint, err := s.cases.GetCase(ctx, domain, hintCaseID)
	if errors.Is(err, store.ErrCaseNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if hint.Deleted || hint.OwnerID == ownerID {
		return false, nil
	}

	indexers, err := s.cases.GetCasesIndexing(ctx, domain, hintCaseID)
	if err != nil {
		return false, err
	}
	for _, c := range indexers {
		if c.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

// TransactionFlagUpdates derives the dirty-flag writes implied by one
// transaction's mutations. before maps case ID to the pre-transaction state
// (absent for creates); after holds the post-transaction cases.
//
// Two mutation shapes can break cleanliness:
//
//   - a case gains an index edge to a foreign-owned target, dirtying the
//     case's owner with the target as witness;
//   - a case changes owner, dirtying the old owner and the owner of every
//     case referencing it (their footprints now cross ownership), plus the
//     new owner when the case itself references foreign-owned targets.
//
// Flags are only ever dirtied here; proving an owner clean again requires a
// full recompute.
func (s *cleanlinessService) TransactionFlagUpdates(ctx context.Context, domain string, before map[string]*models.Case, after []*models.Case) ([]store.FlagUpdate, error) {
	if !s.toggles.CleanlinessTrackingEnabled(domain) {
		return nil, nil
	}

	// Lookup preferring the post-transaction state, so edges between two
	// cases mutated together resolve consistently.
	afterByID := make(map[string]*models.Case, len(after))
	for _, c := range after {
		afterByID[c.CaseID] = c
	}
	lookup := func(caseID string) (*models.Case, error) {
		if c, ok := afterByID[caseID]; ok {
			return c, nil
		}
		c, err := s.cases.GetCase(ctx, domain, caseID)
		if errors.Is(err, store.ErrCaseNotFound) {
			return nil, nil
		}
		return c, err
	}

	dirty := make(map[string]string) // owner ID → witness hint

	mark := func(ownerID, hint string) {
		if ownerID == "" {
			return
		}
		if _, ok := dirty[ownerID]; !ok {
			dirty[ownerID] = hint
		}
	}

	for _, c := range after {
		prior := before[c.CaseID]

		for _, idx := range c.Indices {
			if prior != nil && prior.HasIndex(idx.Identifier) {
				if existing, _ := prior.GetIndex(idx.Identifier); existing.ReferencedID == idx.ReferencedID {
					continue
				}
			}
			target, err := lookup(idx.ReferencedID)
			if err != nil {
				return nil, err
			}
			if target != nil && target.OwnerID != c.OwnerID {
				mark(c.OwnerID, target.CaseID)
			}
		}

		if prior == nil || prior.OwnerID == c.OwnerID {
			continue
		}

		// Ownership transfer: the old owner lost the case but may still
		// reach it through edges, and referencing cases now cross the
		// boundary.
		mark(prior.OwnerID, c.CaseID)

		indexers, err := s.cases.GetCasesIndexing(ctx, domain, c.CaseID)
		if err != nil {
			return nil, err
		}
		for _, indexer := range indexers {
			if indexer.OwnerID != c.OwnerID {
				mark(indexer.OwnerID, c.CaseID)
			}
		}

		for _, idx := range c.Indices {
			target, err := lookup(idx.ReferencedID)
			if err != nil {
				return nil, err
			}
			if target != nil && target.OwnerID != c.OwnerID {
				mark(c.OwnerID, target.CaseID)
			}
		}
	}

	owners := make([]string, 0, len(dirty))
	for ownerID := range dirty {
		owners = append(owners, ownerID)
	}
	sort.Strings(owners)

	updates := make([]store.FlagUpdate, 0, len(owners))
	for _, ownerID := range owners {
		updates = append(updates, store.FlagUpdate{
			Domain:     domain,
			OwnerID:    ownerID,
			HintCaseID: dirty[ownerID],
		})
	}
	return updates, nil
}

// ScheduleRecompute enqueues a background recompute for the owner with
// probability cfg.SampleProbability. The queue is bounded and a full queue
// drops the request; a later sample will repair the flag.
func (s *cleanlinessService) ScheduleRecompute(domain, ownerID string) {
	if s.queue == nil || s.sample() >= s.cfg.SampleProbability {
		return
	}

	select {
	case s.queue <- RecomputeRequest{Domain: domain, OwnerID: ownerID}:
	default:
		s.logger.Debug().
			Str("func", "cleanlinessService.ScheduleRecompute").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Msg("recompute queue full, dropping sampled recompute")
	}
}
