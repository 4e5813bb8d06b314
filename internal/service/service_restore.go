// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/payload"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/toggles"
	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/internal/validators"
	"github.com/tkarimov/casesync/models"
)

// restoreService runs one restore end to end: request validation, prior-log
// reconciliation, the cached-payload short circuit, footprint computation,
// sync-log persistence and payload rendering.
//
// A restore that exceeds its wall-clock budget aborts with
// [ErrRestoreTimeout] before anything is persisted, so a retried request
// starts from the same prior state.
type restoreService struct {
	cases    store.CaseStore
	logs     store.SyncLogStore
	payloads store.PayloadCache

	clean     CleanlinessService
	footprint *FootprintCalculator
	toggles   *toggles.Registry

	cfg  config.Restore
	uuid *utils.UUIDGenerator

	logger *logger.Logger
}

// NewRestoreService constructs a [RestoreService].
func NewRestoreService(
	storages *store.Storages,
	clean CleanlinessService,
	footprint *FootprintCalculator,
	reg *toggles.Registry,
	cfg config.Restore,
	logger *logger.Logger,
) RestoreService {
	return &restoreService{
		cases:     storages.Cases,
		logs:      storages.SyncLogs,
		payloads:  storages.Payloads,
		clean:     clean,
		footprint: footprint,
		toggles:   reg,
		cfg:       cfg,
		uuid:      utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// Restore implements [RestoreService].
func (s *restoreService) Restore(ctx context.Context, req models.RestoreRequest) (*models.RestoreState, error) {
	log := logger.FromContext(ctx)

	state := &models.RestoreState{
		Request:   req,
		StartedAt: time.Now().UTC(),
	}

	if !payload.SupportedVersion(req.Version) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, req.Version)
	}
	if err := validators.ValidateDomain(req.User.Domain); err != nil {
		return nil, fmt.Errorf("%w: domain: %w", ErrValidation, err)
	}
	if req.User.UserID == "" {
		return nil, fmt.Errorf("%w: missing user ID", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	prior, err := s.loadPriorLog(ctx, req)
	if err != nil {
		return nil, wrapTimeout(err)
	}
	state.PriorLog = prior

	if cached, ok, err := s.cachedPayload(ctx, req, prior); err != nil {
		return nil, wrapTimeout(err)
	} else if ok {
		state.CacheHit = true
		state.Payload = cached
		log.Info().
			Str("func", "restoreService.Restore").
			Str("user_id", req.User.UserID).
			Str("since", req.SinceLogID).
			Msg("restore served from payload cache")
		return state, nil
	}

	newLog, toSend, err := s.compute(ctx, req, prior)
	if err != nil {
		return nil, wrapTimeout(err)
	}

	var buf bytes.Buffer
	doc := &payload.Document{
		RestoreID:   newLog.ID,
		User:        req.User,
		Incremental: prior != nil,
		Cases:       toSend,
	}
	if err := payload.Render(&buf, doc, req.Version); err != nil {
		return nil, fmt.Errorf("rendering restore payload: %w", err)
	}

	if err := s.logs.Create(ctx, newLog); err != nil {
		return nil, wrapTimeout(err)
	}

	s.storePayload(ctx, req, prior, newLog, buf.Bytes())

	state.NewLog = newLog
	state.Payload = buf.Bytes()

	log.Info().
		Str("func", "restoreService.Restore").
		Str("user_id", req.User.UserID).
		Str("sync_log_id", newLog.ID).
		Int("cases_on_phone", len(newLog.OwnedCases)+len(newLog.DependentCases)).
		Int("cases_sent", len(toSend)).
		Dur("elapsed", time.Since(state.StartedAt)).
		Msg("restore computed")

	return state, nil
}

// loadPriorLog resolves and reconciles the device's claimed sync state. An
// incremental request whose token cannot be honored gets a [RestoreError]
// (the device must start over); a live token with a diverged state hash
// gets a [BadStateError].
func (s *restoreService) loadPriorLog(ctx context.Context, req models.RestoreRequest) (*models.SyncLog, error) {
	if req.SinceLogID == "" {
		return nil, nil
	}

	prior, err := s.logs.Get(ctx, req.SinceLogID)
	if errors.Is(err, store.ErrSyncLogNotFound) {
		return nil, &RestoreError{Reason: fmt.Sprintf("sync log %s not found", req.SinceLogID)}
	}
	if err != nil {
		return nil, err
	}

	if prior.UserID != req.User.UserID {
		return nil, &RestoreError{Reason: fmt.Sprintf("sync log %s belongs to another user", req.SinceLogID)}
	}
	if prior.Domain != req.User.Domain {
		return nil, &RestoreError{Reason: fmt.Sprintf("sync log %s belongs to another domain", req.SinceLogID)}
	}

	// The claimed hash is optional; a device that sends one must match.
	if req.StateHash == "" {
		return prior, nil
	}
	claimed, err := utils.ParseStateHash(req.StateHash)
	if err != nil {
		return nil, fmt.Errorf("%w: state hash: %w", ErrValidation, err)
	}
	if claimed != prior.StateHash {
		onPhone := prior.CaseIDsOnPhone()
		ids := make([]string, 0, len(onPhone))
		for id := range onPhone {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return nil, &BadStateError{
			Expected: prior.StateHash,
			Actual:   claimed,
			CaseIDs:  ids,
		}
	}

	return prior, nil
}

// cachedPayload tries the response cache. Incremental syncs are keyed by
// the prior log's state hash; an initial sync has no prior state and is
// only cached when the request opts in with ForceCache, under the empty
// hash. A hit is served only if the entry was computed at the domain's
// current checkpoint: any commit since then could have changed the
// footprint, so older entries are treated as misses.
func (s *restoreService) cachedPayload(ctx context.Context, req models.RestoreRequest, prior *models.SyncLog) ([]byte, bool, error) {
	if s.cfg.CacheDisabled || req.OverwriteCache {
		return nil, false, nil
	}
	if prior == nil && !req.ForceCache {
		return nil, false, nil
	}

	body, cachedAt, ok, err := s.payloads.Get(ctx, req.User.UserID, cacheStateHash(prior), req.Version)
	if err != nil || !ok {
		return nil, false, err
	}

	checkpoint, err := s.cases.Checkpoint(ctx, req.User.Domain)
	if err != nil {
		return nil, false, err
	}
	if cachedAt != checkpoint {
		return nil, false, nil
	}

	return body, true, nil
}

// cacheStateHash is the cache key component for the device's synced-from
// state: the prior log's hash, or empty for an initial sync.
func cacheStateHash(prior *models.SyncLog) string {
	if prior == nil {
		return ""
	}
	return prior.StateHash
}

// compute builds the new sync log and selects the case blocks to send.
func (s *restoreService) compute(ctx context.Context, req models.RestoreRequest, prior *models.SyncLog) (*models.SyncLog, []*models.Case, error) {
	domain := req.User.Domain

	owned, err := s.cases.GetCasesOwnedBy(ctx, domain, req.User.OwnerIDs())
	if err != nil {
		return nil, nil, err
	}

	footprint, err := s.expandFootprint(ctx, domain, req.User, owned)
	if err != nil {
		return nil, nil, err
	}

	checkpoint, err := s.cases.Checkpoint(ctx, domain)
	if err != nil {
		return nil, nil, err
	}

	ownedIDs := make(map[string]struct{}, len(owned))
	ownedStates := make([]models.CaseState, 0, len(owned))
	for _, c := range owned {
		ownedIDs[c.CaseID] = struct{}{}
		ownedStates = append(ownedStates, models.NewCaseState(c))
	}

	dependentStates := make([]models.CaseState, 0, len(footprint)-len(owned))
	for id, c := range footprint {
		if _, ok := ownedIDs[id]; !ok {
			dependentStates = append(dependentStates, models.NewCaseState(c))
		}
	}
	sort.Slice(ownedStates, func(i, j int) bool { return ownedStates[i].CaseID < ownedStates[j].CaseID })
	sort.Slice(dependentStates, func(i, j int) bool { return dependentStates[i].CaseID < dependentStates[j].CaseID })

	newLog := &models.SyncLog{
		ID:             s.uuid.Generate(),
		UserID:         req.User.UserID,
		Domain:         domain,
		Sequence:       checkpoint,
		Date:           time.Now().UTC(),
		OwnedCases:     ownedStates,
		DependentCases: dependentStates,
	}
	if prior != nil {
		newLog.PreviousLogID = prior.ID
	}
	newLog.StateHash = utils.StateHash(newLog.CaseIDsOnPhone())

	return newLog, selectCasesToSend(footprint, prior), nil
}

// expandFootprint turns the owned set into the full device footprint. Clean
// owners contribute their cases as-is; only the cases of dirty (or
// untracked) owners are expanded over index edges.
func (s *restoreService) expandFootprint(ctx context.Context, domain string, user models.RestoreUser, owned []*models.Case) (map[string]*models.Case, error) {
	if !s.toggles.CleanlinessTrackingEnabled(domain) {
		return s.footprint.Expand(ctx, domain, owned)
	}

	dirtyOwners := make(map[string]struct{})
	for _, ownerID := range user.OwnerIDs() {
		flag, err := s.clean.Flag(ctx, domain, ownerID)
		if err != nil {
			return nil, err
		}
		if !flag.IsClean {
			dirtyOwners[ownerID] = struct{}{}
		}
	}

	if len(dirtyOwners) == 0 {
		result := make(map[string]*models.Case, len(owned))
		for _, c := range owned {
			result[c.CaseID] = c
		}
		return result, nil
	}

	seeds := make([]*models.Case, 0, len(owned))
	for _, c := range owned {
		if _, ok := dirtyOwners[c.OwnerID]; ok {
			seeds = append(seeds, c)
		}
	}

	footprint, err := s.footprint.Expand(ctx, domain, seeds)
	if err != nil {
		return nil, err
	}
	for _, c := range owned {
		if _, ok := footprint[c.CaseID]; !ok {
			footprint[c.CaseID] = c
		}
	}
	return footprint, nil
}

// selectCasesToSend picks the case blocks for the response: everything on
// an initial sync, and on an incremental sync the cases new to the device
// plus the ones committed after the prior sync's checkpoint. The diff runs
// on the server-assigned sequence, never on dates: devices backdate
// submissions, so a case's modification date says nothing about when the
// server learned of the change.
func selectCasesToSend(footprint map[string]*models.Case, prior *models.SyncLog) []*models.Case {
	toSend := make([]*models.Case, 0, len(footprint))

	if prior == nil {
		for _, c := range footprint {
			toSend = append(toSend, c)
		}
		return toSend
	}

	onPhone := prior.CaseIDsOnPhone()
	for id, c := range footprint {
		if _, known := onPhone[id]; !known || c.Sequence > prior.Sequence {
			toSend = append(toSend, c)
		}
	}
	return toSend
}

// storePayload writes the rendered payload into the response cache, keyed
// by the state the device synced from and stamped with the checkpoint the
// payload was computed at. Initial syncs are cached only on ForceCache.
// Cache write failures are logged and swallowed.
func (s *restoreService) storePayload(ctx context.Context, req models.RestoreRequest, prior, newLog *models.SyncLog, body []byte) {
	if s.cfg.CacheDisabled {
		return
	}
	if prior == nil && !req.ForceCache {
		return
	}
	if err := s.payloads.Set(ctx, req.User.UserID, cacheStateHash(prior), req.Version, newLog.Sequence, body); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "restoreService.storePayload").
			Str("user_id", req.User.UserID).
			Msg("failed to cache restore payload")
	}
}

// wrapTimeout converts a deadline expiry into the retryable restore timeout
// error.
func wrapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrRestoreTimeout, err)
	}
	return err
}
