// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tkarimov/casesync/models"
)

// MemoryCaseStore is the in-memory [CaseStore]: a case table plus an owner
// index and a reverse index over edges, all guarded by one mutex so that a
// commit (case writes + flag updates + checkpoint advance) is atomic, the
// same guarantee the PostgreSQL repository gets from its transaction.
//
// Used by tests and by embedded/single-process deployments.
type MemoryCaseStore struct {
	mu    sync.RWMutex
	cases map[string]map[string]*models.Case // domain → case ID → case
	seq   map[string]int64                   // domain → checkpoint

	// flags is the sibling flag store; commits write dirty flags through
	// it under the same lock when it is set via BindFlagStore.
	flags *MemoryFlagStore
}

// NewMemoryCaseStore constructs an empty in-memory case store.
func NewMemoryCaseStore() *MemoryCaseStore {
	return &MemoryCaseStore{
		cases: make(map[string]map[string]*models.Case),
		seq:   make(map[string]int64),
	}
}

// BindFlagStore couples the case store to a flag store so that CommitCases
// applies flag updates atomically with the case writes.
func (s *MemoryCaseStore) BindFlagStore(flags *MemoryFlagStore) {
	s.flags = flags
}

func copyCase(c *models.Case) *models.Case {
	cp := *c
	if c.Properties != nil {
		cp.Properties = make(map[string]string, len(c.Properties))
		for k, v := range c.Properties {
			cp.Properties[k] = v
		}
	}
	cp.Actions = append([]models.CaseAction(nil), c.Actions...)
	cp.Indices = append([]models.CaseIndex(nil), c.Indices...)
	return &cp
}

func (s *MemoryCaseStore) GetCase(_ context.Context, domain, caseID string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cases[domain][caseID]
	if !ok {
		return nil, ErrCaseNotFound
	}
	return copyCase(c), nil
}

func (s *MemoryCaseStore) GetCases(_ context.Context, domain string, caseIDs []string) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Case, 0, len(caseIDs))
	for _, id := range caseIDs {
		if c, ok := s.cases[domain][id]; ok && !c.Deleted {
			result = append(result, copyCase(c))
		}
	}
	return result, nil
}

func (s *MemoryCaseStore) GetCaseIDsOwnedBy(_ context.Context, domain string, ownerIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make(map[string]struct{}, len(ownerIDs))
	for _, o := range ownerIDs {
		owners[o] = struct{}{}
	}

	var ids []string
	for id, c := range s.cases[domain] {
		if _, ok := owners[c.OwnerID]; ok && !c.Deleted {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryCaseStore) GetCasesOwnedBy(ctx context.Context, domain string, ownerIDs []string) ([]*models.Case, error) {
	ids, err := s.GetCaseIDsOwnedBy(ctx, domain, ownerIDs)
	if err != nil {
		return nil, err
	}
	return s.GetCases(ctx, domain, ids)
}

func (s *MemoryCaseStore) GetCasesIndexing(_ context.Context, domain, targetCaseID string) ([]*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Case
	for _, c := range s.cases[domain] {
		if c.Deleted {
			continue
		}
		for _, idx := range c.Indices {
			if idx.ReferencedID == targetCaseID {
				result = append(result, copyCase(c))
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CaseID < result[j].CaseID })
	return result, nil
}

func (s *MemoryCaseStore) CommitCases(_ context.Context, domain string, cases []*models.Case, flags []FlagUpdate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[domain]++
	seq := s.seq[domain]

	if s.cases[domain] == nil {
		s.cases[domain] = make(map[string]*models.Case)
	}
	for _, c := range cases {
		cp := copyCase(c)
		cp.Sequence = seq
		s.cases[domain][c.CaseID] = cp
	}

	if s.flags != nil {
		now := time.Now().UTC()
		for _, f := range flags {
			s.flags.markDirty(f.Domain, f.OwnerID, f.HintCaseID, now)
		}
	}

	return seq, nil
}

func (s *MemoryCaseStore) Checkpoint(_ context.Context, domain string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq[domain], nil
}

// MemorySyncLogStore is the in-memory [SyncLogStore].
type MemorySyncLogStore struct {
	mu   sync.RWMutex
	logs map[string]*models.SyncLog
	// order preserves creation order per user for LastForUser.
	order map[string][]string
}

// NewMemorySyncLogStore constructs an empty in-memory sync-log store.
func NewMemorySyncLogStore() *MemorySyncLogStore {
	return &MemorySyncLogStore{
		logs:  make(map[string]*models.SyncLog),
		order: make(map[string][]string),
	}
}

func copySyncLog(l *models.SyncLog) *models.SyncLog {
	cp := *l
	cp.OwnedCases = append([]models.CaseState(nil), l.OwnedCases...)
	cp.DependentCases = append([]models.CaseState(nil), l.DependentCases...)
	return &cp
}

func (s *MemorySyncLogStore) Create(_ context.Context, log *models.SyncLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[log.ID] = copySyncLog(log)
	s.order[log.UserID] = append(s.order[log.UserID], log.ID)
	return nil
}

func (s *MemorySyncLogStore) Get(_ context.Context, id string) (*models.SyncLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.logs[id]
	if !ok {
		return nil, ErrSyncLogNotFound
	}
	return copySyncLog(l), nil
}

func (s *MemorySyncLogStore) LastForUser(_ context.Context, userID string) (*models.SyncLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[userID]
	if len(ids) == 0 {
		return nil, nil
	}
	return copySyncLog(s.logs[ids[len(ids)-1]]), nil
}

func (s *MemorySyncLogStore) Update(_ context.Context, log *models.SyncLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[log.ID]; !ok {
		return ErrSyncLogNotFound
	}
	s.logs[log.ID] = copySyncLog(log)
	return nil
}

// MemoryFlagStore is the in-memory [FlagStore].
type MemoryFlagStore struct {
	mu    sync.RWMutex
	flags map[string]map[string]*models.CleanlinessFlag // domain → owner → flag
}

// NewMemoryFlagStore constructs an empty in-memory flag store.
func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{
		flags: make(map[string]map[string]*models.CleanlinessFlag),
	}
}

func (s *MemoryFlagStore) Get(_ context.Context, domain, ownerID string) (*models.CleanlinessFlag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flags[domain][ownerID]
	if !ok {
		return nil, ErrFlagNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *MemoryFlagStore) Upsert(_ context.Context, flag *models.CleanlinessFlag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flags[flag.Domain] == nil {
		s.flags[flag.Domain] = make(map[string]*models.CleanlinessFlag)
	}
	cp := *flag
	s.flags[flag.Domain][flag.OwnerID] = &cp
	return nil
}

func (s *MemoryFlagStore) MarkDirty(_ context.Context, domain, ownerID, hintCaseID string) error {
	s.markDirty(domain, ownerID, hintCaseID, time.Now().UTC())
	return nil
}

// markDirty is shared with MemoryCaseStore.CommitCases and takes the flag
// store's own lock.
func (s *MemoryFlagStore) markDirty(domain, ownerID, hintCaseID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flags[domain] == nil {
		s.flags[domain] = make(map[string]*models.CleanlinessFlag)
	}
	s.flags[domain][ownerID] = &models.CleanlinessFlag{
		Domain:       domain,
		OwnerID:      ownerID,
		IsClean:      false,
		HintCaseID:   hintCaseID,
		LastComputed: now,
	}
}

// MemoryPayloadCache is the in-memory [PayloadCache], used by tests.
type MemoryPayloadCache struct {
	mu       sync.RWMutex
	payloads map[[3]string]cachedPayload
}

type cachedPayload struct {
	body       []byte
	checkpoint int64
}

// NewMemoryPayloadCache constructs an empty in-memory payload cache.
func NewMemoryPayloadCache() *MemoryPayloadCache {
	return &MemoryPayloadCache{payloads: make(map[[3]string]cachedPayload)}
}

func (c *MemoryPayloadCache) Get(_ context.Context, userID, stateHash, version string) ([]byte, int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.payloads[[3]string{userID, stateHash, version}]
	return entry.body, entry.checkpoint, ok, nil
}

func (c *MemoryPayloadCache) Set(_ context.Context, userID, stateHash, version string, checkpoint int64, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.payloads[[3]string{userID, stateHash, version}] = cachedPayload{
		body:       append([]byte(nil), payload...),
		checkpoint: checkpoint,
	}
	return nil
}

func (c *MemoryPayloadCache) InvalidateAll(_ context.Context, userID, stateHash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.payloads {
		if key[0] == userID && key[1] == stateHash {
			delete(c.payloads, key)
		}
	}
	return nil
}

func (c *MemoryPayloadCache) Close() error { return nil }
