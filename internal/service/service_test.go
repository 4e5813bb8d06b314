// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/store"
	"github.com/tkarimov/casesync/internal/toggles"
	"github.com/tkarimov/casesync/models"
)

const (
	testDomain = "test-domain"
	testUserID = "bar-user-id"
)

var testCreatedOn = time.Date(2011, 12, 1, 0, 0, 0, 0, time.UTC)

// testEnv wires the full service graph over the in-memory storages.
type testEnv struct {
	storages     *store.Storages
	footprint    *FootprintCalculator
	clean        CleanlinessService
	restore      RestoreService
	transactions TransactionService
	syncLogs     SyncLogService
	queue        chan RecomputeRequest
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithQueue(t, nil)
}

// newTestEnvWithQueue builds an environment whose cleanliness sampler always
// fires, so ScheduleRecompute behavior is deterministic when a queue is
// given.
func newTestEnvWithQueue(t *testing.T, queue chan RecomputeRequest) *testEnv {
	t.Helper()

	log := logger.Nop()
	storages := store.NewMemoryStorages()

	reg, err := toggles.NewRegistry("", log)
	require.NoError(t, err)

	cleanCfg := config.Cleanliness{SampleProbability: 1.0, FootprintDepthCap: 500}
	restoreCfg := config.Restore{Timeout: 5 * time.Second}

	footprint := NewFootprintCalculator(storages.Cases, cleanCfg, log)
	clean := NewCleanlinessService(storages.Cases, storages.Flags, footprint, reg, cleanCfg, queue, log)
	clean.(*cleanlinessService).sample = func() float64 { return 0 }

	return &testEnv{
		storages:     storages,
		footprint:    footprint,
		clean:        clean,
		restore:      NewRestoreService(storages, clean, footprint, reg, restoreCfg, log),
		transactions: NewTransactionService(storages.Cases, clean, log),
		syncLogs:     NewSyncLogService(storages.SyncLogs, storages.Payloads, log),
		queue:        queue,
	}
}

func (e *testEnv) seedCases(t *testing.T, cases ...*models.Case) {
	t.Helper()
	_, err := e.storages.Cases.CommitCases(context.Background(), testDomain, cases, nil)
	require.NoError(t, err)
}

func newCase(id, ownerID string) *models.Case {
	return &models.Case{
		CaseID:           id,
		Domain:           testDomain,
		Type:             "patient",
		Name:             id,
		OwnerID:          ownerID,
		OpenedBy:         ownerID,
		ModifiedBy:       ownerID,
		ServerModifiedOn: testCreatedOn,
	}
}

func withIndices(c *models.Case, indices ...models.CaseIndex) *models.Case {
	c.Indices = indices
	return c
}

func childIndex(identifier, referencedID string) models.CaseIndex {
	return models.CaseIndex{
		Identifier:     identifier,
		ReferencedType: "patient",
		ReferencedID:   referencedID,
		Relationship:   models.RelationshipChild,
	}
}

func restoreUser(groups ...string) models.RestoreUser {
	return models.RestoreUser{
		UserID:   testUserID,
		Username: "someuser",
		Domain:   testDomain,
		GroupIDs: groups,
	}
}

func txEnvelope(id string, date time.Time, mutations ...models.CaseMutation) *models.CaseTransaction {
	return &models.CaseTransaction{
		TransactionID: id,
		Domain:        testDomain,
		UserID:        testUserID,
		Date:          date,
		Mutations:     mutations,
	}
}

func footprintIDs(footprint map[string]*models.Case) []string {
	ids := make([]string, 0, len(footprint))
	for id := range footprint {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func stateIDs(states []models.CaseState) []string {
	ids := make([]string, 0, len(states))
	for _, st := range states {
		ids = append(ids, st.CaseID)
	}
	sort.Strings(ids)
	return ids
}
