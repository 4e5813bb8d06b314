// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarimov/casesync/models"
)

func TestApply_CreateCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seq, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooCreatedOn,
		models.CaseMutation{
			CaseID: "foo-case-id",
			Create: &models.CaseCreate{
				CaseType: "v2_case_type",
				CaseName: "test case name",
				OwnerID:  testUserID,
			},
		}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)

	created, err := env.storages.Cases.GetCase(ctx, testDomain, "foo-case-id")
	require.NoError(t, err)
	assert.Equal(t, "v2_case_type", created.Type)
	assert.Equal(t, "test case name", created.Name)
	assert.Equal(t, testUserID, created.OwnerID)
	assert.Equal(t, testUserID, created.OpenedBy)
	assert.Equal(t, testUserID, created.ModifiedBy)
	assert.Equal(t, fooCreatedOn, created.ServerModifiedOn)
	assert.False(t, created.Closed)

	require.Len(t, created.Actions, 1)
	assert.Equal(t, models.ActionCreate, created.Actions[0].Kind)
}

func TestApply_UnknownCaseRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.transactions.Apply(context.Background(), txEnvelope("tx-1", fooCreatedOn,
		models.CaseMutation{CaseID: "no-such-case", Updates: map[string]string{"a": "b"}}))
	require.ErrorIs(t, err, ErrValidation)
}

func TestApply_ValidatesEnvelope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		tx   *models.CaseTransaction
	}{
		{
			name: "missing transaction ID",
			tx: &models.CaseTransaction{
				Domain: testDomain, UserID: testUserID, Date: fooCreatedOn,
				Mutations: []models.CaseMutation{{CaseID: "case-a", Create: &models.CaseCreate{CaseType: "t", OwnerID: "o"}}},
			},
		},
		{
			name: "no mutations",
			tx: &models.CaseTransaction{
				TransactionID: "tx-1", Domain: testDomain, UserID: testUserID, Date: fooCreatedOn,
			},
		},
		{
			name: "malformed domain",
			tx: &models.CaseTransaction{
				TransactionID: "tx-1", Domain: "bad domain", UserID: testUserID, Date: fooCreatedOn,
				Mutations: []models.CaseMutation{{CaseID: "case-a", Create: &models.CaseCreate{CaseType: "t", OwnerID: "o"}}},
			},
		},
		{
			name: "create without owner",
			tx: txEnvelope("tx-1", fooCreatedOn,
				models.CaseMutation{CaseID: "case-a", Create: &models.CaseCreate{CaseType: "t"}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.transactions.Apply(ctx, tt.tx)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestApply_ReplayedCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tx := txEnvelope("tx-1", fooCreatedOn,
		models.CaseMutation{
			CaseID: "foo-case-id",
			Create: &models.CaseCreate{CaseType: "v2_case_type", CaseName: "test case name", OwnerID: testUserID},
		})

	_, err := env.transactions.Apply(ctx, tx)
	require.NoError(t, err)
	_, err = env.transactions.Apply(ctx, tx)
	require.NoError(t, err)

	replayed, err := env.storages.Cases.GetCase(ctx, testDomain, "foo-case-id")
	require.NoError(t, err)
	assert.Equal(t, "v2_case_type", replayed.Type)
	assert.Equal(t, testUserID, replayed.OwnerID)
}

func TestApply_MultipleMutationsSameCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooCreatedOn,
		models.CaseMutation{
			CaseID: "foo-case-id",
			Create: &models.CaseCreate{CaseType: "v2_case_type", CaseName: "test case name", OwnerID: testUserID},
		},
		models.CaseMutation{
			CaseID:  "foo-case-id",
			Updates: map[string]string{"status": "open"},
		}))
	require.NoError(t, err)

	merged, err := env.storages.Cases.GetCase(ctx, testDomain, "foo-case-id")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "open"}, merged.Properties)
	assert.Len(t, merged.Actions, 2)
}

func TestApply_IndexRemoval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCases(t,
		withIndices(newCase("case-a", testUserID), childIndex("parent", "case-b")),
		newCase("case-b", testUserID),
	)

	_, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooUpdatedOn,
		models.CaseMutation{
			CaseID:       "case-a",
			IndexChanges: []models.IndexChange{{Identifier: "parent"}},
		}))
	require.NoError(t, err)

	updated, err := env.storages.Cases.GetCase(ctx, testDomain, "case-a")
	require.NoError(t, err)
	assert.False(t, updated.HasIndex("parent"))
}

func TestApply_ForeignIndexDirtiesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCases(t, newCase("target-a", "owner-y"))

	_, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooUpdatedOn,
		models.CaseMutation{
			CaseID: "case-a",
			Create: &models.CaseCreate{CaseType: "patient", OwnerID: "owner-x"},
			IndexChanges: []models.IndexChange{
				{Identifier: "parent", ReferencedType: "patient", ReferencedID: "target-a", Relationship: models.RelationshipChild},
			},
		}))
	require.NoError(t, err)

	flag, err := env.storages.Flags.Get(ctx, testDomain, "owner-x")
	require.NoError(t, err)
	assert.False(t, flag.IsClean)
	assert.Equal(t, "target-a", flag.HintCaseID)
}

func TestApply_OwnerTransferDirtiesPriorOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCases(t,
		newCase("case-a", "owner-x"),
		withIndices(newCase("case-b", "owner-x"), childIndex("parent", "case-a")),
	)

	_, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooUpdatedOn,
		models.CaseMutation{CaseID: "case-a", NewOwnerID: "owner-y"}))
	require.NoError(t, err)

	flag, err := env.storages.Flags.Get(ctx, testDomain, "owner-x")
	require.NoError(t, err)
	assert.False(t, flag.IsClean)
	assert.Equal(t, "case-a", flag.HintCaseID)
}

func TestApply_SchedulesRecomputeForTouchedOwners(t *testing.T) {
	queue := make(chan RecomputeRequest, 4)
	env := newTestEnvWithQueue(t, queue)
	ctx := context.Background()
	env.seedCases(t, newCase("case-a", "owner-x"))

	_, err := env.transactions.Apply(ctx, txEnvelope("tx-1", fooUpdatedOn,
		models.CaseMutation{CaseID: "case-a", NewOwnerID: "owner-y"}))
	require.NoError(t, err)

	require.Len(t, queue, 2)
	owners := map[string]struct{}{}
	owners[(<-queue).OwnerID] = struct{}{}
	owners[(<-queue).OwnerID] = struct{}{}
	assert.Contains(t, owners, "owner-x")
	assert.Contains(t, owners, "owner-y")
}
