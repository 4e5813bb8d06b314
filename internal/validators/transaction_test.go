// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarimov/casesync/models"
)

func wellFormedTransaction() *models.CaseTransaction {
	return &models.CaseTransaction{
		TransactionID: "tx-1",
		Domain:        "test-domain",
		UserID:        "bar-user-id",
		Date:          time.Date(2011, 12, 6, 13, 42, 50, 0, time.UTC),
		Mutations: []models.CaseMutation{
			{
				CaseID: "foo-case-id",
				Create: &models.CaseCreate{
					CaseType: "v2_case_type",
					CaseName: "test case name",
					OwnerID:  "bar-user-id",
				},
			},
		},
	}
}

func TestValidateTransaction(t *testing.T) {
	require.NoError(t, ValidateTransaction(wellFormedTransaction()))
}

func TestValidateTransaction_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tx *models.CaseTransaction)
	}{
		{name: "missing transaction id", mutate: func(tx *models.CaseTransaction) { tx.TransactionID = "" }},
		{name: "malformed domain", mutate: func(tx *models.CaseTransaction) { tx.Domain = "bad domain" }},
		{name: "missing user", mutate: func(tx *models.CaseTransaction) { tx.UserID = "" }},
		{name: "zero date", mutate: func(tx *models.CaseTransaction) { tx.Date = time.Time{} }},
		{name: "no mutations", mutate: func(tx *models.CaseTransaction) { tx.Mutations = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := wellFormedTransaction()
			tt.mutate(tx)
			assert.Error(t, ValidateTransaction(tx))
		})
	}
}

func TestValidateTransaction_Mutations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *models.CaseMutation)
		wantErr bool
	}{
		{
			name:   "bare update",
			mutate: func(m *models.CaseMutation) { m.Create = nil; m.Updates = map[string]string{"dynamic": "something dynamic"} },
		},
		{
			name: "index set",
			mutate: func(m *models.CaseMutation) {
				m.IndexChanges = []models.IndexChange{{Identifier: "foo_ref", ReferencedType: "bar", ReferencedID: "some_referenced_id"}}
			},
		},
		{
			name: "index removal without referenced case",
			mutate: func(m *models.CaseMutation) {
				m.IndexChanges = []models.IndexChange{{Identifier: "foo_ref"}}
			},
		},
		{
			name:    "malformed case id",
			mutate:  func(m *models.CaseMutation) { m.CaseID = "foo case id" },
			wantErr: true,
		},
		{
			name:    "create without type",
			mutate:  func(m *models.CaseMutation) { m.Create.CaseType = "" },
			wantErr: true,
		},
		{
			name:    "create without owner",
			mutate:  func(m *models.CaseMutation) { m.Create.OwnerID = "" },
			wantErr: true,
		},
		{
			name: "index without identifier",
			mutate: func(m *models.CaseMutation) {
				m.IndexChanges = []models.IndexChange{{ReferencedType: "bar", ReferencedID: "some_referenced_id"}}
			},
			wantErr: true,
		},
		{
			name: "index referencing malformed case id",
			mutate: func(m *models.CaseMutation) {
				m.IndexChanges = []models.IndexChange{{Identifier: "foo_ref", ReferencedID: "bad ref"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := wellFormedTransaction()
			tt.mutate(&tx.Mutations[0])

			err := ValidateTransaction(tx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
