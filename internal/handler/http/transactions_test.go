// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/models"
)

func transactionBody(t *testing.T, tx models.CaseTransaction) string {
	t.Helper()

	b, err := json.Marshal(tx)
	require.NoError(t, err)
	return string(b)
}

func validTransaction() models.CaseTransaction {
	return models.CaseTransaction{
		TransactionID: "tx-1",
		Domain:        "test-domain",
		Date:          time.Date(2011, 12, 6, 13, 42, 50, 0, time.UTC),
		Mutations: []models.CaseMutation{
			{
				CaseID: "foo-case-id",
				Create: &models.CaseCreate{CaseType: "v2_case_type", CaseName: "test case name", OwnerID: "bar-user-id"},
			},
		},
	}
}

func TestApplyTransaction_Success(t *testing.T) {
	h, m := newTestHandler(t)

	var got *models.CaseTransaction
	m.transactions.EXPECT().Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.CaseTransaction) (int64, error) {
			got = tx
			return 42, nil
		})

	rec := doRequest(t, h, http.MethodPost, "/api/case-transactions",
		strings.NewReader(transactionBody(t, validTransaction())))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp applyTransactionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tx-1", resp.TransactionID)
	assert.EqualValues(t, 42, resp.Checkpoint)

	// The body carried no user ID, so the authenticated principal fills
	// it in.
	require.NotNil(t, got)
	assert.Equal(t, deviceUser.UserID, got.UserID)
}

func TestApplyTransaction_InvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/case-transactions",
		strings.NewReader("not json"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyTransaction_DomainMismatch(t *testing.T) {
	h, _ := newTestHandler(t)

	tx := validTransaction()
	tx.Domain = "other-domain"

	rec := doRequest(t, h, http.MethodPost, "/api/case-transactions",
		strings.NewReader(transactionBody(t, tx)))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApplyTransaction_ValidationFailure(t *testing.T) {
	h, m := newTestHandler(t)

	m.transactions.EXPECT().Apply(gomock.Any(), gomock.Any()).
		Return(int64(0), service.ErrValidation)

	rec := doRequest(t, h, http.MethodPost, "/api/case-transactions",
		strings.NewReader(transactionBody(t, validTransaction())))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
