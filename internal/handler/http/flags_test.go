// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tkarimov/casesync/models"
)

func TestGetFlag_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.cleanliness.EXPECT().Flag(gomock.Any(), "test-domain", "owner-x").
		Return(&models.CleanlinessFlag{
			Domain:       "test-domain",
			OwnerID:      "owner-x",
			IsClean:      false,
			HintCaseID:   "case-b",
			LastComputed: time.Now().UTC(),
		}, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/flags/test-domain/owner-x", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var flag models.CleanlinessFlag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flag))
	assert.False(t, flag.IsClean)
	assert.Equal(t, "case-b", flag.HintCaseID)
}

func TestGetFlag_ForeignDomain(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/flags/other-domain/owner-x", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecomputeFlag_Success(t *testing.T) {
	h, m := newTestHandler(t)

	m.cleanliness.EXPECT().Recompute(gomock.Any(), "test-domain", "owner-x").
		Return(&models.CleanlinessFlag{
			Domain:       "test-domain",
			OwnerID:      "owner-x",
			IsClean:      true,
			LastComputed: time.Now().UTC(),
		}, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/flags/test-domain/owner-x/recompute", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var flag models.CleanlinessFlag
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flag))
	assert.True(t, flag.IsClean)
}
