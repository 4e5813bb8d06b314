// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/models"
)

func TestAuth_MissingHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doAnonRequest(t, h, http.MethodGet, "/ota/restore", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization")
}

func TestAuth_MalformedHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer")

	rec := doAnonRequest(t, h, http.MethodGet, "/ota/restore", header)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_EmptyToken(t *testing.T) {
	h, _ := newTestHandler(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer ")

	rec := doAnonRequest(t, h, http.MethodGet, "/ota/restore", header)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	h, _ := newTestHandler(t)

	token, err := utils.GenerateJWTToken(testIssuer, deviceUser, -time.Minute, testSignKey)
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token.SignedString)

	rec := doAnonRequest(t, h, http.MethodGet, "/ota/restore", header)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is expired")
}

func TestAuth_WrongSignKey(t *testing.T) {
	h, _ := newTestHandler(t)

	token, err := utils.GenerateJWTToken(testIssuer, deviceUser, time.Hour, "other-key")
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token.SignedString)

	rec := doAnonRequest(t, h, http.MethodGet, "/ota/restore", header)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidTokenReachesHandler(t *testing.T) {
	h, m := newTestHandler(t)

	m.restore.EXPECT().Restore(gomock.Any(), gomock.Any()).
		Return(&models.RestoreState{Payload: []byte("<OpenRosaResponse/>")}, nil)

	rec := doRequest(t, h, http.MethodGet, "/ota/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
