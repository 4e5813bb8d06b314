// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doAnonRequest(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGetServerVersion(t *testing.T) {
	h, m := newTestHandler(t)

	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rec := doAnonRequest(t, h, http.MethodGet, "/api/version/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rec.Body.String())
}
