// SPDX-License-Identifier: Apache-2.0

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tkarimov/casesync/internal/config"
	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/mock"
	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/models"
)

const (
	testIssuer  = "casesync-test"
	testSignKey = "test-sign-key"
)

// deviceUser is the authenticated principal used across handler tests.
var deviceUser = models.RestoreUser{
	UserID:   "user-1",
	Username: "someuser",
	Domain:   "test-domain",
}

type handlerMocks struct {
	restore      *mock.MockRestoreService
	transactions *mock.MockTransactionService
	cleanliness  *mock.MockCleanlinessService
	syncLogs     *mock.MockSyncLogService
	appInfo      *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &handlerMocks{
		restore:      mock.NewMockRestoreService(ctrl),
		transactions: mock.NewMockTransactionService(ctrl),
		cleanliness:  mock.NewMockCleanlinessService(ctrl),
		syncLogs:     mock.NewMockSyncLogService(ctrl),
		appInfo:      mock.NewMockAppInfoService(ctrl),
	}

	svcs := &service.Services{
		Restore:      m.restore,
		Transactions: m.transactions,
		Cleanliness:  m.cleanliness,
		SyncLogs:     m.syncLogs,
		AppInfo:      m.appInfo,
	}

	app := config.App{
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
		Version:      "1.2.3",
	}

	return NewHandler(svcs, app, logger.Nop()), m
}

// deviceToken issues a signed token for deviceUser, valid for the test
// handler's key and issuer.
func deviceToken(t *testing.T) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, deviceUser, time.Hour, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

// doRequest runs one request through the full router, authenticated as
// deviceUser.
func doRequest(t *testing.T, h *Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+deviceToken(t))

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// doAnonRequest runs one request through the full router without
// credentials.
func doAnonRequest(t *testing.T, h *Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}
