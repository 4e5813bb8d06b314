package http

import (
	"errors"
	"net/http"

	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:            http.StatusBadRequest,
	service.ErrUnsupportedVersion:    http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusBadRequest,
	service.ErrRestoreTimeout:        http.StatusServiceUnavailable,

	ErrDomainMismatch: http.StatusForbidden,
	ErrNotLogOwner:    http.StatusForbidden,

	store.ErrCaseNotFound:    http.StatusNotFound,
	store.ErrSyncLogNotFound: http.StatusNotFound,
	store.ErrFlagNotFound:    http.StatusNotFound,
	store.ErrSyncLogNotSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

// statusFromError maps a service or store error to an HTTP status code. The
// two typed restore failures map to 412 Precondition Failed: the device's
// sync state is the violated precondition, and 412 tells it to start a
// fresh initial sync.
func statusFromError(err error) int {
	var badState *service.BadStateError
	if errors.As(err, &badState) {
		return http.StatusPreconditionFailed
	}
	var restoreErr *service.RestoreError
	if errors.As(err, &restoreErr) {
		return http.StatusPreconditionFailed
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
