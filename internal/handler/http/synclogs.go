package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/utils"
)

// archiveCaseResponse summarizes a sync log after a footprint shrink.
type archiveCaseResponse struct {
	SyncLogID      string `json:"sync_log_id"`
	StateHash      string `json:"state_hash"`
	OwnedCases     int    `json:"owned_cases"`
	DependentCases int    `json:"dependent_cases"`
}

// archiveCase serves POST /api/sync-logs/{syncLogID}/archive-case/{caseID}:
// it removes an archived case (and anything reachable only through it) from
// the log's tracked footprint.
func (h *Handler) archiveCase(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetRestoreUserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	syncLogID := chi.URLParam(r, "syncLogID")
	caseID := chi.URLParam(r, "caseID")

	syncLog, err := h.services.SyncLogs.Get(r.Context(), syncLogID)
	if err != nil {
		log.Err(err).
			Str("func", "Handler.archiveCase").
			Str("sync_log_id", syncLogID).
			Msg("failed to load sync log")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if syncLog.UserID != user.UserID {
		log.Err(ErrNotLogOwner).
			Str("func", "Handler.archiveCase").
			Str("sync_log_id", syncLogID).
			Send()
		http.Error(w, ErrNotLogOwner.Error(), statusFromError(ErrNotLogOwner))
		return
	}

	updated, err := h.services.SyncLogs.ArchiveCase(r.Context(), syncLogID, caseID)
	if err != nil {
		log.Err(err).
			Str("func", "Handler.archiveCase").
			Str("sync_log_id", syncLogID).
			Str("case_id", caseID).
			Msg("failed to shrink sync log footprint")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp := archiveCaseResponse{
		SyncLogID:      updated.ID,
		StateHash:      updated.StateHash,
		OwnedCases:     len(updated.OwnedCases),
		DependentCases: len(updated.DependentCases),
	}
	if err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).
			Str("func", "Handler.archiveCase").
			Msg("failed to write response")
	}
}
