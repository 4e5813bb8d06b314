package http

import (
	"errors"
	"net/http"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/payload"
	"github.com/tkarimov/casesync/internal/service"
	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/models"
)

// restore serves GET /ota/restore, the device sync endpoint.
//
// Query parameters:
//
//	version         wire-format version, "1.0" or "2.0" (default "2.0")
//	since           restore token of the device's last sync; empty for an
//	                initial sync
//	state           the device's state hash; optional, validated against
//	                the prior log when present
//	overwrite_cache recompute even when a cached payload exists
//	force_cache     cache the payload of an initial sync too
//
// The response body is always an OpenRosaResponse XML document: the restore
// payload on success, an error document otherwise. A 412 tells the device
// its sync state is unrecoverable and it must request a fresh initial sync.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetRestoreUserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	version := query.Get("version")
	if version == "" {
		version = payload.V2
	}

	req := models.RestoreRequest{
		User:           user,
		Version:        version,
		SinceLogID:     query.Get("since"),
		StateHash:      query.Get("state"),
		OverwriteCache: query.Get("overwrite_cache") == "true",
		ForceCache:     query.Get("force_cache") == "true",
	}

	state, err := h.services.Restore.Restore(r.Context(), req)
	if err != nil {
		h.writeRestoreError(w, r, err)
		return
	}

	if err := utils.WriteXML(w, state.Payload, http.StatusOK); err != nil {
		log.Err(err).
			Str("func", "Handler.restore").
			Str("user_id", user.UserID).
			Msg("failed to write restore response")
	}
}

// writeRestoreError renders a restore failure as an OpenRosaResponse error
// document so the device can always parse the body.
func (h *Handler) writeRestoreError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	nature := payload.NatureError
	var badState *service.BadStateError
	if errors.As(err, &badState) {
		nature = payload.NatureBadState
	}

	log.Err(err).
		Str("func", "Handler.restore").
		Int("status", status).
		Msg("restore request failed")

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	if renderErr := payload.RenderError(w, nature, err.Error()); renderErr != nil {
		log.Err(renderErr).
			Str("func", "Handler.writeRestoreError").
			Msg("failed to render restore error document")
	}
}
