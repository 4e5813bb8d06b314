package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/utils"
)

// getFlag serves GET /api/flags/{domain}/{ownerID}: the current
// cleanliness flag of one owner, computed on first access.
func (h *Handler) getFlag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	domain, ownerID, ok := h.flagParams(w, r)
	if !ok {
		return
	}

	flag, err := h.services.Cleanliness.Flag(r.Context(), domain, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "Handler.getFlag").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Msg("failed to load cleanliness flag")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err := utils.WriteJSON(w, flag, http.StatusOK); err != nil {
		log.Err(err).
			Str("func", "Handler.getFlag").
			Msg("failed to write response")
	}
}

// recomputeFlag serves POST /api/flags/{domain}/{ownerID}/recompute: a
// forced full recompute, bypassing the sampling probability.
func (h *Handler) recomputeFlag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	domain, ownerID, ok := h.flagParams(w, r)
	if !ok {
		return
	}

	flag, err := h.services.Cleanliness.Recompute(r.Context(), domain, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "Handler.recomputeFlag").
			Str("domain", domain).
			Str("owner_id", ownerID).
			Msg("failed to recompute cleanliness flag")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if err := utils.WriteJSON(w, flag, http.StatusOK); err != nil {
		log.Err(err).
			Str("func", "Handler.recomputeFlag").
			Msg("failed to write response")
	}
}

// flagParams extracts and authorizes the flag route parameters: the domain
// must be the authenticated principal's own.
func (h *Handler) flagParams(w http.ResponseWriter, r *http.Request) (domain, ownerID string, ok bool) {
	user, authed := utils.GetRestoreUserFromContext(r.Context())
	if !authed {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", "", false
	}

	domain = chi.URLParam(r, "domain")
	ownerID = chi.URLParam(r, "ownerID")

	if domain != user.Domain {
		http.Error(w, ErrDomainMismatch.Error(), statusFromError(ErrDomainMismatch))
		return "", "", false
	}

	return domain, ownerID, true
}
