package http

import (
	"encoding/json"
	"net/http"

	"github.com/tkarimov/casesync/internal/logger"
	"github.com/tkarimov/casesync/internal/utils"
	"github.com/tkarimov/casesync/models"
)

// applyTransactionResponse is the body returned after a transaction commit.
type applyTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Checkpoint    int64  `json:"checkpoint"`
}

// applyTransaction serves POST /api/case-transactions: the intake from the
// form-submission pipeline. The body is one JSON-encoded case transaction,
// applied atomically.
func (h *Handler) applyTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetRestoreUserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var tx models.CaseTransaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		log.Err(err).
			Str("func", "Handler.applyTransaction").
			Msg("failed to decode case transaction body")
		http.Error(w, "invalid transaction body", http.StatusBadRequest)
		return
	}

	// The submitting principal decides the identity fields; the body may
	// not impersonate another user or domain.
	if tx.UserID == "" {
		tx.UserID = user.UserID
	}
	if tx.Domain != user.Domain {
		log.Err(ErrDomainMismatch).
			Str("func", "Handler.applyTransaction").
			Str("domain", tx.Domain).
			Send()
		http.Error(w, ErrDomainMismatch.Error(), statusFromError(ErrDomainMismatch))
		return
	}

	checkpoint, err := h.services.Transactions.Apply(r.Context(), &tx)
	if err != nil {
		log.Err(err).
			Str("func", "Handler.applyTransaction").
			Str("transaction_id", tx.TransactionID).
			Msg("failed to apply case transaction")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp := applyTransactionResponse{
		TransactionID: tx.TransactionID,
		Checkpoint:    checkpoint,
	}
	if err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).
			Str("func", "Handler.applyTransaction").
			Msg("failed to write response")
	}
}
