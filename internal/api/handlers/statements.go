package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/statements"
)

// StatementsHandler imports CSV statements from Cloud Storage.
type StatementsHandler struct {
	importer *statements.Importer
	log      zerolog.Logger
}

// NewStatementsHandler creates a new statements handler.
func NewStatementsHandler(importer *statements.Importer, log zerolog.Logger) *StatementsHandler {
	return &StatementsHandler{
		importer: importer,
		log:      log,
	}
}

type importRequest struct {
	UserID string `json:"user_id"`
	GCSURI string `json:"gcs_uri"`
}

// Import handles POST /api/statements/import
func (h *StatementsHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.importer == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Statement import is not configured")
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.GCSURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "gcs_uri is required")
		return
	}

	count, err := h.importer.ImportFromURI(r.Context(), req.UserID, req.GCSURI)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Str("gcs_uri", req.GCSURI).Msg("Statement import failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Statement import failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported": count,
	})
}
