package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/classify"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

// ClassificationsHandler serves user merchant classifications.
type ClassificationsHandler struct {
	repo classify.Repository
	log  zerolog.Logger
}

// NewClassificationsHandler creates a new classifications handler.
func NewClassificationsHandler(repo classify.Repository, log zerolog.Logger) *ClassificationsHandler {
	return &ClassificationsHandler{
		repo: repo,
		log:  log,
	}
}

// List handles GET /api/classifications
func (h *ClassificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	classes, err := h.repo.List(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list classifications")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list classifications")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"classifications": classes,
		"count":           len(classes),
	})
}

type classifyRequest struct {
	UserID   string `json:"user_id"`
	Merchant string `json:"merchant"`
	Class    string `json:"class"`
}

// Set handles PUT /api/classifications
func (h *ClassificationsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	key := recurring.MerchantKey(req.Merchant)
	if key == "" {
		middleware.WriteError(w, http.StatusBadRequest, "merchant is required")
		return
	}

	class := domain.MerchantClass(req.Class)
	if !domain.ValidMerchantClass(class) {
		middleware.WriteError(w, http.StatusBadRequest, "class must be essential or subscription")
		return
	}

	if err := h.repo.Set(r.Context(), req.UserID, key, class); err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Str("merchant_key", key).Msg("Failed to set classification")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to set classification")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"merchant_key": key,
		"class":        class,
	})
}
