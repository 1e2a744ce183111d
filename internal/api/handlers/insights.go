package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/classify"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/insights"
)

// InsightsHandler serves monthly spend summaries.
type InsightsHandler struct {
	source  bank.TransactionSource
	classes classify.Repository
	log     zerolog.Logger
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(source bank.TransactionSource, classes classify.Repository, log zerolog.Logger) *InsightsHandler {
	return &InsightsHandler{
		source:  source,
		classes: classes,
		log:     log,
	}
}

// Summary handles GET /api/insights
func (h *InsightsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	start, end, err := dateRange(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid date format, want YYYY-MM-DD")
		return
	}

	txs, err := h.source.FetchTransactions(r.Context(), userID, start, end)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	classes, err := h.classes.List(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list classifications")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list classifications")
		return
	}

	summaries := insights.Summarize(txs, classes)
	if summaries == nil {
		summaries = []insights.MonthlySummary{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"months": summaries,
		"count":  len(summaries),
	})
}
