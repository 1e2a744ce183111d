package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/assistant"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

// ChatHandler answers free-form questions about a user's recurring
// charges through the model assistant.
type ChatHandler struct {
	assistant *assistant.Assistant
	source    bank.TransactionSource
	cfg       recurring.Config
	log       zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(a *assistant.Assistant, source bank.TransactionSource, cfg recurring.Config, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: a,
		source:    source,
		cfg:       cfg,
		log:       log,
	}
}

type chatRequest struct {
	UserID string `json:"user_id"`
	Prompt string `json:"prompt"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		middleware.WriteError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	// Series context is optional; without a user the model answers from
	// the prompt alone.
	var series []domain.RecurringSeries
	if req.UserID != "" {
		today := civil.DateOf(time.Now())
		txs, err := h.source.FetchTransactions(r.Context(), req.UserID, today.AddDays(-365), today)
		if err != nil {
			h.log.Warn().Err(err).Str("user_id", req.UserID).Msg("Chat proceeding without transaction context")
		} else {
			series = recurring.Detect(txs, h.cfg)
		}
	}

	answer, err := h.assistant.Ask(r.Context(), req.Prompt, series)
	if err != nil {
		h.log.Error().Err(err).Msg("Assistant request failed")
		middleware.WriteError(w, http.StatusBadGateway, "Assistant request failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"answer": answer,
	})
}
