package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs"
)

// DispatchHandler accepts reminder-dispatch requests and enqueues them
// as background jobs.
type DispatchHandler struct {
	publisher  jobs.Publisher
	store      jobs.JobStore
	webhookURL string
	log        zerolog.Logger
}

// NewDispatchHandler creates the handler. webhookURL is the default
// delivery endpoint when the request does not carry one.
func NewDispatchHandler(publisher jobs.Publisher, store jobs.JobStore, webhookURL string, log zerolog.Logger) *DispatchHandler {
	return &DispatchHandler{
		publisher:  publisher,
		store:      store,
		webhookURL: webhookURL,
		log:        log,
	}
}

type dispatchRequest struct {
	UserID      string `json:"user_id"`
	HorizonDays int    `json:"horizon_days"`
	WebhookURL  string `json:"webhook_url"`
}

// Dispatch handles POST /api/reminders/dispatch
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.HorizonDays < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "horizon_days must be non-negative")
		return
	}
	if req.HorizonDays == 0 {
		req.HorizonDays = defaultHorizonDays
	}
	if req.WebhookURL == "" {
		req.WebhookURL = h.webhookURL
	}
	if req.WebhookURL == "" {
		middleware.WriteError(w, http.StatusBadRequest, "webhook_url is required, no default configured")
		return
	}

	job := &jobs.DispatchRemindersJob{
		JobID:       uuid.NewString(),
		UserID:      req.UserID,
		HorizonDays: req.HorizonDays,
		WebhookURL:  req.WebhookURL,
		Status:      jobs.JobStatusPending,
		CreatedAt:   time.Now(),
		MaxRetries:  3,
	}

	if err := h.store.SaveJob(r.Context(), job); err != nil {
		h.log.Error().Err(err).Str("job_id", job.JobID).Msg("Failed to save job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	if err := h.publisher.PublishDispatchReminders(r.Context(), job); err != nil {
		h.log.Error().Err(err).Str("job_id", job.JobID).Msg("Failed to enqueue job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue job")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("user_id", req.UserID).
		Int("horizon_days", req.HorizonDays).
		Msg("Dispatch job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.JobID,
		"status": job.Status,
	})
}
