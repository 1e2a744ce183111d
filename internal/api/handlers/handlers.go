package handlers

import (
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

// defaultHorizonDays is the reminder window used when the request does
// not specify one.
const defaultHorizonDays = 7

// dateRange reads start_date/end_date query parameters, defaulting to
// the trailing year ending today.
func dateRange(r *http.Request) (start, end civil.Date, err error) {
	query := r.URL.Query()
	today := civil.DateOf(time.Now())

	end = today
	if s := query.Get("end_date"); s != "" {
		end, err = civil.ParseDate(s)
		if err != nil {
			return civil.Date{}, civil.Date{}, err
		}
	}

	start = end.AddDays(-365)
	if s := query.Get("start_date"); s != "" {
		start, err = civil.ParseDate(s)
		if err != nil {
			return civil.Date{}, civil.Date{}, err
		}
	}
	return start, end, nil
}

// RecurringHandler serves transactions, detected series, and reminders.
type RecurringHandler struct {
	source bank.TransactionSource
	cfg    recurring.Config
	log    zerolog.Logger
}

// NewRecurringHandler creates the handler over a transaction source.
func NewRecurringHandler(source bank.TransactionSource, cfg recurring.Config, log zerolog.Logger) *RecurringHandler {
	return &RecurringHandler{
		source: source,
		cfg:    cfg,
		log:    log,
	}
}

// ListTransactions handles GET /api/transactions
func (h *RecurringHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
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

	if txs == nil {
		txs = []domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, txs)
}

// ListRecurring handles GET /api/recurring
func (h *RecurringHandler) ListRecurring(w http.ResponseWriter, r *http.Request) {
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

	series := recurring.Detect(txs, h.cfg)
	if series == nil {
		series = []domain.RecurringSeries{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"series": series,
		"count":  len(series),
	})
}

// ListReminders handles GET /api/reminders
func (h *RecurringHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	horizon := defaultHorizonDays
	if s := r.URL.Query().Get("horizon_days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "horizon_days must be a non-negative integer")
			return
		}
		horizon = v
	}

	today := civil.DateOf(time.Now())
	txs, err := h.source.FetchTransactions(r.Context(), userID, today.AddDays(-365), today)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	series := recurring.Detect(txs, h.cfg)
	reminders := recurring.BuildReminders(series, today, horizon)
	if reminders == nil {
		reminders = []domain.ReminderEvent{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reminders": reminders,
		"count":     len(reminders),
	})
}

// JobsHandler serves reminder-dispatch job status.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{jobID}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		UserID: query.Get("user_id"),
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
