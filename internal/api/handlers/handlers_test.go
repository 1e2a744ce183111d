package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	classifymem "github.com/benjaminfrostllc/credit-wizard-sub001/internal/classify/inmemory"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs"
	jobsmem "github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs/inmemory"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/logger"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

func TestListTransactionsRequiresUserID(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestListTransactionsDemoData(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?user_id=demo-user", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var txs []map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&txs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(txs) == 0 {
		t.Error("Expected demo transactions, got none")
	}
}

func TestListTransactionsRejectsBadDate(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?user_id=u1&start_date=01-02-2026", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad date, got %d", rec.Code)
	}
}

func TestListRecurringDetectsDemoSeries(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/recurring?user_id=demo-user", nil)
	rec := httptest.NewRecorder()
	h.ListRecurring(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Error("Expected recurring series from demo data, got none")
	}
}

func TestListRemindersWithinHorizon(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/reminders?user_id=demo-user&horizon_days=7", nil)
	rec := httptest.NewRecorder()
	h.ListReminders(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Error("Expected reminders within a 7-day horizon of demo data, got none")
	}
}

func TestListRemindersRejectsNegativeHorizon(t *testing.T) {
	h := NewRecurringHandler(bank.NewDemoSource(), recurring.DefaultConfig(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/reminders?user_id=u1&horizon_days=-3", nil)
	rec := httptest.NewRecorder()
	h.ListReminders(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

type capturingPublisher struct {
	published []*jobs.DispatchRemindersJob
}

func (p *capturingPublisher) PublishDispatchReminders(ctx context.Context, job *jobs.DispatchRemindersJob) error {
	p.published = append(p.published, job)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestDispatchEnqueuesJob(t *testing.T) {
	store := jobsmem.NewStore()
	pub := &capturingPublisher{}
	h := NewDispatchHandler(pub, store, "https://hooks.example.com/reminders", logger.New())

	body := strings.NewReader(`{"user_id": "u1", "horizon_days": 5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/dispatch", body)
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(pub.published) != 1 {
		t.Fatalf("Expected 1 published job, got %d", len(pub.published))
	}

	job := pub.published[0]
	if job.UserID != "u1" {
		t.Errorf("Expected user u1, got %s", job.UserID)
	}
	if job.HorizonDays != 5 {
		t.Errorf("Expected horizon 5, got %d", job.HorizonDays)
	}
	if job.WebhookURL != "https://hooks.example.com/reminders" {
		t.Errorf("Expected default webhook URL, got %s", job.WebhookURL)
	}

	saved, err := store.GetJob(context.Background(), job.JobID)
	if err != nil {
		t.Fatalf("Expected job persisted, got error: %v", err)
	}
	if saved.Status != jobs.JobStatusPending {
		t.Errorf("Expected pending status, got %s", saved.Status)
	}
}

func TestDispatchRequiresWebhookURL(t *testing.T) {
	h := NewDispatchHandler(&capturingPublisher{}, jobsmem.NewStore(), "", logger.New())

	body := strings.NewReader(`{"user_id": "u1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reminders/dispatch", body)
	rec := httptest.NewRecorder()
	h.Dispatch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without a webhook URL, got %d", rec.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	h := NewJobsHandler(jobsmem.NewStore(), logger.New())

	r := chi.NewRouter()
	r.Get("/api/jobs/{jobID}", h.GetJob)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestListJobsFiltersByUser(t *testing.T) {
	store := jobsmem.NewStore()
	ctx := context.Background()
	for i, user := range []string{"u1", "u1", "u2"} {
		job := &jobs.DispatchRemindersJob{
			JobID:     "job-" + string(rune('a'+i)),
			UserID:    user,
			Status:    jobs.JobStatusCompleted,
			CreatedAt: time.Now(),
		}
		if err := store.SaveJob(ctx, job); err != nil {
			t.Fatalf("Failed to save job: %v", err)
		}
	}

	h := NewJobsHandler(store, logger.New())
	req := httptest.NewRequest(http.MethodGet, "/api/jobs?user_id=u1", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("Expected 2 jobs for u1, got %d", resp.Count)
	}
}

func TestClassificationsRoundTrip(t *testing.T) {
	repo := classifymem.NewStore()
	h := NewClassificationsHandler(repo, logger.New())

	body := strings.NewReader(`{"user_id": "u1", "merchant": "NETFLIX.COM", "class": "subscription"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/classifications", body)
	rec := httptest.NewRecorder()
	h.Set(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var setResp struct {
		MerchantKey string `json:"merchant_key"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&setResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if setResp.MerchantKey != "netflix" {
		t.Errorf("Expected normalized key netflix, got %q", setResp.MerchantKey)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/classifications?user_id=u1", nil)
	rec = httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var listResp struct {
		Classifications map[string]string `json:"classifications"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if listResp.Classifications["netflix"] != "subscription" {
		t.Errorf("Expected netflix classified as subscription, got %v", listResp.Classifications)
	}
}

func TestClassificationsRejectsUnknownClass(t *testing.T) {
	h := NewClassificationsHandler(classifymem.NewStore(), logger.New())

	body := strings.NewReader(`{"user_id": "u1", "merchant": "Netflix", "class": "luxury"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/classifications", body)
	rec := httptest.NewRecorder()
	h.Set(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown class, got %d", rec.Code)
	}
}

func TestInsightsSummary(t *testing.T) {
	h := NewInsightsHandler(bank.NewDemoSource(), classifymem.NewStore(), logger.New())

	req := httptest.NewRequest(http.MethodGet, "/api/insights?user_id=demo-user", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Error("Expected monthly summaries from demo data, got none")
	}
}

func TestStatementsImportNotConfigured(t *testing.T) {
	h := NewStatementsHandler(nil, logger.New())

	body := strings.NewReader(`{"user_id": "u1", "gcs_uri": "gs://b/o.csv"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/statements/import", body)
	rec := httptest.NewRecorder()
	h.Import(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 when import is unconfigured, got %d", rec.Code)
	}
}
