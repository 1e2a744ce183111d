package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/handlers"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/api/middleware"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/assistant"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	classifymem "github.com/benjaminfrostllc/credit-wizard-sub001/internal/classify/inmemory"
	infraBQ "github.com/benjaminfrostllc/credit-wizard-sub001/internal/infra/bigquery"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs"
	jobsmem "github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs/inmemory"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/logger"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/statements"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/webhook"
)

func main() {
	// Parse command-line flags
	var (
		port       = flag.String("port", "8080", "HTTP server port")
		projectID  = flag.String("project", os.Getenv("BQ_PROJECT"), "BigQuery project ID (or set BQ_PROJECT env)")
		webhookURL = flag.String("webhook", os.Getenv("WEBHOOK_URL"), "Default reminder webhook URL (or set WEBHOOK_URL env)")
		model      = flag.String("model", os.Getenv("GENAI_MODEL"), "Gemini model for the chat assistant (or set GENAI_MODEL env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	ctx := context.Background()
	cfg := recurring.DefaultConfig()

	// Transaction source: BigQuery when configured, demo data otherwise.
	// With BigQuery configured, demo data still backstops empty accounts.
	var source bank.TransactionSource = bank.NewDemoSource()
	var repo *infraBQ.TransactionRepository
	if *projectID == "" {
		log.Warn().Msg("No BigQuery project configured - serving demo transactions only")
	} else {
		var err error
		repo, err = infraBQ.NewTransactionRepository(ctx, *projectID, "USD")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create transaction repository")
		}
		defer repo.Close()
		source = bank.WithFallback(repo, bank.NewDemoSource())
	}

	if *webhookURL == "" {
		log.Warn().Msg("No webhook URL configured - dispatch requests must carry their own")
	}

	classRepo := classifymem.NewStore()

	// Initialize job infrastructure
	jobStore := jobsmem.NewStore()
	jobQueue := jobsmem.NewQueue(100, 2, jobStore)

	// Start worker in background to process jobs
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// Job handler: detect the user's recurring charges and deliver
	// due-soon reminders to the job's webhook.
	jobHandler := func(ctx context.Context, job jobs.Job) error {
		dispatchJob, ok := job.(*jobs.DispatchRemindersJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", dispatchJob.JobID).
			Str("user_id", dispatchJob.UserID).
			Int("horizon_days", dispatchJob.HorizonDays).
			Msg("Processing dispatch job")

		today := civil.DateOf(time.Now())
		txs, err := source.FetchTransactions(ctx, dispatchJob.UserID, today.AddDays(-365), today)
		if err != nil {
			return fmt.Errorf("fetching transactions: %w", err)
		}

		series := recurring.Detect(txs, cfg)
		reminders := recurring.BuildReminders(series, today, dispatchJob.HorizonDays)

		dispatcher := webhook.NewDispatcher(dispatchJob.WebhookURL, log)
		delivered := 0
		for _, reminder := range reminders {
			result := dispatcher.Send(ctx, webhook.ReminderDue{
				UserID:   dispatchJob.UserID,
				Reminder: reminder,
			})
			if result.Success {
				delivered++
			} else {
				log.Warn().
					Str("job_id", dispatchJob.JobID).
					Str("merchant", reminder.Merchant).
					Str("error", result.Error).
					Msg("Reminder delivery failed")
			}
		}
		dispatchJob.Delivered = delivered

		log.Info().
			Str("job_id", dispatchJob.JobID).
			Int("reminders", len(reminders)).
			Int("delivered", delivered).
			Msg("Dispatch job completed")

		if delivered < len(reminders) {
			return fmt.Errorf("delivered %d of %d reminders", delivered, len(reminders))
		}
		return nil
	}

	// Start job consumer in background
	go func() {
		log.Info().Msg("Starting job worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	recurringHandler := handlers.NewRecurringHandler(source, cfg, log)
	dispatchHandler := handlers.NewDispatchHandler(jobQueue, jobStore, *webhookURL, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)
	classificationsHandler := handlers.NewClassificationsHandler(classRepo, log)
	insightsHandler := handlers.NewInsightsHandler(source, classRepo, log)
	chatHandler := handlers.NewChatHandler(assistant.New(*model, log), source, cfg, log)

	var statementsHandler *handlers.StatementsHandler
	if repo != nil {
		importer := statements.NewImporter(statements.NewGCSFetcher(), repo, log)
		statementsHandler = handlers.NewStatementsHandler(importer, log)
	} else {
		statementsHandler = handlers.NewStatementsHandler(nil, log)
	}

	// Create router
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/transactions", recurringHandler.ListTransactions)
		r.Get("/recurring", recurringHandler.ListRecurring)
		r.Get("/reminders", recurringHandler.ListReminders)
		r.Post("/reminders/dispatch", dispatchHandler.Dispatch)

		r.Get("/jobs", jobsHandler.ListJobs)
		r.Get("/jobs/{jobID}", jobsHandler.GetJob)

		r.Get("/classifications", classificationsHandler.List)
		r.Put("/classifications", classificationsHandler.Set)

		r.Get("/insights", insightsHandler.Summary)
		r.Post("/chat", chatHandler.Chat)
		r.Post("/statements/import", statementsHandler.Import)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.Auth(r),
				),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Cancel worker context
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Server exited")
}
