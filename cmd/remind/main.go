package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cloud.google.com/go/civil"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	infraBQ "github.com/benjaminfrostllc/credit-wizard-sub001/internal/infra/bigquery"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/logger"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/webhook"
)

// One-shot reminder dispatch: detect a user's recurring charges and
// post the reminders due within the horizon to their webhook. Suited to
// a daily cron or Cloud Scheduler trigger.
func main() {
	var (
		userID     = flag.String("user", "", "User ID to dispatch reminders for (required)")
		horizon    = flag.Int("horizon", 7, "Reminder horizon in days")
		webhookURL = flag.String("webhook", os.Getenv("WEBHOOK_URL"), "Webhook URL to deliver reminders to (or set WEBHOOK_URL env)")
		projectID  = flag.String("project", os.Getenv("BQ_PROJECT"), "BigQuery project ID (or set BQ_PROJECT env)")
	)
	flag.Parse()

	log := logger.New()

	if *userID == "" {
		log.Fatal().Msg("-user is required")
	}
	if *webhookURL == "" {
		log.Fatal().Msg("-webhook is required")
	}
	if *horizon < 0 {
		log.Fatal().Msg("-horizon must be non-negative")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var source bank.TransactionSource = bank.NewDemoSource()
	if *projectID == "" {
		log.Warn().Msg("No BigQuery project configured - using demo transactions")
	} else {
		repo, err := infraBQ.NewTransactionRepository(ctx, *projectID, "USD")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create transaction repository")
		}
		defer repo.Close()
		source = bank.WithFallback(repo, bank.NewDemoSource())
	}

	today := civil.DateOf(time.Now())
	txs, err := source.FetchTransactions(ctx, *userID, today.AddDays(-365), today)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch transactions")
	}

	series := recurring.Detect(txs, recurring.DefaultConfig())
	reminders := recurring.BuildReminders(series, today, *horizon)

	log.Info().
		Str("user_id", *userID).
		Int("transactions", len(txs)).
		Int("series", len(series)).
		Int("reminders", len(reminders)).
		Msg("Detection complete")

	if len(reminders) == 0 {
		log.Info().Msg("Nothing due within horizon")
		return
	}

	dispatcher := webhook.NewDispatcher(*webhookURL, log)
	failed := 0
	for _, reminder := range reminders {
		result := dispatcher.Send(ctx, webhook.ReminderDue{
			UserID:   *userID,
			Reminder: reminder,
		})
		if result.Success {
			log.Info().
				Str("merchant", reminder.Merchant).
				Str("due_date", reminder.DueDate.String()).
				Int("days_until_due", reminder.DaysUntilDue).
				Msg("Reminder delivered")
		} else {
			failed++
			log.Error().
				Str("merchant", reminder.Merchant).
				Str("error", result.Error).
				Msg("Reminder delivery failed")
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Int("total", len(reminders)).Msg("Some reminders were not delivered")
	}
	log.Info().Int("delivered", len(reminders)).Msg("All reminders delivered")
}
