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
)

// Seeds a user's BigQuery transaction table with the demo dataset so
// the detection endpoints have something realistic to chew on.
func main() {
	var (
		userID    = flag.String("user", "demo-user", "User ID to seed transactions for")
		projectID = flag.String("project", os.Getenv("BQ_PROJECT"), "BigQuery project ID (or set BQ_PROJECT env)")
		days      = flag.Int("days", 365, "How many days of history to generate")
	)
	flag.Parse()

	log := logger.New()

	if *projectID == "" {
		log.Fatal().Msg("-project is required")
	}
	if *days <= 0 {
		log.Fatal().Msg("-days must be positive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, err := infraBQ.NewTransactionRepository(ctx, *projectID, "USD")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create transaction repository")
	}
	defer repo.Close()

	end := civil.DateOf(time.Now())
	start := end.AddDays(-*days)

	txs, err := bank.NewDemoSource().FetchTransactions(ctx, *userID, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate demo transactions")
	}

	if err := repo.InsertTransactions(ctx, *userID, "seed://demo", txs); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert transactions")
	}

	log.Info().
		Str("user_id", *userID).
		Int("transactions", len(txs)).
		Str("start", start.String()).
		Str("end", end.String()).
		Msg("Seed complete")
}
