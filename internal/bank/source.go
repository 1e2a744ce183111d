// Package bank defines the contract with the bank-data collaborator.
// The rest of the system only ever sees []domain.Transaction; where
// the rows come from (warehouse, statement import, demo data) is an
// implementation detail behind TransactionSource.
package bank

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// TransactionSource fetches a user's transactions for a date range.
// Implementations return an empty slice when there is no data for the
// range; "no results" is never an error.
type TransactionSource interface {
	FetchTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error)
}

// fallbackSource tries a primary source and falls back to a secondary
// one when the primary fails or has no data, so the UI can degrade to
// the seeded demo dataset instead of an empty dashboard.
type fallbackSource struct {
	primary  TransactionSource
	fallback TransactionSource
}

// WithFallback wraps primary so that errors and empty results are
// served from fallback instead.
func WithFallback(primary, fallback TransactionSource) TransactionSource {
	return &fallbackSource{primary: primary, fallback: fallback}
}

func (s *fallbackSource) FetchTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error) {
	txs, err := s.primary.FetchTransactions(ctx, userID, start, end)
	if err == nil && len(txs) > 0 {
		return txs, nil
	}
	return s.fallback.FetchTransactions(ctx, userID, start, end)
}
