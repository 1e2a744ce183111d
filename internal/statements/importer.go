package statements

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// TransactionInserter is the slice of the transaction store the
// importer needs.
type TransactionInserter interface {
	InsertTransactions(ctx context.Context, userID, sourceURI string, txs []domain.Transaction) error
}

// Importer fetches a statement export, parses it, and writes the
// resulting transactions to the store.
type Importer struct {
	fetcher Fetcher
	store   TransactionInserter
	log     zerolog.Logger
}

// NewImporter wires a fetcher and a store into an importer.
func NewImporter(fetcher Fetcher, store TransactionInserter, log zerolog.Logger) *Importer {
	return &Importer{
		fetcher: fetcher,
		store:   store,
		log:     log,
	}
}

// ImportFromURI imports one statement export for a user and returns
// the number of transactions written.
func (i *Importer) ImportFromURI(ctx context.Context, userID, uri string) (int, error) {
	data, err := i.fetcher.Fetch(ctx, uri)
	if err != nil {
		return 0, fmt.Errorf("ImportFromURI: fetch %s: %w", uri, err)
	}

	txs, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("ImportFromURI: parse %s: %w", uri, err)
	}
	if len(txs) == 0 {
		i.log.Warn().Str("uri", uri).Msg("Statement export contained no transactions")
		return 0, nil
	}

	if err := i.store.InsertTransactions(ctx, userID, uri, txs); err != nil {
		return 0, fmt.Errorf("ImportFromURI: insert: %w", err)
	}

	i.log.Info().
		Str("user_id", userID).
		Str("uri", uri).
		Int("transactions", len(txs)).
		Msg("Statement imported")
	return len(txs), nil
}
