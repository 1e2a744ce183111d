package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/bank"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

// TransactionRepository is the BigQuery-backed transaction store. It
// holds a shared client to avoid creating a new connection per
// operation and implements bank.TransactionSource for reads.
type TransactionRepository struct {
	client   *bigquery.Client
	currency string
}

// NewTransactionRepository creates a repository against the given GCP
// project. currency is stamped onto inserted rows (e.g. "USD").
func NewTransactionRepository(ctx context.Context, projectID, currency string) (*TransactionRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewTransactionRepository: creating client: %w", err)
	}
	return &TransactionRepository{
		client:   client,
		currency: currency,
	}, nil
}

// Close releases the underlying client. Call when the repository is no
// longer needed.
func (r *TransactionRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// FetchTransactions implements bank.TransactionSource. An empty range
// yields an empty slice, never an error.
func (r *TransactionRepository) FetchTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error) {
	rows, err := QueryTransactionsWithClient(ctx, r.client, userID, start, end)
	if err != nil {
		return nil, err
	}

	txs := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, row.ToDomain())
	}
	return txs, nil
}

// InsertTransactions writes a batch of imported transactions for a
// user, stamping IDs where missing and the normalized merchant key on
// every row. sourceURI records where the batch came from.
func (r *TransactionRepository) InsertTransactions(ctx context.Context, userID, sourceURI string, txs []domain.Transaction) error {
	now := time.Now()
	rows := make([]*TransactionRow, 0, len(txs))
	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		rows = append(rows, rowFromDomain(userID, r.currency, sourceURI, recurring.MerchantKey(tx.Merchant), tx, now))
	}
	return InsertTransactionsWithClient(ctx, r.client, rows)
}

var _ bank.TransactionSource = (*TransactionRepository)(nil)
