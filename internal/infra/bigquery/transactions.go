package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// TransactionRow is the finance.transactions table schema. Amounts are
// NUMERIC, so *big.Rat at this boundary; the domain works in decimals.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	UserID string `bigquery:"user_id"` // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"` // REQUIRED STRING

	Merchant    string              `bigquery:"merchant"`     // REQUIRED STRING; raw label
	MerchantKey bigquery.NullString `bigquery:"merchant_key"` // NULLABLE; normalized grouping key

	SourceURI bigquery.NullString `bigquery:"source_uri"` // NULLABLE; gs:// URI of the imported statement

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}

// ToDomain converts a row into the domain transaction the detector
// consumes. NUMERIC comes back with two decimal places.
func (r *TransactionRow) ToDomain() domain.Transaction {
	amount := decimal.Zero
	if r.Amount != nil {
		amount = decimal.NewFromBigRat(r.Amount, 2)
	}
	return domain.Transaction{
		ID:       r.TransactionID,
		Merchant: r.Merchant,
		Amount:   amount,
		Date:     r.TransactionDate,
	}
}

// rowFromDomain maps a domain transaction onto the table schema.
func rowFromDomain(userID, currency, sourceURI, merchantKey string, tx domain.Transaction, now time.Time) *TransactionRow {
	row := &TransactionRow{
		TransactionID:   tx.ID,
		UserID:          userID,
		TransactionDate: tx.Date,
		Amount:          tx.Amount.Rat(),
		Currency:        currency,
		Merchant:        tx.Merchant,
		CreatedTS:       now,
	}
	if merchantKey != "" {
		row.MerchantKey = bigquery.NullString{StringVal: merchantKey, Valid: true}
	}
	if sourceURI != "" {
		row.SourceURI = bigquery.NullString{StringVal: sourceURI, Valid: true}
	}
	return row
}
