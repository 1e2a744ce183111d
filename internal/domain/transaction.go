package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction represents one charge fetched from the bank-data source.
// Amounts are charge magnitudes: positive values are money going out.
// Transactions are immutable once fetched; the detection core only
// reads them and never writes them back.
type Transaction struct {
	ID       string          `json:"id"`
	Merchant string          `json:"merchant"` // raw label as reported by the bank; may be empty
	Amount   decimal.Decimal `json:"amount"`
	Date     civil.Date      `json:"date"`
}
