// Package statements imports bank CSV statement exports into the
// transaction store.
package statements

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// ParseCSV reads a statement export with headers:
// date,description,amount
// date: "2006-01-02"; amount: decimal string, positive for money out.
// Column order is free; extra columns are ignored.
func ParseCSV(r io.Reader) ([]domain.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := toIndex(headers)
	for _, k := range []string{"date", "description", "amount"} {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing column: %s", k)
		}
	}

	var txs []domain.Transaction
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		date, err := civil.ParseDate(strings.TrimSpace(rec[col["date"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: date parse: %w", line, err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[col["amount"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: amount parse: %w", line, err)
		}

		txs = append(txs, domain.Transaction{
			ID:       uuid.NewString(),
			Merchant: strings.TrimSpace(rec[col["description"]]),
			Amount:   amount,
			Date:     date,
		})
	}
	return txs, nil
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}
