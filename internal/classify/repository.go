// Package classify holds the user-editable merchant classification
// (essential vs subscription). The store is an explicit repository
// injected into the presentation layer; detection never reads or
// writes it.
package classify

import (
	"context"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// Repository defines the key-value contract for merchant
// classifications, keyed by user and normalized merchant key.
type Repository interface {
	// Get returns the classification for a merchant key. ok is false
	// when the user has not classified the merchant.
	Get(ctx context.Context, userID, merchantKey string) (class domain.MerchantClass, ok bool, err error)

	// Set stores or replaces the classification for a merchant key.
	Set(ctx context.Context, userID, merchantKey string, class domain.MerchantClass) error

	// List returns all classifications for a user, keyed by merchant key.
	List(ctx context.Context, userID string) (map[string]domain.MerchantClass, error)
}
