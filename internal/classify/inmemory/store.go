package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/classify"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// Store is an in-memory implementation of classify.Repository. It is
// safe for concurrent use. Data is lost on restart - for persistence,
// back it with a database table.
type Store struct {
	mu     sync.RWMutex
	byUser map[string]map[string]domain.MerchantClass
}

// NewStore creates an empty in-memory classification store.
func NewStore() *Store {
	return &Store{
		byUser: make(map[string]map[string]domain.MerchantClass),
	}
}

// Get implements classify.Repository.
func (s *Store) Get(ctx context.Context, userID, merchantKey string) (domain.MerchantClass, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	class, ok := s.byUser[userID][merchantKey]
	return class, ok, nil
}

// Set implements classify.Repository.
func (s *Store) Set(ctx context.Context, userID, merchantKey string, class domain.MerchantClass) error {
	if merchantKey == "" {
		return fmt.Errorf("merchant key is required")
	}
	if !domain.ValidMerchantClass(class) {
		return fmt.Errorf("unknown merchant class: %q", class)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[string]domain.MerchantClass)
	}
	s.byUser[userID][merchantKey] = class
	return nil
}

// List implements classify.Repository. The returned map is a copy.
func (s *Store) List(ctx context.Context, userID string) (map[string]domain.MerchantClass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.MerchantClass, len(s.byUser[userID]))
	for key, class := range s.byUser[userID] {
		out[key] = class
	}
	return out, nil
}

var _ classify.Repository = (*Store)(nil)
