package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/jobs"
)

// Store is an in-memory JobStore. Safe for concurrent use; state is
// lost on restart.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.DispatchRemindersJob
}

// NewStore creates an empty in-memory job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*jobs.DispatchRemindersJob),
	}
}

// SaveJob saves or updates a job. A copy is stored so later mutation
// by the caller does not leak in.
func (s *Store) SaveJob(ctx context.Context, job *jobs.DispatchRemindersJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*jobs.DispatchRemindersJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// ListJobs retrieves jobs matching the filter, newest first.
func (s *Store) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]*jobs.DispatchRemindersJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*jobs.DispatchRemindersJob
	for _, job := range s.jobs {
		if filter.UserID != "" && job.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*jobs.DispatchRemindersJob{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

var _ jobs.JobStore = (*Store)(nil)
