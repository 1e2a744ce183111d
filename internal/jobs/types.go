package jobs

import (
	"context"
	"time"
)

// JobType identifies what a job does.
type JobType string

const (
	// JobTypeDispatchReminders runs detection for one user and posts
	// the due-soon reminders to their webhook.
	JobTypeDispatchReminders JobType = "dispatch_reminders"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// DispatchRemindersJob asks the worker to detect a user's recurring
// charges and deliver the reminders due within HorizonDays to
// WebhookURL.
type DispatchRemindersJob struct {
	JobID       string    `json:"job_id"`
	UserID      string    `json:"user_id"`
	HorizonDays int       `json:"horizon_days"`
	WebhookURL  string    `json:"webhook_url"`
	Status      JobStatus `json:"status"`

	// Delivered counts webhook events accepted by the endpoint; set by
	// the worker on completion.
	Delivered int `json:"delivered"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Error      string `json:"error,omitempty"`
	RetryCount int    `json:"retry_count"`
	MaxRetries int    `json:"max_retries"`
}

// Job is the generic interface over job variants.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *DispatchRemindersJob) GetID() string        { return j.JobID }
func (j *DispatchRemindersJob) GetType() JobType     { return JobTypeDispatchReminders }
func (j *DispatchRemindersJob) GetStatus() JobStatus { return j.Status }

// Publisher enqueues jobs. The abstraction allows swapping the
// in-memory queue for Cloud Tasks or Pub/Sub later.
type Publisher interface {
	PublishDispatchReminders(ctx context.Context, job *DispatchRemindersJob) error
	Close() error
}

// Consumer processes jobs from a queue.
type Consumer interface {
	// Start begins consuming; handler is called per job.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A non-nil error marks the job failed
// and eligible for retry.
type JobHandler func(ctx context.Context, job Job) error

// JobStore tracks job state for status queries.
type JobStore interface {
	SaveJob(ctx context.Context, job *DispatchRemindersJob) error
	GetJob(ctx context.Context, jobID string) (*DispatchRemindersJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*DispatchRemindersJob, error)
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	UserID string
	Status JobStatus
	Limit  int
	Offset int
}
