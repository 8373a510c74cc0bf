// Package jobs defines the asynchronous work model for statement parsing.
// The queue abstraction keeps the API server decoupled from how jobs are
// executed; the in-memory implementation in jobs/inmemory suits
// single-instance deployments, and a hosted queue can replace it without
// touching publishers or handlers.
package jobs

import (
	"context"
	"time"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRetrying  Status = "retrying"
)

// ParseStatementJob asks a worker to run the ingestion pipeline for one
// uploaded statement.
type ParseStatementJob struct {
	JobID        string `json:"job_id"`
	StatementID  string `json:"statement_id"`
	GCSURI       string `json:"gcs_uri"`
	ParsingRunID string `json:"parsing_run_id,omitempty"`

	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Handler processes one job. A returned error marks the attempt failed and
// triggers a retry while attempts remain.
type Handler func(ctx context.Context, job *ParseStatementJob) error

// Publisher enqueues statement-parse jobs.
type Publisher interface {
	Publish(ctx context.Context, job *ParseStatementJob) error
	Close() error
}

// Consumer pulls jobs and runs them through a Handler.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Store tracks job state so clients can poll progress.
type Store interface {
	SaveJob(ctx context.Context, job *ParseStatementJob) error
	GetJob(ctx context.Context, jobID string) (*ParseStatementJob, error)
	ListJobs(ctx context.Context, filter Filter) ([]*ParseStatementJob, error)
}

// Filter narrows ListJobs results.
type Filter struct {
	StatementID string
	Status      Status
	Limit       int
	Offset      int
}
