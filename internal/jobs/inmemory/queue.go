// Package inmemory implements the jobs queue and store on top of Go
// channels and maps. State is lost on restart; acceptable for a
// single-instance deployment and for tests.
package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adityamisra/sip-planner/internal/jobs"
	"github.com/google/uuid"
)

const defaultMaxRetries = 3

// Queue is a channel-backed job queue safe for concurrent use. It is both
// the Publisher and the Consumer side.
type Queue struct {
	jobCh      chan *jobs.ParseStatementJob
	closeCh    chan struct{}
	store      jobs.Store
	workers    int
	retryDelay time.Duration

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue holding up to bufferSize pending jobs and running
// workers concurrent handlers. The store, when non-nil, mirrors every status
// change.
func NewQueue(bufferSize, workers int, store jobs.Store) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		jobCh:      make(chan *jobs.ParseStatementJob, bufferSize),
		closeCh:    make(chan struct{}),
		store:      store,
		workers:    workers,
		retryDelay: time.Second,
	}
}

// Publish enqueues a job, filling in identity and bookkeeping defaults.
func (q *Queue) Publish(ctx context.Context, job *jobs.ParseStatementJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = jobs.StatusPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if job.MaxRetries == 0 {
		job.MaxRetries = defaultMaxRetries
	}

	if q.store != nil {
		if err := q.store.SaveJob(ctx, job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
	}

	select {
	case q.jobCh <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeCh:
		return fmt.Errorf("queue is closed")
	}
}

// Start launches the worker goroutines. It returns immediately; workers run
// until the context is canceled or Stop is called.
func (q *Queue) Start(ctx context.Context, handler jobs.Handler) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}
	return nil
}

func (q *Queue) worker(ctx context.Context, handler jobs.Handler) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeCh:
			return
		case job := <-q.jobCh:
			if job == nil {
				return
			}
			q.run(ctx, job, handler)
		}
	}
}

// run executes one job attempt, rescheduling failures with linear backoff
// until the retry budget is spent.
func (q *Queue) run(ctx context.Context, job *jobs.ParseStatementJob, handler jobs.Handler) {
	now := time.Now()
	job.Status = jobs.StatusRunning
	job.StartedAt = &now
	q.save(ctx, job)

	err := handler(ctx, job)

	done := time.Now()
	job.CompletedAt = &done

	if err == nil {
		job.Status = jobs.StatusCompleted
		job.Error = ""
		q.save(ctx, job)
		return
	}

	job.Error = err.Error()
	if job.RetryCount >= job.MaxRetries {
		job.Status = jobs.StatusFailed
		q.save(ctx, job)
		return
	}

	job.RetryCount++
	job.Status = jobs.StatusRetrying
	q.save(ctx, job)

	backoff := time.Duration(job.RetryCount) * q.retryDelay
	time.AfterFunc(backoff, func() {
		job.Status = jobs.StatusPending
		job.StartedAt = nil
		job.CompletedAt = nil
		_ = q.Publish(ctx, job)
	})
}

func (q *Queue) save(ctx context.Context, job *jobs.ParseStatementJob) {
	if q.store != nil {
		_ = q.store.SaveJob(ctx, job)
	}
}

// Stop closes the queue and waits for in-flight jobs, bounded by ctx.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeCh)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements the Publisher interface.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

var (
	_ jobs.Publisher = (*Queue)(nil)
	_ jobs.Consumer  = (*Queue)(nil)
)
