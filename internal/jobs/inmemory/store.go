package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/adityamisra/sip-planner/internal/jobs"
)

// Store keeps job records in a map guarded by a RWMutex.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*jobs.ParseStatementJob
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*jobs.ParseStatementJob)}
}

// SaveJob upserts a copy of the job, so later mutations by the worker do not
// race with readers.
func (s *Store) SaveJob(_ context.Context, job *jobs.ParseStatementJob) error {
	if job.JobID == "" {
		return fmt.Errorf("SaveJob: job has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.byID[job.JobID] = &cp
	return nil
}

func (s *Store) GetJob(_ context.Context, jobID string) (*jobs.ParseStatementJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.byID[jobID]
	if !ok {
		return nil, fmt.Errorf("GetJob: job %s not found", jobID)
	}
	cp := *job
	return &cp, nil
}

// ListJobs returns jobs matching the filter, newest first.
func (s *Store) ListJobs(_ context.Context, filter jobs.Filter) ([]*jobs.ParseStatementJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*jobs.ParseStatementJob, 0, len(s.byID))
	for _, job := range s.byID {
		if filter.StatementID != "" && job.StatementID != filter.StatementID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		cp := *job
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*jobs.ParseStatementJob{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

var _ jobs.Store = (*Store)(nil)
