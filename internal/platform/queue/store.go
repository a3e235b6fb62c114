package queue

import (
	"context"
	"sync"
	"time"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is one unit of work handed to the worker pool.
type Job struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload,omitempty"`
}

// JobProgress is the externally visible state of a job.
type JobProgress struct {
	JobID    string    `json:"jobId"`
	Type     string    `json:"type"`
	Status   Status    `json:"status"`
	Progress *int      `json:"progress,omitempty"`
	Result   string    `json:"result,omitempty"`
	Error    string    `json:"error,omitempty"`
	Updated  time.Time `json:"updated"`
}

// Store persists job progress. Get returns apperrors.ErrNotFound for
// unknown or expired job ids.
type Store interface {
	Create(ctx context.Context, job Job) error
	SetProgress(ctx context.Context, jobID string, percent int) error
	Complete(ctx context.Context, jobID string, result string) error
	Fail(ctx context.Context, jobID string, cause string) error
	Get(ctx context.Context, jobID string) (*JobProgress, error)
}

// MemoryStore is an in-process Store used when Redis is not configured.
// Entries are kept until the retention window elapses.
type MemoryStore struct {
	mu        sync.RWMutex
	jobs      map[string]*JobProgress
	retention time.Duration
}

// NewMemoryStore creates an in-process job store.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	return &MemoryStore{
		jobs:      make(map[string]*JobProgress),
		retention: retention,
	}
}

func (s *MemoryStore) Create(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.jobs[job.ID] = &JobProgress{
		JobID:   job.ID,
		Type:    job.Type,
		Status:  StatusProcessing,
		Updated: time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) SetProgress(_ context.Context, jobID string, percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.Progress = &percent
	entry.Updated = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, jobID string, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return apperrors.ErrNotFound
	}
	full := 100
	entry.Status = StatusCompleted
	entry.Progress = &full
	entry.Result = result
	entry.Updated = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Fail(_ context.Context, jobID string, cause string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.jobs[jobID]
	if !ok {
		return apperrors.ErrNotFound
	}
	entry.Status = StatusFailed
	entry.Error = cause
	entry.Updated = time.Now().UTC()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, jobID string) (*JobProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.jobs[jobID]
	if !ok || s.expired(entry) {
		return nil, apperrors.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (s *MemoryStore) expired(entry *JobProgress) bool {
	return s.retention > 0 && time.Since(entry.Updated) > s.retention
}

// evictExpired drops finished entries past the retention window.
// Caller must hold the write lock.
func (s *MemoryStore) evictExpired() {
	for id, entry := range s.jobs {
		if entry.Status != StatusProcessing && s.expired(entry) {
			delete(s.jobs, id)
		}
	}
}
