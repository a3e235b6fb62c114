package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
)

const jobKeyPrefix = "jobs"

// RedisStore persists job progress in Redis so status survives restarts
// and is shared across instances. Retention is enforced via key TTL.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore creates a Redis-backed job store.
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func (s *RedisStore) key(jobID string) string {
	return fmt.Sprintf("%s:%s", jobKeyPrefix, jobID)
}

func (s *RedisStore) put(ctx context.Context, entry *JobProgress) error {
	entry.Updated = time.Now().UTC()
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal job progress: %w", err)
	}
	if err := s.client.Set(ctx, s.key(entry.JobID), string(data), s.retention).Err(); err != nil {
		return fmt.Errorf("failed to store job progress: %w", err)
	}
	return nil
}

func (s *RedisStore) Create(ctx context.Context, job Job) error {
	return s.put(ctx, &JobProgress{
		JobID:  job.ID,
		Type:   job.Type,
		Status: StatusProcessing,
	})
}

func (s *RedisStore) SetProgress(ctx context.Context, jobID string, percent int) error {
	entry, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	entry.Progress = &percent
	return s.put(ctx, entry)
}

func (s *RedisStore) Complete(ctx context.Context, jobID string, result string) error {
	entry, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	full := 100
	entry.Status = StatusCompleted
	entry.Progress = &full
	entry.Result = result
	return s.put(ctx, entry)
}

func (s *RedisStore) Fail(ctx context.Context, jobID string, cause string) error {
	entry, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	entry.Status = StatusFailed
	entry.Error = cause
	return s.put(ctx, entry)
}

func (s *RedisStore) Get(ctx context.Context, jobID string) (*JobProgress, error) {
	data, err := s.client.Get(ctx, s.key(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load job progress: %w", err)
	}

	var entry JobProgress
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job progress: %w", err)
	}
	return &entry, nil
}
