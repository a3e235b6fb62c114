package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mmexchange/price_tracker_app/internal/middleware"
)

// HandlerFunc executes one job. The returned string is stored as the job
// result; progress may be called with a 0-100 percentage as work advances.
type HandlerFunc func(ctx context.Context, job Job, progress func(int)) (string, error)

// Queue is a small in-process job orchestrator: jobs are enqueued onto a
// buffered channel and consumed by a fixed worker pool. Job status lives
// in the Store, so callers can poll it over HTTP.
type Queue struct {
	store    Store
	logger   *slog.Logger
	handlers map[string]HandlerFunc
	jobs     chan Job
	workers  int
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// New creates a queue with the given worker count and backlog capacity.
func New(store Store, logger *slog.Logger, workers, backlog int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if backlog <= 0 {
		backlog = 64
	}
	return &Queue{
		store:    store,
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
		jobs:     make(chan Job, backlog),
		workers:  workers,
	}
}

// Register binds a handler to a job type. Must be called before Start.
func (q *Queue) Register(jobType string, handler HandlerFunc) {
	q.handlers[jobType] = handler
}

// Start launches the worker pool.
func (q *Queue) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	q.logger.Info("job queue started", slog.Int("workers", q.workers))
}

// Stop drains the workers. Jobs still in the backlog are not executed.
func (q *Queue) Stop() {
	if q.cancel != nil {
		q.cancel()
	}
	close(q.jobs)
	q.wg.Wait()
	q.logger.Info("job queue stopped")
}

// Enqueue registers a new job and hands it to the pool, returning the job
// id immediately. A full backlog fails the job right away instead of
// blocking the caller.
func (q *Queue) Enqueue(ctx context.Context, jobType string, payload map[string]string) (string, error) {
	if _, ok := q.handlers[jobType]; !ok {
		return "", fmt.Errorf("no handler registered for job type %s", jobType)
	}

	job := Job{ID: uuid.NewString(), Type: jobType, Payload: payload}
	if err := q.store.Create(ctx, job); err != nil {
		return "", err
	}

	select {
	case q.jobs <- job:
		return job.ID, nil
	default:
		_ = q.store.Fail(ctx, job.ID, "job backlog is full")
		return "", fmt.Errorf("job backlog is full")
	}
}

// GetStatus reports the progress of a job. An unknown or expired id is
// reported as a failed job, never as an error, so pollers always get a
// terminal answer.
func (q *Queue) GetStatus(ctx context.Context, jobID string) *JobProgress {
	entry, err := q.store.Get(ctx, jobID)
	if err != nil {
		return &JobProgress{JobID: jobID, Status: StatusFailed, Error: "Job not found"}
	}
	return entry
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.run(ctx, job)
		}
	}
}

func (q *Queue) run(ctx context.Context, job Job) {
	jobLogger := q.logger.With(slog.String("job_id", job.ID), slog.String("job_type", job.Type))
	jobCtx := middleware.ContextWithLogger(ctx, jobLogger)

	jobLogger.Info("job started")
	if err := q.store.SetProgress(jobCtx, job.ID, 0); err != nil {
		jobLogger.Warn("failed to record initial progress", slog.String("error", err.Error()))
	}

	result, err := q.handlers[job.Type](jobCtx, job, func(percent int) {
		if err := q.store.SetProgress(jobCtx, job.ID, percent); err != nil {
			jobLogger.Warn("failed to record progress", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		jobLogger.Error("job failed", slog.String("error", err.Error()))
		if storeErr := q.store.Fail(jobCtx, job.ID, err.Error()); storeErr != nil {
			jobLogger.Error("failed to record job failure", slog.String("error", storeErr.Error()))
		}
		return
	}

	if storeErr := q.store.Complete(jobCtx, job.ID, result); storeErr != nil {
		jobLogger.Error("failed to record job completion", slog.String("error", storeErr.Error()))
	}
	jobLogger.Info("job completed")
}
