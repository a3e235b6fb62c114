package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/dto"
	"github.com/mmexchange/price_tracker_app/internal/middleware"
	"github.com/mmexchange/price_tracker_app/internal/platform/queue"
)

// Job types handled by the worker pool. Handlers for each are registered
// against the queue at startup.
const (
	JobSeedLatest        = "seed-latest"
	JobSeedGoldLatest    = "seed-gold-latest"
	JobSeedTransactions  = "seed-transactions"
	JobSeedAllHistorical = "seed-all-historical"
)

// seedHandler handles the seed trigger endpoints and job status polling.
// Long-running seeds are enqueued and polled; the single-currency backfill
// runs synchronously because its caller wants the summary inline.
type seedHandler struct {
	seedService portssvc.SeedSvcFacade
	jobs        *queue.Queue
}

func newSeedHandler(ss portssvc.SeedSvcFacade, jobs *queue.Queue) *seedHandler {
	return &seedHandler{seedService: ss, jobs: jobs}
}

// registerSeedRoutes registers the seed and job routes. The rate limit
// applies to everything that triggers upstream traffic.
func registerSeedRoutes(rg *gin.RouterGroup, seedService portssvc.SeedSvcFacade, jobs *queue.Queue, rateLimit gin.HandlerFunc) {
	h := newSeedHandler(seedService, jobs)

	currency := rg.Group("/currency")
	{
		currency.POST("/seed", rateLimit, h.enqueue(JobSeedLatest))
		currency.POST("/seed-transactions", rateLimit, h.enqueue(JobSeedTransactions))
		currency.POST("/seed-historical/:currencyId", rateLimit, h.seedHistorical)
		currency.POST("/seed-all-historical", rateLimit, h.seedAllHistorical)
		currency.GET("/job/:id", h.jobStatus)
	}

	gold := rg.Group("/gold")
	{
		gold.POST("/seed", rateLimit, h.enqueue(JobSeedGoldLatest))
	}
}

// enqueue returns a handler that submits a payload-less job of the given
// type and responds with its id.
func (h *seedHandler) enqueue(jobType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())

		jobID, err := h.jobs.Enqueue(c.Request.Context(), jobType, nil)
		if err != nil {
			logger.Error("Failed to enqueue job", slog.String("job_type", jobType), slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to start job"})
			return
		}

		logger.Info("Job enqueued", slog.String("job_type", jobType), slog.String("job_id", jobID))
		c.JSON(http.StatusAccepted, dto.EnqueueResponse{JobID: jobID})
	}
}

// seedHistorical backfills one currency synchronously and returns the
// reconciliation summary.
func (h *seedHandler) seedHistorical(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencyID, err := strconv.ParseInt(c.Param("currencyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currencyId must be a number"})
		return
	}

	var req dto.HistoricalSeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for seedHistorical", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	summary, err := h.seedService.SeedHistoricalTransactions(c.Request.Context(), currencyID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Historical backfill failed", slog.Int64("currency_id", currencyID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Historical backfill failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": summary})
}

// seedAllHistorical enqueues the all-currency backfill with its window in
// the job payload.
func (h *seedHandler) seedAllHistorical(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.HistoricalSeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for seedAllHistorical", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payload := map[string]string{"startDate": req.StartDate, "endDate": req.EndDate}
	jobID, err := h.jobs.Enqueue(c.Request.Context(), JobSeedAllHistorical, payload)
	if err != nil {
		logger.Error("Failed to enqueue historical job", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to start job"})
		return
	}

	logger.Info("Historical job enqueued", slog.String("job_id", jobID), slog.String("start_date", req.StartDate))
	c.JSON(http.StatusAccepted, dto.EnqueueResponse{JobID: jobID})
}

// jobStatus reports job progress. Unknown ids come back as failed jobs
// with a "Job not found" error, always with HTTP 200.
func (h *seedHandler) jobStatus(c *gin.Context) {
	entry := h.jobs.GetStatus(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, dto.JobProgressResponse{
		JobID:    entry.JobID,
		Status:   string(entry.Status),
		Progress: entry.Progress,
		Result:   entry.Result,
		Error:    entry.Error,
	})
}
