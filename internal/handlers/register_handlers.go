package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/middleware"
	"github.com/mmexchange/price_tracker_app/internal/platform/config"
	"github.com/mmexchange/price_tracker_app/internal/platform/queue"
	"github.com/mmexchange/price_tracker_app/internal/utils/dateconv"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	jobs *queue.Queue,
) {
	registerValidators()

	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupV1Routes(r, services, jobs)
}

// setupV1Routes configures the /v1 group and delegates to specific entity
// route registrations. Seed endpoints trigger upstream traffic, so they sit
// behind a rate limit the read endpoints do not have.
func setupV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, jobs *queue.Queue) {
	v1 := r.Group("/v1")
	seedLimit := middleware.RateLimit(newSeedLimiter())

	registerCurrencyRoutes(v1, services.Currency)
	registerSeedRoutes(v1, services.Seed, jobs, seedLimit)
	registerGoldRoutes(v1, services.Gold)
}

// newSeedLimiter allows a small burst of seed requests per client IP.
func newSeedLimiter() *limiter.Limiter {
	rate := limiter.Rate{Period: time.Minute, Limit: 10}
	return limiter.New(limitermem.NewStore(), rate)
}

// registerValidators installs the custom binding rules used by the DTOs.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := dateconv.ParseISODate(fl.Field().String())
			return err == nil
		})
	}
}
