package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/middleware"
)

// goldHandler handles the gold read endpoints.
type goldHandler struct {
	goldService portssvc.GoldSvcFacade
}

func newGoldHandler(gs portssvc.GoldSvcFacade) *goldHandler {
	return &goldHandler{goldService: gs}
}

// registerGoldRoutes registers the gold read routes.
func registerGoldRoutes(rg *gin.RouterGroup, goldService portssvc.GoldSvcFacade) {
	h := newGoldHandler(goldService)

	gold := rg.Group("/gold")
	{
		gold.GET("/getLatest", h.getLatest)
	}
}

// getLatest returns the current title-keyed quotes of every gold variant.
func (h *goldHandler) getLatest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	golds, err := h.goldService.GetLatest(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No gold prices available yet")
			c.JSON(http.StatusNotFound, gin.H{"error": "No gold prices available"})
			return
		}
		logger.Error("Failed to get latest gold prices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gold prices"})
		return
	}

	c.JSON(http.StatusOK, golds)
}
