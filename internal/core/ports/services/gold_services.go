package services

import (
	"context"

	"github.com/mmexchange/price_tracker_app/internal/dto"
)

// GoldSvcFacade defines the read-side operations for gold prices.
type GoldSvcFacade interface {
	// GetLatest returns the current quotes of every gold variant.
	// Returns apperrors.ErrNotFound when nothing is seeded.
	GetLatest(ctx context.Context) ([]dto.LatestGoldResponse, error)
}
