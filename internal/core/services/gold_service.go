package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/dto"
	"github.com/mmexchange/price_tracker_app/internal/utils"
)

// goldService provides the read side for gold prices.
type goldService struct {
	BaseService
	repo portsrepo.GoldRepositoryFacade
}

// NewGoldService creates a new gold read service.
func NewGoldService(repo portsrepo.GoldRepositoryFacade) portssvc.GoldSvcFacade {
	return &goldService{repo: repo}
}

// GetLatest returns the current title-keyed quotes of every gold variant.
func (s *goldService) GetLatest(ctx context.Context) ([]dto.LatestGoldResponse, error) {
	golds, err := s.repo.ListGoldsWithPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list golds: %w", err)
	}
	if len(golds) == 0 {
		return nil, fmt.Errorf("%w: no gold prices found", apperrors.ErrNotFound)
	}

	out := make([]dto.LatestGoldResponse, len(golds))
	for i, gold := range golds {
		prices := make([]dto.GoldPriceResponse, len(gold.Prices))
		for j, p := range gold.Prices {
			prices[j] = dto.GoldPriceResponse{
				Title: p.Title,
				Value: utils.FormatAmount(p.Value),
				Sign:  string(p.Sign),
			}
		}
		out[i] = dto.LatestGoldResponse{
			ID:     gold.ID,
			Type:   string(gold.Type),
			Unit:   gold.Unit,
			Time:   gold.Time.Format(time.RFC3339),
			Prices: prices,
		}
	}
	return out, nil
}
