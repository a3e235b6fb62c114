package services

import (
	"context"

	"github.com/mmexchange/price_tracker_app/internal/dto"
)

// CurrencySvcFacade defines the read-side operations for currency prices.
type CurrencySvcFacade interface {
	// GetLatest returns the current buy/sell quotes of every currency,
	// buy side first. Returns apperrors.ErrNotFound when nothing is seeded.
	GetLatest(ctx context.Context) ([]dto.LatestCurrencyResponse, error)

	// GetTransactions returns historical quotes grouped by day, newest
	// first, plus the backward pagination cursor.
	GetTransactions(ctx context.Context, req dto.GetTransactionsRequest) (*dto.GetTransactionsResponse, error)
}
