package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/dto"
	"github.com/mmexchange/price_tracker_app/internal/utils"
	"github.com/mmexchange/price_tracker_app/internal/utils/dateconv"
)

const (
	defaultCurrencyID        = 1 // seed order puts the primary currency (USD) first
	defaultTransactionsCount = 10
)

// currencyService provides the read side for currency prices.
type currencyService struct {
	BaseService
	repo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency read service.
func NewCurrencyService(repo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{repo: repo}
}

// GetLatest returns the current buy/sell quotes of every currency.
func (s *currencyService) GetLatest(ctx context.Context) ([]dto.LatestCurrencyResponse, error) {
	currencies, err := s.repo.ListCurrenciesWithPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: no currencies found", apperrors.ErrNotFound)
	}

	out := make([]dto.LatestCurrencyResponse, len(currencies))
	for i, currency := range currencies {
		prices := make([]dto.PriceResponse, len(currency.CurrentPrices))
		for j, p := range currency.CurrentPrices {
			prices[j] = dto.PriceResponse{
				Value: utils.FormatAmount(p.Value),
				Sign:  string(p.Sign),
			}
		}
		out[i] = dto.LatestCurrencyResponse{
			ID:     currency.ID,
			Code:   currency.Code,
			Unit:   currency.Unit,
			Prices: prices,
		}
	}
	return out, nil
}

// GetTransactions returns historical quotes grouped by day, newest first.
// The cursor in NextStartDate is the calendar day before the oldest group,
// so a caller pages backward by re-invoking with date = NextStartDate.
func (s *currencyService) GetTransactions(ctx context.Context, req dto.GetTransactionsRequest) (*dto.GetTransactionsResponse, error) {
	isoDate := req.Date
	if isoDate == "" {
		isoDate = dateconv.CurrentISODate()
	}
	which := req.Which
	if which == 0 {
		which = defaultCurrencyID
	}
	count := req.Count
	if count == 0 {
		count = defaultTransactionsCount
	}

	anchor, err := dateconv.ParseISODate(isoDate)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	currency, err := s.repo.FindCurrencyByID(ctx, which)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Nothing seeded for this currency; an empty page, not an error.
			return &dto.GetTransactionsResponse{NextStartDate: nil, Data: []dto.TransactionDateGroup{}}, nil
		}
		return nil, fmt.Errorf("failed to find currency %d: %w", which, err)
	}

	transactions, err := s.repo.ListTransactionsUpTo(ctx, which, anchor, count)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Group by calendar day preserving the descending query order, so the
	// first group is the most recent date and the last group the oldest.
	unit := strings.ReplaceAll(currency.Unit, "$", "")
	groups := make([]dto.TransactionDateGroup, 0)
	groupIdx := make(map[string]int)
	for _, txn := range transactions {
		key := dateconv.ToDisplayDate(txn.Date)
		idx, ok := groupIdx[key]
		if !ok {
			groups = append(groups, dto.TransactionDateGroup{Date: key})
			idx = len(groups) - 1
			groupIdx[key] = idx
		}
		groups[idx].Transactions = append(groups[idx].Transactions, dto.TransactionItemResponse{
			Time: txn.Time,
			Unit: unit,
			Prices: []dto.PriceResponse{
				{Value: utils.FormatAmount(txn.BuyValue), Sign: string(txn.BuySign)},
				{Value: utils.FormatAmount(txn.SellValue), Sign: string(txn.SellSign)},
			},
		})
	}

	var nextStartDate *string
	if len(groups) > 0 {
		prev, err := dateconv.PreviousCalendarDay(groups[len(groups)-1].Date)
		if err != nil {
			return nil, fmt.Errorf("failed to compute next cursor: %w", err)
		}
		nextStartDate = &prev
	}

	return &dto.GetTransactionsResponse{NextStartDate: nextStartDate, Data: groups}, nil
}
