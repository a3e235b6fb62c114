package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmexchange/price_tracker_app/internal/adapters/refapi"
	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	"github.com/mmexchange/price_tracker_app/internal/core/domain"
	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/utils"
	"github.com/mmexchange/price_tracker_app/internal/utils/dateconv"
)

const (
	// lastDaysCount is how many days of transactions the bulk seed pulls
	// per currency.
	lastDaysCount = 10

	// maxHistoricalPageSize is the page size requested during backfill.
	maxHistoricalPageSize = 50
)

// ReferenceAPI abstracts the upstream reference price API. The interface is
// defined here, on the consumer side; refapi.Client implements it.
type ReferenceAPI interface {
	FetchLatest(ctx context.Context) ([]refapi.LatestCurrency, error)
	FetchGoldLatest(ctx context.Context) ([]refapi.LatestGold, error)
	FetchTransactions(ctx context.Context, anchor time.Time, which int64, count int) (*refapi.TransactionsPage, error)
}

// reconcileCounts accumulates create-vs-update decisions across a batch.
type reconcileCounts struct {
	created int
	updated int
	skipped int
}

// seedService implements the seed-and-reconcile pipeline: latest-price
// reconciliation, bulk transaction seeding and historical backfill.
type seedService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	goldRepo     portsrepo.GoldRepositoryFacade
	upstream     ReferenceAPI
	pacingDelay  time.Duration
}

// NewSeedService creates the seed pipeline service. pacingDelay is slept
// between consecutive upstream requests as rate-limit courtesy.
func NewSeedService(
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	goldRepo portsrepo.GoldRepositoryFacade,
	upstream ReferenceAPI,
	pacingDelay time.Duration,
) portssvc.SeedSvcFacade {
	return &seedService{
		currencyRepo: currencyRepo,
		goldRepo:     goldRepo,
		upstream:     upstream,
		pacingDelay:  pacingDelay,
	}
}

// SeedLatest reconciles the latest currency quotes into the store inside a
// single transaction. Records are upserted by natural key so repeated runs
// against a moving feed never duplicate rows.
func (s *seedService) SeedLatest(ctx context.Context) (string, error) {
	batch, err := s.upstream.FetchLatest(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to fetch currency data: %w", err)
	}

	tx, err := s.currencyRepo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = s.currencyRepo.Rollback(ctx, tx) }()

	var counts reconcileCounts
	for _, record := range batch {
		if err := s.reconcileLatestCurrency(ctx, tx, record, &counts); err != nil {
			// Instrument-level tolerance: note the failure, keep going.
			s.LogError(ctx, err, "failed to process currency", slog.String("code", record.Code))
			counts.skipped++
		}
	}

	if err := s.currencyRepo.Commit(ctx, tx); err != nil {
		return "", err
	}

	summary := fmt.Sprintf("Successfully processed %d currencies (%d created, %d updated, %d skipped)",
		len(batch), counts.created, counts.updated, counts.skipped)
	s.LogInfo(ctx, "latest currency seed finished", slog.String("summary", summary))
	return summary, nil
}

// reconcileLatestCurrency upserts one upstream currency record and its
// positional buy/sell quotes.
func (s *seedService) reconcileLatestCurrency(ctx context.Context, tx pgx.Tx, record refapi.LatestCurrency, counts *reconcileCounts) error {
	currency, err := s.currencyRepo.FindCurrencyByCodeTx(ctx, tx, record.Code)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		currency = &domain.Currency{Code: record.Code, Unit: record.Unit}
		if err := s.currencyRepo.CreateCurrencyTx(ctx, tx, currency); err != nil {
			return err
		}
		counts.created++
	case err != nil:
		return err
	default:
		counts.updated++
	}

	for i, quote := range record.Prices {
		if i > 1 {
			break // the feed carries at most buy and sell
		}
		side := domain.SideBuy
		if i == 1 {
			side = domain.SideSell
		}

		value, err := utils.ParseAmount(quote.Value)
		if err != nil {
			// Entry-level tolerance: a malformed amount skips this quote only.
			s.LogWarn(ctx, "skipping malformed quote",
				slog.String("code", record.Code), slog.String("side", string(side)), slog.String("value", quote.Value))
			continue
		}
		sign := parseSign(quote.Sign)

		existing, err := s.currencyRepo.FindPriceTx(ctx, tx, currency.ID, side)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			price := &domain.CurrencyPrice{CurrencyID: currency.ID, Type: side, Value: value, Sign: sign}
			if err := s.currencyRepo.CreatePriceTx(ctx, tx, price); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.Value = value
			existing.Sign = sign
			if err := s.currencyRepo.UpdatePriceTx(ctx, tx, existing); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedGoldLatest reconciles the latest gold quotes. Gold prices are
// title-keyed, not positional.
func (s *seedService) SeedGoldLatest(ctx context.Context) (string, error) {
	batch, err := s.upstream.FetchGoldLatest(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to fetch gold data: %w", err)
	}

	tx, err := s.goldRepo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = s.goldRepo.Rollback(ctx, tx) }()

	var counts reconcileCounts
	for _, record := range batch {
		if err := s.reconcileLatestGold(ctx, tx, record, &counts); err != nil {
			s.LogError(ctx, err, "failed to process gold variant", slog.String("type", record.Type))
			counts.skipped++
		}
	}

	if err := s.goldRepo.Commit(ctx, tx); err != nil {
		return "", err
	}

	summary := fmt.Sprintf("Successfully processed %d gold variants (%d created, %d updated, %d skipped)",
		len(batch), counts.created, counts.updated, counts.skipped)
	s.LogInfo(ctx, "latest gold seed finished", slog.String("summary", summary))
	return summary, nil
}

func (s *seedService) reconcileLatestGold(ctx context.Context, tx pgx.Tx, record refapi.LatestGold, counts *reconcileCounts) error {
	quotedAt, err := time.Parse(time.RFC3339, record.Time)
	if err != nil {
		quotedAt = time.Now().UTC()
	}

	gold, err := s.goldRepo.FindGoldByTypeTx(ctx, tx, domain.GoldType(record.Type))
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		gold = &domain.Gold{Type: domain.GoldType(record.Type), Unit: record.Unit, Time: quotedAt}
		if err := s.goldRepo.CreateGoldTx(ctx, tx, gold); err != nil {
			return err
		}
		counts.created++
	case err != nil:
		return err
	default:
		gold.Unit = record.Unit
		gold.Time = quotedAt
		if err := s.goldRepo.UpdateGoldTx(ctx, tx, gold); err != nil {
			return err
		}
		counts.updated++
	}

	for _, quote := range record.Prices {
		value, err := utils.ParseAmount(quote.Value)
		if err != nil {
			s.LogWarn(ctx, "skipping malformed gold quote",
				slog.String("type", record.Type), slog.String("title", quote.Title), slog.String("value", quote.Value))
			continue
		}
		sign := parseSign(quote.Sign)

		existing, err := s.goldRepo.FindGoldPriceTx(ctx, tx, gold.ID, quote.Title)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			price := &domain.GoldPrice{GoldID: gold.ID, Title: quote.Title, Value: value, Sign: sign}
			if err := s.goldRepo.CreateGoldPriceTx(ctx, tx, price); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			existing.Value = value
			existing.Sign = sign
			if err := s.goldRepo.UpdateGoldPriceTx(ctx, tx, existing); err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedTransactions reconciles the last ten days of transactions for every
// stored currency inside one transaction, pacing upstream requests.
func (s *seedService) SeedTransactions(ctx context.Context) (string, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list currencies: %w", err)
	}

	tx, err := s.currencyRepo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = s.currencyRepo.Rollback(ctx, tx) }()

	today := time.Now().UTC()
	var counts reconcileCounts
	for i, currency := range currencies {
		page, err := s.upstream.FetchTransactions(ctx, today, currency.ID, lastDaysCount)
		if err != nil {
			// Fetch failures abort the whole job and roll everything back.
			return "", fmt.Errorf("API request failed for currency %s: %w", currency.Code, err)
		}
		if _, err := s.reconcileDateGroups(ctx, tx, currency.ID, page.Data, nil, &counts); err != nil {
			return "", fmt.Errorf("failed to reconcile transactions for %s: %w", currency.Code, err)
		}
		if i < len(currencies)-1 {
			time.Sleep(s.pacingDelay)
		}
	}

	if err := s.currencyRepo.Commit(ctx, tx); err != nil {
		return "", err
	}

	summary := fmt.Sprintf("Successfully seeded %d transactions (%d created, %d updated) for %d currencies",
		counts.created+counts.updated, counts.created, counts.updated, len(currencies))
	s.LogInfo(ctx, "transaction seed finished", slog.String("summary", summary))
	return summary, nil
}

// reconcileDateGroups upserts the transactions of the given date groups by
// their composite (currency, date, time) key. When notBefore is set, a
// group dated before it stops consumption and reports stopped=true; the
// remaining groups of the page are outside the requested window.
func (s *seedService) reconcileDateGroups(ctx context.Context, tx pgx.Tx, currencyID int64, groups []refapi.DateGroup, notBefore *time.Time, counts *reconcileCounts) (stopped bool, err error) {
	for _, group := range groups {
		date, err := dateconv.ToStorageDate(group.Date)
		if err != nil {
			s.LogWarn(ctx, "skipping date group with malformed date", slog.String("date", group.Date))
			counts.skipped++
			continue
		}
		if notBefore != nil && date.Before(*notBefore) {
			return true, nil
		}

		for _, entry := range group.Transactions {
			if len(entry.Prices) < 2 {
				s.LogWarn(ctx, "skipping transaction without buy/sell pair",
					slog.String("date", group.Date), slog.String("time", entry.Time))
				counts.skipped++
				continue
			}
			buyValue, errBuy := utils.ParseAmount(entry.Prices[0].Value)
			sellValue, errSell := utils.ParseAmount(entry.Prices[1].Value)
			if errBuy != nil || errSell != nil {
				s.LogWarn(ctx, "skipping transaction with malformed amount",
					slog.String("date", group.Date), slog.String("time", entry.Time))
				counts.skipped++
				continue
			}

			existing, err := s.currencyRepo.FindTransactionTx(ctx, tx, currencyID, date, entry.Time)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				txn := &domain.CurrencyTransaction{
					CurrencyID: currencyID,
					Date:       date,
					Time:       entry.Time,
					BuyValue:   buyValue,
					BuySign:    parseSign(entry.Prices[0].Sign),
					SellValue:  sellValue,
					SellSign:   parseSign(entry.Prices[1].Sign),
				}
				if err := s.currencyRepo.CreateTransactionTx(ctx, tx, txn); err != nil {
					return false, err
				}
				counts.created++
			case err != nil:
				return false, err
			default:
				existing.BuyValue = buyValue
				existing.BuySign = parseSign(entry.Prices[0].Sign)
				existing.SellValue = sellValue
				existing.SellSign = parseSign(entry.Prices[1].Sign)
				if err := s.currencyRepo.UpdateTransactionTx(ctx, tx, existing); err != nil {
					return false, err
				}
				counts.updated++
			}
		}
	}
	return false, nil
}

// SeedHistoricalTransactions backfills one currency between startDate and
// endDate, paging backward through the server-supplied cursor. An upstream
// fetch error aborts the whole backfill and rolls it back.
func (s *seedService) SeedHistoricalTransactions(ctx context.Context, currencyID int64, startDate, endDate string) (string, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return "", fmt.Errorf("failed to find currency %d: %w", currencyID, err)
	}

	start, err := dateconv.ParseISODate(startDate)
	if err != nil {
		return "", fmt.Errorf("%w: startDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	cursor := time.Now().UTC()
	if endDate != "" {
		cursor, err = dateconv.ParseISODate(endDate)
		if err != nil {
			return "", fmt.Errorf("%w: endDate must be YYYY-MM-DD", apperrors.ErrValidation)
		}
	}

	tx, err := s.currencyRepo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = s.currencyRepo.Rollback(ctx, tx) }()

	var counts reconcileCounts
	for hasMore := true; hasMore && !cursor.Before(start); {
		page, err := s.upstream.FetchTransactions(ctx, cursor, currencyID, maxHistoricalPageSize)
		if err != nil {
			return "", fmt.Errorf("historical fetch failed for %s at %s: %w",
				currency.Code, dateconv.ToISODate(cursor), err)
		}

		stopped, err := s.reconcileDateGroups(ctx, tx, currencyID, page.Data, &start, &counts)
		if err != nil {
			return "", err
		}
		if stopped || page.NextStartDate == nil {
			hasMore = false
			break
		}

		next, err := dateconv.ParseISODate(*page.NextStartDate)
		if err != nil {
			s.LogWarn(ctx, "stopping backfill on malformed cursor",
				slog.String("code", currency.Code), slog.String("cursor", *page.NextStartDate))
			hasMore = false
			break
		}
		if next.Before(start) {
			hasMore = false
			break
		}
		cursor = next
		time.Sleep(s.pacingDelay)
	}

	if err := s.currencyRepo.Commit(ctx, tx); err != nil {
		return "", err
	}

	summary := fmt.Sprintf("Backfilled %s from %s: %d created, %d updated, %d skipped",
		currency.Code, startDate, counts.created, counts.updated, counts.skipped)
	s.LogInfo(ctx, "historical backfill finished", slog.String("summary", summary))
	return summary, nil
}

// SeedAllHistorical runs the historical backfill sequentially for every
// stored currency. A failing currency is noted in the summary and the job
// proceeds; aggregate progress is reported after each currency.
func (s *seedService) SeedAllHistorical(ctx context.Context, startDate, endDate string, progress portssvc.ProgressFunc) (string, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list currencies: %w", err)
	}
	if len(currencies) == 0 {
		return "No currencies found to process", nil
	}

	results := make([]string, 0, len(currencies))
	for i, currency := range currencies {
		summary, err := s.SeedHistoricalTransactions(ctx, currency.ID, startDate, endDate)
		if err != nil {
			s.LogError(ctx, err, "historical backfill failed", slog.String("code", currency.Code))
			results = append(results, fmt.Sprintf("%s: Failed - %v", currency.Code, err))
		} else {
			results = append(results, fmt.Sprintf("%s: %s", currency.Code, summary))
		}
		if progress != nil {
			progress((i + 1) * 100 / len(currencies))
		}
	}
	return strings.Join(results, "\n"), nil
}

// parseSign maps an upstream sign string onto the domain enum, defaulting
// to none for anything unrecognized.
func parseSign(sign string) domain.PriceSign {
	switch domain.PriceSign(sign) {
	case domain.SignUp:
		return domain.SignUp
	case domain.SignDown:
		return domain.SignDown
	default:
		return domain.SignNone
	}
}
