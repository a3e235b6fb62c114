package services

import "context"

// ProgressFunc reports aggregate job progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// SeedSvcFacade defines the seed-and-reconcile pipeline operations.
// Every method returns a human-readable summary on success; the summary
// is what the job orchestrator stores as the job result.
type SeedSvcFacade interface {
	// SeedLatest reconciles the latest currency quotes from the reference
	// API into the store (upsert by currency code and price side).
	SeedLatest(ctx context.Context) (string, error)

	// SeedGoldLatest reconciles the latest gold quotes (upsert by gold
	// type and price title).
	SeedGoldLatest(ctx context.Context) (string, error)

	// SeedTransactions reconciles the last ten days of transactions for
	// every stored currency, pacing requests between currencies.
	SeedTransactions(ctx context.Context) (string, error)

	// SeedHistoricalTransactions backfills one currency between startDate
	// and endDate (ISO dates, endDate empty means today), paging backward
	// through the upstream cursor.
	SeedHistoricalTransactions(ctx context.Context, currencyID int64, startDate, endDate string) (string, error)

	// SeedAllHistorical runs the historical backfill for every stored
	// currency sequentially, reporting aggregate progress after each one.
	// A failing currency is noted in the summary and does not stop the rest.
	SeedAllHistorical(ctx context.Context, startDate, endDate string, progress ProgressFunc) (string, error)
}
