package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmexchange/price_tracker_app/internal/core/domain"
)

// CurrencyReader defines the read-side operations for currency data.
type CurrencyReader interface {
	// ListCurrencies retrieves all currencies without their prices.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListCurrenciesWithPrices retrieves all currencies with their current
	// prices populated, buy side before sell side.
	ListCurrenciesWithPrices(ctx context.Context) ([]domain.Currency, error)

	// FindCurrencyByID retrieves one currency by its surrogate id.
	FindCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error)

	// ListTransactionsUpTo retrieves the limit most recent transactions of a
	// currency dated at or before the given date, ordered (date DESC, time DESC).
	ListTransactionsUpTo(ctx context.Context, currencyID int64, date time.Time, limit int) ([]domain.CurrencyTransaction, error)
}

// CurrencyReconciler defines the write operations used by the seed pipeline.
// Every method runs on the caller-supplied transaction; create-vs-update
// decisions are keyed on natural identity, never on surrogate ids.
type CurrencyReconciler interface {
	// FindCurrencyByCodeTx looks a currency up by its natural key.
	FindCurrencyByCodeTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Currency, error)

	// CreateCurrencyTx inserts a currency and fills its ID and timestamps.
	CreateCurrencyTx(ctx context.Context, tx pgx.Tx, currency *domain.Currency) error

	// FindPriceTx looks a current price up by (currency, side).
	FindPriceTx(ctx context.Context, tx pgx.Tx, currencyID int64, side domain.PriceSide) (*domain.CurrencyPrice, error)

	// CreatePriceTx inserts a current price row.
	CreatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error

	// UpdatePriceTx overwrites value and sign of an existing price row in place.
	UpdatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error

	// FindTransactionTx looks a historical transaction up by its composite
	// idempotency key (currency, date, time).
	FindTransactionTx(ctx context.Context, tx pgx.Tx, currencyID int64, date time.Time, timeLabel string) (*domain.CurrencyTransaction, error)

	// CreateTransactionTx inserts a historical transaction row.
	CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error

	// UpdateTransactionTx overwrites the quote fields of an existing row.
	UpdateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error
}

// CurrencyRepositoryFacade combines all currency-related repository
// interfaces for clients that need full access.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyReconciler
	TransactionManager
}
