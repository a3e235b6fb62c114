package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	"github.com/mmexchange/price_tracker_app/internal/core/domain"
	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// NewPgxCurrencyRepository creates a new repository for currency data.
func NewPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository{Pool: pool}}
}

// ListCurrencies retrieves all currencies without their prices.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT id, code, unit, created_at, updated_at
		FROM currencies
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		var c domain.Currency
		err := row.Scan(&c.ID, &c.Code, &c.Unit, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return currencies, nil
}

// ListCurrenciesWithPrices retrieves all currencies with their current
// prices, buy side before sell side within each currency.
func (r *PgxCurrencyRepository) ListCurrenciesWithPrices(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := r.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	if len(currencies) == 0 {
		return currencies, nil
	}

	query := `
		SELECT id, currency_id, type, value, sign, created_at, updated_at
		FROM currency_prices
		ORDER BY currency_id, CASE type WHEN 'buy' THEN 0 ELSE 1 END;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency prices: %w", err)
	}
	defer rows.Close()

	prices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CurrencyPrice, error) {
		var p domain.CurrencyPrice
		err := row.Scan(&p.ID, &p.CurrencyID, &p.Type, &p.Value, &p.Sign, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currency prices: %w", err)
	}

	byCurrency := make(map[int64][]domain.CurrencyPrice, len(currencies))
	for _, p := range prices {
		byCurrency[p.CurrencyID] = append(byCurrency[p.CurrencyID], p)
	}
	for i := range currencies {
		currencies[i].CurrentPrices = byCurrency[currencies[i].ID]
	}
	return currencies, nil
}

// FindCurrencyByID retrieves one currency by its surrogate id.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error) {
	query := `
		SELECT id, code, unit, created_at, updated_at
		FROM currencies
		WHERE id = $1;
	`
	var c domain.Currency
	err := r.Pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Unit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency %d: %w", id, err)
	}
	return &c, nil
}

// ListTransactionsUpTo retrieves the limit most recent transactions of a
// currency dated at or before the given date.
func (r *PgxCurrencyRepository) ListTransactionsUpTo(ctx context.Context, currencyID int64, date time.Time, limit int) ([]domain.CurrencyTransaction, error) {
	query := `
		SELECT id, currency_id, date, time, buy_value, buy_sign, sell_value, sell_sign
		FROM currency_transactions
		WHERE currency_id = $1 AND date <= $2
		ORDER BY date DESC, time DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, currencyID, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CurrencyTransaction, error) {
		var t domain.CurrencyTransaction
		err := row.Scan(&t.ID, &t.CurrencyID, &t.Date, &t.Time, &t.BuyValue, &t.BuySign, &t.SellValue, &t.SellSign)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return transactions, nil
}

// FindCurrencyByCodeTx looks a currency up by its natural key.
func (r *PgxCurrencyRepository) FindCurrencyByCodeTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Currency, error) {
	query := `
		SELECT id, code, unit, created_at, updated_at
		FROM currencies
		WHERE code = $1;
	`
	var c domain.Currency
	err := tx.QueryRow(ctx, query, code).Scan(&c.ID, &c.Code, &c.Unit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}
	return &c, nil
}

// CreateCurrencyTx inserts a currency and fills its ID and timestamps.
func (r *PgxCurrencyRepository) CreateCurrencyTx(ctx context.Context, tx pgx.Tx, currency *domain.Currency) error {
	query := `
		INSERT INTO currencies (code, unit)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at;
	`
	err := tx.QueryRow(ctx, query, currency.Code, currency.Unit).
		Scan(&currency.ID, &currency.CreatedAt, &currency.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create currency %s: %w", currency.Code, err)
	}
	return nil
}

// FindPriceTx looks a current price up by (currency, side).
func (r *PgxCurrencyRepository) FindPriceTx(ctx context.Context, tx pgx.Tx, currencyID int64, side domain.PriceSide) (*domain.CurrencyPrice, error) {
	query := `
		SELECT id, currency_id, type, value, sign, created_at, updated_at
		FROM currency_prices
		WHERE currency_id = $1 AND type = $2;
	`
	var p domain.CurrencyPrice
	err := tx.QueryRow(ctx, query, currencyID, side).
		Scan(&p.ID, &p.CurrencyID, &p.Type, &p.Value, &p.Sign, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price for currency %d side %s: %w", currencyID, side, err)
	}
	return &p, nil
}

// CreatePriceTx inserts a current price row.
func (r *PgxCurrencyRepository) CreatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error {
	query := `
		INSERT INTO currency_prices (currency_id, type, value, sign)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`
	err := tx.QueryRow(ctx, query, price.CurrencyID, price.Type, price.Value, price.Sign).
		Scan(&price.ID, &price.CreatedAt, &price.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create price for currency %d: %w", price.CurrencyID, err)
	}
	return nil
}

// UpdatePriceTx overwrites value and sign of an existing price row.
func (r *PgxCurrencyRepository) UpdatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error {
	query := `
		UPDATE currency_prices
		SET value = $2, sign = $3, updated_at = now()
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query, price.ID, price.Value, price.Sign)
	if err != nil {
		return fmt.Errorf("failed to update price %d: %w", price.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionTx looks a transaction up by its composite key.
func (r *PgxCurrencyRepository) FindTransactionTx(ctx context.Context, tx pgx.Tx, currencyID int64, date time.Time, timeLabel string) (*domain.CurrencyTransaction, error) {
	query := `
		SELECT id, currency_id, date, time, buy_value, buy_sign, sell_value, sell_sign
		FROM currency_transactions
		WHERE currency_id = $1 AND date = $2 AND time = $3;
	`
	var t domain.CurrencyTransaction
	err := tx.QueryRow(ctx, query, currencyID, date, timeLabel).
		Scan(&t.ID, &t.CurrencyID, &t.Date, &t.Time, &t.BuyValue, &t.BuySign, &t.SellValue, &t.SellSign)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction for currency %d: %w", currencyID, err)
	}
	return &t, nil
}

// CreateTransactionTx inserts a transaction row.
func (r *PgxCurrencyRepository) CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error {
	query := `
		INSERT INTO currency_transactions (currency_id, date, time, buy_value, buy_sign, sell_value, sell_sign)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		txn.CurrencyID, txn.Date, txn.Time,
		txn.BuyValue, txn.BuySign, txn.SellValue, txn.SellSign,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction for currency %d: %w", txn.CurrencyID, err)
	}
	return nil
}

// UpdateTransactionTx overwrites the quote fields of an existing row.
func (r *PgxCurrencyRepository) UpdateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error {
	query := `
		UPDATE currency_transactions
		SET buy_value = $2, buy_sign = $3, sell_value = $4, sell_sign = $5
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query, txn.ID, txn.BuyValue, txn.BuySign, txn.SellValue, txn.SellSign)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
