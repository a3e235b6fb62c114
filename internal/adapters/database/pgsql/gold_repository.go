package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	"github.com/mmexchange/price_tracker_app/internal/core/domain"
	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
)

type PgxGoldRepository struct {
	BaseRepository
}

// NewPgxGoldRepository creates a new repository for gold data.
func NewPgxGoldRepository(pool *pgxpool.Pool) portsrepo.GoldRepositoryFacade {
	return &PgxGoldRepository{BaseRepository{Pool: pool}}
}

// ListGoldsWithPrices retrieves all gold variants with their current
// title-keyed prices, prices ordered by title.
func (r *PgxGoldRepository) ListGoldsWithPrices(ctx context.Context) ([]domain.Gold, error) {
	query := `
		SELECT id, type, unit, time, created_at, updated_at
		FROM golds
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query golds: %w", err)
	}
	defer rows.Close()

	golds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Gold, error) {
		var g domain.Gold
		err := row.Scan(&g.ID, &g.Type, &g.Unit, &g.Time, &g.CreatedAt, &g.UpdatedAt)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan golds: %w", err)
	}
	if len(golds) == 0 {
		return golds, nil
	}

	priceQuery := `
		SELECT id, gold_id, title, value, sign
		FROM gold_prices
		ORDER BY gold_id, title;
	`
	priceRows, err := r.Pool.Query(ctx, priceQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query gold prices: %w", err)
	}
	defer priceRows.Close()

	prices, err := pgx.CollectRows(priceRows, func(row pgx.CollectableRow) (domain.GoldPrice, error) {
		var p domain.GoldPrice
		err := row.Scan(&p.ID, &p.GoldID, &p.Title, &p.Value, &p.Sign)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan gold prices: %w", err)
	}

	byGold := make(map[int64][]domain.GoldPrice, len(golds))
	for _, p := range prices {
		byGold[p.GoldID] = append(byGold[p.GoldID], p)
	}
	for i := range golds {
		golds[i].Prices = byGold[golds[i].ID]
	}
	return golds, nil
}

// FindGoldByTypeTx looks a gold variant up by its natural key.
func (r *PgxGoldRepository) FindGoldByTypeTx(ctx context.Context, tx pgx.Tx, goldType domain.GoldType) (*domain.Gold, error) {
	query := `
		SELECT id, type, unit, time, created_at, updated_at
		FROM golds
		WHERE type = $1;
	`
	var g domain.Gold
	err := tx.QueryRow(ctx, query, goldType).Scan(&g.ID, &g.Type, &g.Unit, &g.Time, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gold by type %s: %w", goldType, err)
	}
	return &g, nil
}

// CreateGoldTx inserts a gold variant and fills its ID and timestamps.
func (r *PgxGoldRepository) CreateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error {
	query := `
		INSERT INTO golds (type, unit, time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at;
	`
	err := tx.QueryRow(ctx, query, gold.Type, gold.Unit, gold.Time).
		Scan(&gold.ID, &gold.CreatedAt, &gold.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gold %s: %w", gold.Type, err)
	}
	return nil
}

// UpdateGoldTx overwrites the unit and quote time of a gold variant.
func (r *PgxGoldRepository) UpdateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error {
	query := `
		UPDATE golds
		SET unit = $2, time = $3, updated_at = now()
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query, gold.ID, gold.Unit, gold.Time)
	if err != nil {
		return fmt.Errorf("failed to update gold %d: %w", gold.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindGoldPriceTx looks a price up by (gold, title).
func (r *PgxGoldRepository) FindGoldPriceTx(ctx context.Context, tx pgx.Tx, goldID int64, title string) (*domain.GoldPrice, error) {
	query := `
		SELECT id, gold_id, title, value, sign
		FROM gold_prices
		WHERE gold_id = $1 AND title = $2;
	`
	var p domain.GoldPrice
	err := tx.QueryRow(ctx, query, goldID, title).Scan(&p.ID, &p.GoldID, &p.Title, &p.Value, &p.Sign)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find gold price %d/%s: %w", goldID, title, err)
	}
	return &p, nil
}

// CreateGoldPriceTx inserts a gold price row.
func (r *PgxGoldRepository) CreateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error {
	query := `
		INSERT INTO gold_prices (gold_id, title, value, sign)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query, price.GoldID, price.Title, price.Value, price.Sign).Scan(&price.ID)
	if err != nil {
		return fmt.Errorf("failed to create gold price %d/%s: %w", price.GoldID, price.Title, err)
	}
	return nil
}

// UpdateGoldPriceTx overwrites value and sign of an existing gold price.
func (r *PgxGoldRepository) UpdateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error {
	query := `
		UPDATE gold_prices
		SET value = $2, sign = $3
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query, price.ID, price.Value, price.Sign)
	if err != nil {
		return fmt.Errorf("failed to update gold price %d: %w", price.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
