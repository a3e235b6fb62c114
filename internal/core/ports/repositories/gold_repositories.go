package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mmexchange/price_tracker_app/internal/core/domain"
)

// GoldReader defines the read-side operations for gold data.
type GoldReader interface {
	// ListGoldsWithPrices retrieves all gold variants with their current
	// prices populated, ordered by title.
	ListGoldsWithPrices(ctx context.Context) ([]domain.Gold, error)
}

// GoldReconciler defines the write operations used by the gold seed path.
// Gold prices are title-keyed: one row per (gold, title).
type GoldReconciler interface {
	FindGoldByTypeTx(ctx context.Context, tx pgx.Tx, goldType domain.GoldType) (*domain.Gold, error)
	CreateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error
	UpdateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error

	FindGoldPriceTx(ctx context.Context, tx pgx.Tx, goldID int64, title string) (*domain.GoldPrice, error)
	CreateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error
	UpdateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error
}

// GoldRepositoryFacade combines all gold-related repository interfaces.
type GoldRepositoryFacade interface {
	GoldReader
	GoldReconciler
	TransactionManager
}
