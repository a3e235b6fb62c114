package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mmexchange/price_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all concrete repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo: NewPgxCurrencyRepository(dbPool),
		GoldRepo:     NewPgxGoldRepository(dbPool),
	}
}
