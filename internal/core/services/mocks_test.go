package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/mmexchange/price_tracker_app/internal/adapters/refapi"
	"github.com/mmexchange/price_tracker_app/internal/core/domain"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCurrencyRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCurrencyRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrenciesWithPrices(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, id int64) (*domain.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListTransactionsUpTo(ctx context.Context, currencyID int64, date time.Time, limit int) ([]domain.CurrencyTransaction, error) {
	args := m.Called(ctx, currencyID, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyTransaction), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCodeTx(ctx context.Context, tx pgx.Tx, code string) (*domain.Currency, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) CreateCurrencyTx(ctx context.Context, tx pgx.Tx, currency *domain.Currency) error {
	args := m.Called(ctx, tx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindPriceTx(ctx context.Context, tx pgx.Tx, currencyID int64, side domain.PriceSide) (*domain.CurrencyPrice, error) {
	args := m.Called(ctx, tx, currencyID, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyPrice), args.Error(1)
}

func (m *MockCurrencyRepository) CreatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error {
	args := m.Called(ctx, tx, price)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdatePriceTx(ctx context.Context, tx pgx.Tx, price *domain.CurrencyPrice) error {
	args := m.Called(ctx, tx, price)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindTransactionTx(ctx context.Context, tx pgx.Tx, currencyID int64, date time.Time, timeLabel string) (*domain.CurrencyTransaction, error) {
	args := m.Called(ctx, tx, currencyID, date, timeLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyTransaction), args.Error(1)
}

func (m *MockCurrencyRepository) CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateTransactionTx(ctx context.Context, tx pgx.Tx, txn *domain.CurrencyTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

// --- Mock GoldRepository ---

type MockGoldRepository struct {
	mock.Mock
}

func (m *MockGoldRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockGoldRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockGoldRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockGoldRepository) ListGoldsWithPrices(ctx context.Context) ([]domain.Gold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Gold), args.Error(1)
}

func (m *MockGoldRepository) FindGoldByTypeTx(ctx context.Context, tx pgx.Tx, goldType domain.GoldType) (*domain.Gold, error) {
	args := m.Called(ctx, tx, goldType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gold), args.Error(1)
}

func (m *MockGoldRepository) CreateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error {
	args := m.Called(ctx, tx, gold)
	return args.Error(0)
}

func (m *MockGoldRepository) UpdateGoldTx(ctx context.Context, tx pgx.Tx, gold *domain.Gold) error {
	args := m.Called(ctx, tx, gold)
	return args.Error(0)
}

func (m *MockGoldRepository) FindGoldPriceTx(ctx context.Context, tx pgx.Tx, goldID int64, title string) (*domain.GoldPrice, error) {
	args := m.Called(ctx, tx, goldID, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoldPrice), args.Error(1)
}

func (m *MockGoldRepository) CreateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error {
	args := m.Called(ctx, tx, price)
	return args.Error(0)
}

func (m *MockGoldRepository) UpdateGoldPriceTx(ctx context.Context, tx pgx.Tx, price *domain.GoldPrice) error {
	args := m.Called(ctx, tx, price)
	return args.Error(0)
}

// --- Mock ReferenceAPI ---

type MockReferenceAPI struct {
	mock.Mock
}

func (m *MockReferenceAPI) FetchLatest(ctx context.Context) ([]refapi.LatestCurrency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refapi.LatestCurrency), args.Error(1)
}

func (m *MockReferenceAPI) FetchGoldLatest(ctx context.Context) ([]refapi.LatestGold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refapi.LatestGold), args.Error(1)
}

func (m *MockReferenceAPI) FetchTransactions(ctx context.Context, anchor time.Time, which int64, count int) (*refapi.TransactionsPage, error) {
	args := m.Called(ctx, anchor, which, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*refapi.TransactionsPage), args.Error(1)
}
