package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mmexchange/price_tracker_app/internal/apperrors"
	"github.com/mmexchange/price_tracker_app/internal/core/domain"
	portssvc "github.com/mmexchange/price_tracker_app/internal/core/ports/services"
	"github.com/mmexchange/price_tracker_app/internal/core/services"
	"github.com/mmexchange/price_tracker_app/internal/dto"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func day(iso string) time.Time {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	return d
}

func (suite *CurrencyServiceTestSuite) TestGetLatest_Success() {
	ctx := context.Background()
	currencies := []domain.Currency{
		{
			ID: 1, Code: "USD", Unit: "1$",
			CurrentPrices: []domain.CurrencyPrice{
				{CurrencyID: 1, Type: domain.SideBuy, Value: decimal.RequireFromString("4460"), Sign: domain.SignUp},
				{CurrencyID: 1, Type: domain.SideSell, Value: decimal.RequireFromString("4475.5"), Sign: domain.SignNone},
			},
		},
	}
	suite.mockRepo.On("ListCurrenciesWithPrices", ctx).Return(currencies, nil).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(out, 1)
	suite.Equal("USD", out[0].Code)
	suite.Require().Len(out[0].Prices, 2)
	suite.Equal("4,460.00", out[0].Prices[0].Value)
	suite.Equal("up", out[0].Prices[0].Sign)
	suite.Equal("4,475.50", out[0].Prices[1].Value)
	suite.Equal("none", out[0].Prices[1].Sign)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetLatest_EmptyStore() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrenciesWithPrices", ctx).Return([]domain.Currency{}, nil).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetLatest_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListCurrenciesWithPrices", ctx).Return(nil, assert.AnError).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *CurrencyServiceTestSuite) TestGetTransactions_GroupsByDayAndComputesCursor() {
	ctx := context.Background()
	currency := &domain.Currency{ID: 1, Code: "USD", Unit: "1$"}
	transactions := []domain.CurrencyTransaction{
		{CurrencyID: 1, Date: day("2024-01-21"), Time: "14:00",
			BuyValue: decimal.RequireFromString("4465"), BuySign: domain.SignUp,
			SellValue: decimal.RequireFromString("4480"), SellSign: domain.SignUp},
		{CurrencyID: 1, Date: day("2024-01-21"), Time: "10:30",
			BuyValue: decimal.RequireFromString("4460"), BuySign: domain.SignNone,
			SellValue: decimal.RequireFromString("4475"), SellSign: domain.SignDown},
		{CurrencyID: 1, Date: day("2024-01-20"), Time: "11:00",
			BuyValue: decimal.RequireFromString("4450"), BuySign: domain.SignDown,
			SellValue: decimal.RequireFromString("4462"), SellSign: domain.SignNone},
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, int64(1)).Return(currency, nil).Once()
	suite.mockRepo.On("ListTransactionsUpTo", ctx, int64(1), day("2024-01-21"), 10).
		Return(transactions, nil).Once()

	resp, err := suite.service.GetTransactions(ctx, dto.GetTransactionsRequest{Date: "2024-01-21", Which: 1, Count: 10})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Data, 2)
	suite.Equal("21/01/2024", resp.Data[0].Date)
	suite.Len(resp.Data[0].Transactions, 2)
	suite.Equal("14:00", resp.Data[0].Transactions[0].Time)
	suite.Equal("20/01/2024", resp.Data[1].Date)
	suite.Len(resp.Data[1].Transactions, 1)

	// Cursor is the calendar day before the oldest returned group.
	suite.Require().NotNil(resp.NextStartDate)
	suite.Equal("2024-01-19", *resp.NextStartDate)

	// Unit is stripped of the "$" marker.
	suite.Equal("1", resp.Data[0].Transactions[0].Unit)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetTransactions_DefaultsApplied() {
	ctx := context.Background()
	currency := &domain.Currency{ID: 1, Code: "USD", Unit: "1$"}
	today, err := time.Parse("2006-01-02", time.Now().UTC().Format("2006-01-02"))
	suite.Require().NoError(err)

	suite.mockRepo.On("FindCurrencyByID", ctx, int64(1)).Return(currency, nil).Once()
	suite.mockRepo.On("ListTransactionsUpTo", ctx, int64(1), today, 10).
		Return([]domain.CurrencyTransaction{}, nil).Once()

	resp, err := suite.service.GetTransactions(ctx, dto.GetTransactionsRequest{})

	suite.Require().NoError(err)
	suite.Nil(resp.NextStartDate)
	suite.Empty(resp.Data)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetTransactions_UnknownCurrencyYieldsEmptyPage() {
	ctx := context.Background()
	suite.mockRepo.On("FindCurrencyByID", ctx, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetTransactions(ctx, dto.GetTransactionsRequest{Date: "2024-01-21", Which: 42})

	suite.Require().NoError(err)
	suite.Nil(resp.NextStartDate)
	suite.Empty(resp.Data)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetTransactions_MalformedDate() {
	ctx := context.Background()

	resp, err := suite.service.GetTransactions(ctx, dto.GetTransactionsRequest{Date: "21/01/2024"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
