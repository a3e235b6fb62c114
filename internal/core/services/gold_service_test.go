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
)

type GoldServiceTestSuite struct {
	suite.Suite
	mockRepo *MockGoldRepository
	service  portssvc.GoldSvcFacade
}

func (suite *GoldServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockGoldRepository)
	suite.service = services.NewGoldService(suite.mockRepo)
}

func (suite *GoldServiceTestSuite) TestGetLatest_Success() {
	ctx := context.Background()
	quotedAt := time.Date(2024, 1, 21, 10, 30, 0, 0, time.UTC)
	golds := []domain.Gold{
		{
			ID: 1, Type: domain.GoldTypeWorld, Unit: "1 oz", Time: quotedAt,
			Prices: []domain.GoldPrice{
				{GoldID: 1, Title: "OZ", Value: decimal.RequireFromString("2020.5"), Sign: domain.SignUp},
			},
		},
	}
	suite.mockRepo.On("ListGoldsWithPrices", ctx).Return(golds, nil).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(out, 1)
	suite.Equal("world", out[0].Type)
	suite.Equal("2024-01-21T10:30:00Z", out[0].Time)
	suite.Require().Len(out[0].Prices, 1)
	suite.Equal("OZ", out[0].Prices[0].Title)
	suite.Equal("2,020.50", out[0].Prices[0].Value)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GoldServiceTestSuite) TestGetLatest_EmptyStore() {
	ctx := context.Background()
	suite.mockRepo.On("ListGoldsWithPrices", ctx).Return([]domain.Gold{}, nil).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GoldServiceTestSuite) TestGetLatest_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListGoldsWithPrices", ctx).Return(nil, assert.AnError).Once()

	out, err := suite.service.GetLatest(ctx)

	suite.Require().Error(err)
	suite.Nil(out)
	suite.ErrorIs(err, assert.AnError)
}

func TestGoldService(t *testing.T) {
	suite.Run(t, new(GoldServiceTestSuite))
}
