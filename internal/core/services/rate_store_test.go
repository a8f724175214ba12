package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/merchant_payments/internal/core/domain"
	"github.com/SscSPs/merchant_payments/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RateStoreTestSuite struct {
	suite.Suite
	mockRepo  *MockConversionRateRepository
	mockCache *MockRateCache
	store     *services.RateStore
}

func (suite *RateStoreTestSuite) SetupTest() {
	suite.mockRepo = new(MockConversionRateRepository)
	suite.mockCache = new(MockRateCache)
	suite.store = services.NewRateStore(suite.mockRepo, services.WithRateCache(suite.mockCache))
}

func (suite *RateStoreTestSuite) TestGetRates_DefaultsOnMiss() {
	rates := suite.store.GetRates()
	suite.Require().Len(rates, 1)
	suite.Equal(domain.CurrencyCode("XOF"), rates[0].FromCurrency)
	suite.Equal(domain.CurrencyCode("USD"), rates[0].ToCurrency)
	suite.True(suite.store.RefreshedAt().IsZero())
}

func (suite *RateStoreTestSuite) TestGetRates_CustomDefaults() {
	store := services.NewRateStore(nil, services.WithDefaultRates([]domain.ConversionRate{rate("eur", "usd", "1.25", "0.8")}))
	rates := store.GetRates()
	suite.Require().Len(rates, 1)
	suite.Equal(domain.CurrencyCode("EUR"), rates[0].FromCurrency)
}

func (suite *RateStoreTestSuite) TestWarm_LoadsCache() {
	ctx := context.Background()
	cached := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockCache.On("Load", ctx).Return(cached, nil).Once()

	suite.store.Warm(ctx)

	rates := suite.store.GetRates()
	suite.Require().Len(rates, 1)
	suite.Equal(domain.CurrencyCode("EUR"), rates[0].FromCurrency)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *RateStoreTestSuite) TestWarm_CacheErrorKeepsDefaults() {
	ctx := context.Background()
	suite.mockCache.On("Load", ctx).Return(nil, errors.New("redis down")).Once()

	suite.store.Warm(ctx)

	rates := suite.store.GetRates()
	suite.Require().Len(rates, 1)
	suite.Equal(domain.CurrencyCode("XOF"), rates[0].FromCurrency)
}

func (suite *RateStoreTestSuite) TestRefresh_ReplacesSnapshotAndWritesCache() {
	ctx := context.Background()
	fresh := []domain.ConversionRate{rate("xof", "usd", "0.0017", "588")}
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil).Once()
	suite.mockCache.On("Store", ctx, mock.MatchedBy(func(rates []domain.ConversionRate) bool {
		return len(rates) == 1 && rates[0].FromCurrency == "XOF"
	})).Return(nil).Once()

	got, err := suite.store.Refresh(ctx)
	suite.Require().NoError(err)
	suite.Len(got, 1)

	r, ok := suite.store.FindRate(suite.store.GetRates(), "XOF", "USD")
	suite.True(ok)
	suite.True(dec("0.0017").Equal(r))
	suite.False(suite.store.RefreshedAt().IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *RateStoreTestSuite) TestRefresh_CacheWriteFailureIsNotFatal() {
	ctx := context.Background()
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil).Once()
	suite.mockCache.On("Store", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	_, err := suite.store.Refresh(ctx)
	suite.NoError(err)
	suite.Equal(domain.CurrencyCode("EUR"), suite.store.GetRates()[0].FromCurrency)
}

func (suite *RateStoreTestSuite) TestRefresh_EmptyResultKeepsSnapshot() {
	ctx := context.Background()
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return([]domain.ConversionRate{}, nil).Once()

	got, err := suite.store.Refresh(ctx)
	suite.NoError(err)
	suite.Empty(got)
	suite.Equal(domain.CurrencyCode("XOF"), suite.store.GetRates()[0].FromCurrency)
	suite.mockCache.AssertNotCalled(suite.T(), "Store", mock.Anything, mock.Anything)
}

func (suite *RateStoreTestSuite) TestLiveRates_SourceFailureReturnsNil() {
	ctx := context.Background()
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(nil, errors.New("db down")).Once()

	suite.Nil(suite.store.LiveRates(ctx))
	suite.Len(suite.store.GetRates(), 1)
}

func (suite *RateStoreTestSuite) TestLiveRates_ReusesRecentRead() {
	ctx := context.Background()
	store := services.NewRateStore(suite.mockRepo, services.WithRateCache(suite.mockCache), services.WithLiveRateMaxAge(time.Hour))
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil).Once()
	suite.mockCache.On("Store", ctx, fresh).Return(nil).Once()

	first := store.LiveRates(ctx)
	second := store.LiveRates(ctx)

	suite.Equal(fresh, first)
	suite.Equal(fresh, second)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListConversionRates", 1)
	suite.mockCache.AssertNumberOfCalls(suite.T(), "Store", 1)
}

func (suite *RateStoreTestSuite) TestLiveRates_StaleReadGoesToSource() {
	ctx := context.Background()
	store := services.NewRateStore(suite.mockRepo, services.WithRateCache(suite.mockCache), services.WithLiveRateMaxAge(time.Nanosecond))
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil)
	suite.mockCache.On("Store", ctx, fresh).Return(nil)

	store.LiveRates(ctx)
	time.Sleep(time.Millisecond)
	store.LiveRates(ctx)

	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListConversionRates", 2)
}

func (suite *RateStoreTestSuite) TestLiveRates_WarmedCacheIsNotLive() {
	ctx := context.Background()
	store := services.NewRateStore(suite.mockRepo, services.WithRateCache(suite.mockCache), services.WithLiveRateMaxAge(time.Hour))
	cached := []domain.ConversionRate{rate("XOF", "USD", "0.0016", "625")}
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockCache.On("Load", ctx).Return(cached, nil).Once()
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil).Once()
	suite.mockCache.On("Store", ctx, fresh).Return(nil).Once()

	store.Warm(ctx)

	suite.Equal(fresh, store.LiveRates(ctx))
}

func (suite *RateStoreTestSuite) TestRefresh_WithoutSource() {
	store := services.NewRateStore(nil)
	_, err := store.Refresh(context.Background())
	suite.Error(err)
	suite.Nil(store.LiveRates(context.Background()))
}

func (suite *RateStoreTestSuite) TestGetRates_ReturnsCopy() {
	rates := suite.store.GetRates()
	rates[0].FromCurrency = "EUR"
	suite.Equal(domain.CurrencyCode("XOF"), suite.store.GetRates()[0].FromCurrency)
}

func (suite *RateStoreTestSuite) TestStartAutoRefresh() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockRepo.On("ListConversionRates", mock.Anything, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil)
	suite.mockCache.On("Store", mock.Anything, mock.Anything).Return(nil)

	suite.store.StartAutoRefresh(ctx, 10*time.Millisecond)

	suite.Eventually(func() bool {
		return !suite.store.RefreshedAt().IsZero()
	}, time.Second, 10*time.Millisecond)
}

func (suite *RateStoreTestSuite) TestConcurrentReadsAndRefreshes() {
	ctx := context.Background()
	fresh := []domain.ConversionRate{rate("EUR", "USD", "1.25", "0.8")}
	suite.mockRepo.On("ListConversionRates", ctx, (*domain.CurrencyCode)(nil), (*domain.CurrencyCode)(nil)).Return(fresh, nil)
	suite.mockCache.On("Store", ctx, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = suite.store.Refresh(ctx)
		}()
		go func() {
			defer wg.Done()
			suite.NotEmpty(suite.store.GetRates())
		}()
	}
	wg.Wait()
}

func TestRateStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RateStoreTestSuite))
}
