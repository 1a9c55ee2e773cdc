package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

func newAnalytics(env *testEnv, now time.Time) *AnalyticsService {
	svc := NewAnalyticsService(env.purchases, env.products, env.users, env.log)
	svc.now = func() time.Time { return now }
	return svc
}

func recordPurchase(t *testing.T, env *testEnv, productID int64, price float64, at time.Time) {
	t.Helper()

	purchase := &domain.Purchase{
		BuyerName:   "Ana Pérez",
		Cedula:      "0102030405",
		Email:       "ana@example.com",
		ProductID:   productID,
		TotalPrice:  price,
		PurchasedAt: at,
	}
	require.NoError(t, env.purchases.CreateWithStockDecrement(purchase))
}

func TestAnalyticsService_DashboardStats(t *testing.T) {
	env := newTestEnv(t)

	product := &domain.Product{Name: "RTX 4090", Category: "GPU", Price: 499.99, Stock: 50}
	require.NoError(t, env.products.Create(product))

	_, err := env.authService().Register("ana", "ana@example.com", "secreta123")
	require.NoError(t, err)

	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	recordPurchase(t, env, product.ID, 100, now.Add(-2*time.Hour))              // today
	recordPurchase(t, env, product.ID, 50, now.AddDate(0, 0, -2))               // two days ago
	recordPurchase(t, env, product.ID, 25, now.AddDate(0, 0, -10))              // outside the week
	recordPurchase(t, env, product.ID, 75, now.AddDate(0, 0, -6).Add(time.Hour)) // oldest day in window

	stats, err := newAnalytics(env, now).DashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 250.0, stats.TotalRevenue)
	assert.EqualValues(t, 4, stats.TotalSales)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.Equal(t, 100.0, stats.TodayRevenue)
	assert.EqualValues(t, 1, stats.TodaySales)
}

func TestAnalyticsService_WeekSeriesShape(t *testing.T) {
	env := newTestEnv(t)

	product := &domain.Product{Name: "RTX 4090", Category: "GPU", Price: 499.99, Stock: 50}
	require.NoError(t, env.products.Create(product))

	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	recordPurchase(t, env, product.ID, 100, now.Add(-time.Hour))
	recordPurchase(t, env, product.ID, 40, now.AddDate(0, 0, -3))
	recordPurchase(t, env, product.ID, 60, now.AddDate(0, 0, -3).Add(2*time.Hour))

	stats, err := newAnalytics(env, now).DashboardStats()
	require.NoError(t, err)

	// Exactly seven points, oldest first, zero-filled.
	require.Len(t, stats.WeekSeries, 7)
	assert.Equal(t, "2026-08-24", stats.WeekSeries[0].Day)
	assert.Equal(t, "2026-08-30", stats.WeekSeries[6].Day)

	var total float64
	for _, point := range stats.WeekSeries {
		total += point.Revenue
	}
	assert.Equal(t, 200.0, total)

	assert.Equal(t, 100.0, stats.WeekSeries[6].Revenue)
	assert.Equal(t, 100.0, stats.WeekSeries[3].Revenue)
	assert.Equal(t, 0.0, stats.WeekSeries[1].Revenue)
}

func TestAnalyticsService_EmptyStore(t *testing.T) {
	env := newTestEnv(t)

	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	stats, err := newAnalytics(env, now).DashboardStats()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.TotalSales)
	require.Len(t, stats.WeekSeries, 7)
	for _, point := range stats.WeekSeries {
		assert.Zero(t, point.Revenue)
	}
	assert.Empty(t, stats.TopProducts)
}

func TestAnalyticsService_TopProductsLimitedToFive(t *testing.T) {
	env := newTestEnv(t)

	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		product := &domain.Product{Name: "P", Category: "GPU", Price: 1, Stock: 10}
		require.NoError(t, env.products.Create(product))
		for j := 0; j <= i; j++ {
			recordPurchase(t, env, product.ID, 1, now)
		}
	}

	stats, err := newAnalytics(env, now).DashboardStats()
	require.NoError(t, err)

	require.Len(t, stats.TopProducts, 5)
	assert.EqualValues(t, 6, stats.TopProducts[0].Count)
	assert.EqualValues(t, 2, stats.TopProducts[4].Count)
}

func TestAnalyticsService_ListRecentPurchases(t *testing.T) {
	env := newTestEnv(t)

	product := &domain.Product{Name: "RTX 4090", Category: "GPU", Price: 499.99, Stock: 50}
	require.NoError(t, env.products.Create(product))

	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		recordPurchase(t, env, product.ID, float64(i), now.Add(time.Duration(i)*time.Minute))
	}

	svc := newAnalytics(env, now)

	recent, err := svc.ListRecentPurchases(10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, 11.0, recent[0].TotalPrice)

	// Zero falls back to the dashboard default.
	recent, err = svc.ListRecentPurchases(0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}
