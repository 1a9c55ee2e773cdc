package service

import (
	"fmt"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

const (
	weekSeriesDays   = 7
	topProductsLimit = 5
	dayFormat        = "2006-01-02"
)

type AnalyticsService struct {
	purchases domain.PurchaseRepository
	products  domain.ProductRepository
	users     domain.UserRepository
	logger    logger.Logger
	now       func() time.Time
}

func NewAnalyticsService(
	purchases domain.PurchaseRepository,
	products domain.ProductRepository,
	users domain.UserRepository,
	logger logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		purchases: purchases,
		products:  products,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// DashboardStats computes every aggregate fresh against UTC "now"; nothing
// on this path is cached.
func (s *AnalyticsService) DashboardStats() (*domain.DashboardStats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -(weekSeriesDays - 1))

	stats := &domain.DashboardStats{}

	var err error
	if stats.TotalRevenue, err = s.purchases.TotalRevenue(); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	if stats.TotalSales, err = s.purchases.CountAll(); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	if stats.TotalProducts, err = s.products.CountAll(); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	if stats.TotalUsers, err = s.users.CountAll(); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	if stats.TodayRevenue, err = s.purchases.RevenueBetween(today, tomorrow); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}
	if stats.TodaySales, err = s.purchases.CountBetween(today, tomorrow); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}

	daily, err := s.purchases.DailyRevenue(weekStart)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}

	// Exactly seven points, oldest first, zero-filled for silent days.
	stats.WeekSeries = make([]domain.DailyRevenuePoint, 0, weekSeriesDays)
	for i := 0; i < weekSeriesDays; i++ {
		day := weekStart.AddDate(0, 0, i).Format(dayFormat)
		stats.WeekSeries = append(stats.WeekSeries, domain.DailyRevenuePoint{
			Day:     day,
			Revenue: daily[day],
		})
	}

	if stats.TopProducts, err = s.purchases.TopProducts(topProductsLimit); err != nil {
		return nil, fmt.Errorf("dashboard stats failed: %w", err)
	}

	return stats, nil
}

func (s *AnalyticsService) ListRecentPurchases(limit int) ([]*domain.Purchase, error) {
	if limit <= 0 {
		limit = 10
	}

	purchases, err := s.purchases.FindRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("recent purchases failed: %w", err)
	}

	return purchases, nil
}

// ListPurchasesByEmail backs the buyer's profile page.
func (s *AnalyticsService) ListPurchasesByEmail(email string) ([]*domain.Purchase, error) {
	purchases, err := s.purchases.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("profile purchases failed: %w", err)
	}

	return purchases, nil
}
