package domain

// DailyRevenuePoint is one day of the trailing-week revenue series.
type DailyRevenuePoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

type DashboardStats struct {
	TotalRevenue  float64             `json:"total_revenue"`
	TotalSales    int64               `json:"total_sales"`
	TotalProducts int64               `json:"total_products"`
	TotalUsers    int64               `json:"total_users"`
	TodayRevenue  float64             `json:"today_revenue"`
	TodaySales    int64               `json:"today_sales"`
	WeekSeries    []DailyRevenuePoint `json:"week_series"`
	TopProducts   []*ProductSales     `json:"top_products"`
}

type AnalyticsService interface {
	DashboardStats() (*DashboardStats, error)
	ListRecentPurchases(limit int) ([]*Purchase, error)
	ListPurchasesByEmail(email string) ([]*Purchase, error)
}
