package domain

import "time"

// Purchase is immutable once created. TotalPrice is whatever the buyer's
// request carried; it is not re-derived from the product price.
type Purchase struct {
	ID          int64     `json:"id"`
	BuyerName   string    `json:"buyer_name"`
	Cedula      string    `json:"cedula"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	ProductID   int64     `json:"product_id"`
	TotalPrice  float64   `json:"total_price"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// ProductSales pairs a product with how many times it has been bought.
type ProductSales struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type PurchaseRepository interface {
	// CreateWithStockDecrement inserts the purchase and decrements the
	// product's stock in one transaction. Returns ErrOutOfStock when the
	// product has no stock left, ErrProductNotFound when it does not exist.
	CreateWithStockDecrement(purchase *Purchase) error

	FindRecent(limit int) ([]*Purchase, error)
	FindByEmail(email string) ([]*Purchase, error)
	CountAll() (int64, error)
	CountBetween(from, to time.Time) (int64, error)
	TotalRevenue() (float64, error)
	RevenueBetween(from, to time.Time) (float64, error)
	// DailyRevenue returns revenue keyed by UTC calendar day ("2006-01-02")
	// for purchases at or after since.
	DailyRevenue(since time.Time) (map[string]float64, error)
	TopProducts(limit int) ([]*ProductSales, error)
}

type BuyRequest struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Cedula    string  `json:"cedula"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Price     float64 `json:"price"`
}

type CheckoutService interface {
	Buy(req *BuyRequest) (*Purchase, error)
}
