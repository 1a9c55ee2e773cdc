package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

func seedProduct(t *testing.T, products domain.ProductRepository, stock int) *domain.Product {
	t.Helper()

	product := &domain.Product{Name: "RTX 4090", Category: "GPU", Price: 499.99, Stock: stock}
	require.NoError(t, products.Create(product))
	return product
}

func newPurchase(productID int64, price float64) *domain.Purchase {
	return &domain.Purchase{
		BuyerName:  "Ana Pérez",
		Cedula:     "0102030405",
		Email:      "ana@example.com",
		Phone:      "0991234567",
		ProductID:  productID,
		TotalPrice: price,
	}
}

func TestPurchaseRepository_CreateDecrementsStock(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	product := seedProduct(t, products, 2)

	purchase := newPurchase(product.ID, 499.99)
	require.NoError(t, purchases.CreateWithStockDecrement(purchase))
	require.NotZero(t, purchase.ID)
	assert.False(t, purchase.PurchasedAt.IsZero())

	found, err := products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Stock)
}

func TestPurchaseRepository_OutOfStock(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	product := seedProduct(t, products, 1)

	require.NoError(t, purchases.CreateWithStockDecrement(newPurchase(product.ID, 499.99)))

	err := purchases.CreateWithStockDecrement(newPurchase(product.ID, 499.99))
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	// The rejected attempt must not leave a purchase row behind.
	count, err := purchases.CountAll()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	found, err := products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, found.Stock)
}

func TestPurchaseRepository_ProductMissing(t *testing.T) {
	db, log := newTestDB(t)
	purchases := NewPurchaseRepository(db, log)

	err := purchases.CreateWithStockDecrement(newPurchase(99, 10))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPurchaseRepository_ClientPriceStoredVerbatim(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	// Catalog price is 499.99; the request says 999.99 and that is what
	// gets stored.
	product := seedProduct(t, products, 5)

	purchase := newPurchase(product.ID, 999.99)
	require.NoError(t, purchases.CreateWithStockDecrement(purchase))

	recent, err := purchases.FindRecent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 999.99, recent[0].TotalPrice)
}

func TestPurchaseRepository_FindRecentNewestFirst(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	product := seedProduct(t, products, 10)

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		purchase := newPurchase(product.ID, float64(i+1))
		purchase.PurchasedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, purchases.CreateWithStockDecrement(purchase))
	}

	recent, err := purchases.FindRecent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 3.0, recent[0].TotalPrice)
	assert.Equal(t, 2.0, recent[1].TotalPrice)
}

func TestPurchaseRepository_FindByEmail(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	product := seedProduct(t, products, 10)

	mine := newPurchase(product.ID, 10)
	require.NoError(t, purchases.CreateWithStockDecrement(mine))

	other := newPurchase(product.ID, 20)
	other.Email = "otro@example.com"
	require.NoError(t, purchases.CreateWithStockDecrement(other))

	found, err := purchases.FindByEmail("ana@example.com")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 10.0, found[0].TotalPrice)
}

func TestPurchaseRepository_Aggregates(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	product := seedProduct(t, products, 10)

	day1 := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	for _, p := range []struct {
		price float64
		at    time.Time
	}{
		{100, day1},
		{50, day1.Add(2 * time.Hour)},
		{25, day2},
	} {
		purchase := newPurchase(product.ID, p.price)
		purchase.PurchasedAt = p.at
		require.NoError(t, purchases.CreateWithStockDecrement(purchase))
	}

	total, err := purchases.TotalRevenue()
	require.NoError(t, err)
	assert.Equal(t, 175.0, total)

	dayStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	revenue, err := purchases.RevenueBetween(dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 150.0, revenue)

	count, err := purchases.CountBetween(dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	daily, err := purchases.DailyRevenue(dayStart)
	require.NoError(t, err)
	assert.Equal(t, 150.0, daily["2026-08-24"])
	assert.Equal(t, 25.0, daily["2026-08-26"])
	assert.NotContains(t, daily, "2026-08-25")
}

func TestPurchaseRepository_TopProducts(t *testing.T) {
	db, log := newTestDB(t)
	products := NewProductRepository(db, log)
	purchases := NewPurchaseRepository(db, log)

	popular := seedProduct(t, products, 10)
	rare := &domain.Product{Name: "RX 7900 XTX", Category: "GPU", Price: 999.99, Stock: 10}
	require.NoError(t, products.Create(rare))

	for i := 0; i < 3; i++ {
		require.NoError(t, purchases.CreateWithStockDecrement(newPurchase(popular.ID, 1)))
	}
	require.NoError(t, purchases.CreateWithStockDecrement(newPurchase(rare.ID, 1)))

	top, err := purchases.TopProducts(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, popular.ID, top[0].ProductID)
	assert.EqualValues(t, 3, top[0].Count)
	assert.Equal(t, "RTX 4090", top[0].Name)

	// Deleting the product keeps its sales history in the ranking.
	require.NoError(t, products.Delete(popular.ID))
	top, err = purchases.TopProducts(5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, popular.ID, top[0].ProductID)
	assert.Equal(t, "", top[0].Name)
}
