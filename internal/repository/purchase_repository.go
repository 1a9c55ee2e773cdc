package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
	"github.com/Ordones18/Ponte-Once-Store/pkg/metrics"
)

type PurchaseRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPurchaseRepository(db *sql.DB, logger logger.Logger) domain.PurchaseRepository {
	return &PurchaseRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithStockDecrement commits the stock decrement and the purchase row
// together. The conditional UPDATE is what prevents oversell: it only
// succeeds while stock is positive, so two buyers racing over the last unit
// cannot both get through.
func (r *PurchaseRepository) CreateWithStockDecrement(purchase *domain.Purchase) error {
	tx, err := r.db.Begin()
	if err != nil {
		r.logger.Error("failed to begin checkout transaction", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("checkout failed: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE products SET stock = stock - 1 WHERE id = ? AND stock > 0`, purchase.ProductID)
	if err != nil {
		r.logger.Error("failed to decrement stock", map[string]interface{}{"product_id": purchase.ProductID, "error": err.Error()})
		return fmt.Errorf("checkout failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM products WHERE id = ?`, purchase.ProductID).Scan(&exists); err != nil {
			return fmt.Errorf("checkout failed: %w", err)
		}
		if exists == 0 {
			return domain.ErrProductNotFound
		}
		return domain.ErrOutOfStock
	}

	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now().UTC()
	}

	insert, err := tx.Exec(`
		INSERT INTO purchases (buyer_name, cedula, email, phone, product_id, total_price, purchased_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		purchase.BuyerName,
		purchase.Cedula,
		purchase.Email,
		purchase.Phone,
		purchase.ProductID,
		purchase.TotalPrice,
		purchase.PurchasedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert purchase", map[string]interface{}{"product_id": purchase.ProductID, "error": err.Error()})
		return fmt.Errorf("checkout failed: %w", err)
	}

	purchase.ID, err = insert.LastInsertId()
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit checkout transaction", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("checkout failed: %w", err)
	}

	metrics.RecordDatabaseOperation("insert", "purchase")
	return nil
}

func (r *PurchaseRepository) FindRecent(limit int) ([]*domain.Purchase, error) {
	query := `
		SELECT id, buyer_name, cedula, email, phone, product_id, total_price, purchased_at
		FROM purchases ORDER BY purchased_at DESC, id DESC LIMIT ?
	`

	return r.queryPurchases(query, limit)
}

func (r *PurchaseRepository) FindByEmail(email string) ([]*domain.Purchase, error) {
	query := `
		SELECT id, buyer_name, cedula, email, phone, product_id, total_price, purchased_at
		FROM purchases WHERE email = ? ORDER BY purchased_at DESC, id DESC
	`

	return r.queryPurchases(query, email)
}

func (r *PurchaseRepository) queryPurchases(query string, args ...interface{}) ([]*domain.Purchase, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list purchases", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("purchase listing failed: %w", err)
	}
	defer rows.Close()

	purchases := make([]*domain.Purchase, 0)
	for rows.Next() {
		var purchase domain.Purchase
		if err := rows.Scan(
			&purchase.ID,
			&purchase.BuyerName,
			&purchase.Cedula,
			&purchase.Email,
			&purchase.Phone,
			&purchase.ProductID,
			&purchase.TotalPrice,
			&purchase.PurchasedAt,
		); err != nil {
			return nil, fmt.Errorf("purchase listing failed: %w", err)
		}
		purchases = append(purchases, &purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchase listing failed: %w", err)
	}

	return purchases, nil
}

func (r *PurchaseRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM purchases`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count purchases", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("purchase count failed: %w", err)
	}

	return count, nil
}

func (r *PurchaseRepository) CountBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM purchases WHERE purchased_at >= ? AND purchased_at < ?`,
		from, to,
	).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count purchases in range", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("purchase count failed: %w", err)
	}

	return count, nil
}

func (r *PurchaseRepository) TotalRevenue() (float64, error) {
	var revenue float64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(total_price), 0) FROM purchases`).Scan(&revenue)
	if err != nil {
		r.logger.Error("failed to sum revenue", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("revenue query failed: %w", err)
	}

	return revenue, nil
}

func (r *PurchaseRepository) RevenueBetween(from, to time.Time) (float64, error) {
	var revenue float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(total_price), 0) FROM purchases WHERE purchased_at >= ? AND purchased_at < ?`,
		from, to,
	).Scan(&revenue)
	if err != nil {
		r.logger.Error("failed to sum revenue in range", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("revenue query failed: %w", err)
	}

	return revenue, nil
}

func (r *PurchaseRepository) DailyRevenue(since time.Time) (map[string]float64, error) {
	query := `
		SELECT strftime('%Y-%m-%d', purchased_at), COALESCE(SUM(total_price), 0)
		FROM purchases
		WHERE purchased_at >= ?
		GROUP BY strftime('%Y-%m-%d', purchased_at)
	`

	rows, err := r.db.Query(query, since)
	if err != nil {
		r.logger.Error("failed to group daily revenue", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("daily revenue query failed: %w", err)
	}
	defer rows.Close()

	revenue := make(map[string]float64)
	for rows.Next() {
		var day string
		var total float64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("daily revenue query failed: %w", err)
		}
		revenue[day] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily revenue query failed: %w", err)
	}

	return revenue, nil
}

// TopProducts ranks products by purchase count. Products deleted from the
// catalog keep their sales history; the LEFT JOIN tolerates the orphaned
// product_id and reports the id with an empty name.
func (r *PurchaseRepository) TopProducts(limit int) ([]*domain.ProductSales, error) {
	query := `
		SELECT pu.product_id, COALESCE(pr.name, ''), COUNT(*) AS sales
		FROM purchases pu
		LEFT JOIN products pr ON pr.id = pu.product_id
		GROUP BY pu.product_id
		ORDER BY sales DESC, pu.product_id
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Error("failed to rank top products", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("top products query failed: %w", err)
	}
	defer rows.Close()

	top := make([]*domain.ProductSales, 0, limit)
	for rows.Next() {
		var sales domain.ProductSales
		if err := rows.Scan(&sales.ProductID, &sales.Name, &sales.Count); err != nil {
			return nil, fmt.Errorf("top products query failed: %w", err)
		}
		top = append(top, &sales)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top products query failed: %w", err)
	}

	return top, nil
}
