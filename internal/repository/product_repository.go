package repository

import (
	"database/sql"
	"fmt"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
	"github.com/Ordones18/Ponte-Once-Store/pkg/metrics"
)

type ProductRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewProductRepository(db *sql.DB, logger logger.Logger) domain.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(id int64) (*domain.Product, error) {
	query := `SELECT id, name, category, price, stock, image_url, description FROM products WHERE id = ?`

	var product domain.Product
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.Stock,
		&product.ImageURL,
		&product.Description,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to find product by id", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("product lookup failed: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) FindAll() ([]*domain.Product, error) {
	query := `SELECT id, name, category, price, stock, image_url, description FROM products ORDER BY id`

	return r.queryProducts(query)
}

func (r *ProductRepository) FindFeatured(limit int) ([]*domain.Product, error) {
	query := `SELECT id, name, category, price, stock, image_url, description FROM products ORDER BY id LIMIT ?`

	return r.queryProducts(query, limit)
}

func (r *ProductRepository) queryProducts(query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("failed to list products", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("product listing failed: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Price,
			&product.Stock,
			&product.ImageURL,
			&product.Description,
		); err != nil {
			return nil, fmt.Errorf("product listing failed: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product listing failed: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Create(product *domain.Product) error {
	query := `
		INSERT INTO products (name, category, price, stock, image_url, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		product.Name,
		product.Category,
		product.Price,
		product.Stock,
		product.ImageURL,
		product.Description,
	)

	if err != nil {
		r.logger.Error("failed to create product", map[string]interface{}{"name": product.Name, "error": err.Error()})
		return fmt.Errorf("product creation failed: %w", err)
	}

	product.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("product creation failed: %w", err)
	}

	metrics.RecordDatabaseOperation("insert", "product")
	return nil
}

func (r *ProductRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete product", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("product deletion failed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("product deletion failed: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}

	metrics.RecordDatabaseOperation("delete", "product")
	return nil
}

func (r *ProductRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count products", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("product count failed: %w", err)
	}

	return count, nil
}
