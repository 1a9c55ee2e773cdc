package database

import (
	"database/sql"
	"fmt"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

var seedProducts = []domain.Product{
	{
		Name:        "NVIDIA RTX 4090",
		Category:    "GPU",
		Price:       1999.99,
		Stock:       10,
		ImageURL:    "https://m.media-amazon.com/images/I/7120GgCjCIL._AC_SL1500_.jpg",
		Description: "La tarjeta gráfica más potente del mundo.",
	},
	{
		Name:        "Intel Core i9-14900K",
		Category:    "CPU",
		Price:       589.99,
		Stock:       10,
		ImageURL:    "https://m.media-amazon.com/images/I/61p-lC6h4JL._AC_SL1000_.jpg",
		Description: "Rendimiento extremo para gaming y creación.",
	},
	{
		Name:        "ASUS ROG Maximus Z790",
		Category:    "Motherboard",
		Price:       699.99,
		Stock:       10,
		ImageURL:    "https://m.media-amazon.com/images/I/81I-g4-qRlL._AC_SL1500_.jpg",
		Description: "La base perfecta para tu build de ensueño.",
	},
	{
		Name:        "AMD Ryzen 9 7950X3D",
		Category:    "CPU",
		Price:       649.99,
		Stock:       10,
		ImageURL:    "https://m.media-amazon.com/images/I/51f2hk8lJPL._AC_SL1000_.jpg",
		Description: "El mejor procesador para gaming con 3D V-Cache.",
	},
	{
		Name:        "AMD Radeon RX 7900 XTX",
		Category:    "GPU",
		Price:       999.99,
		Stock:       10,
		ImageURL:    "https://m.media-amazon.com/images/I/71s6VwH7iGL._AC_SL1500_.jpg",
		Description: "Potencia bruta para 4K gaming.",
	},
}

// SeedCatalog inserts the sample hardware catalog, but only into an empty
// store. An operator who starts with SEED_CATALOG=false keeps an empty
// catalog; both policies are supported.
func SeedCatalog(db *sql.DB, log logger.Logger) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}

	if count > 0 {
		log.Debug("catalog not empty, skipping seed", map[string]interface{}{"products": count})
		return nil
	}

	for _, p := range seedProducts {
		if _, err := db.Exec(
			`INSERT INTO products (name, category, price, stock, image_url, description) VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Category, p.Price, p.Stock, p.ImageURL, p.Description,
		); err != nil {
			return fmt.Errorf("seed insert failed: %w", err)
		}
	}

	log.Info("catalog seeded", map[string]interface{}{"products": len(seedProducts)})
	return nil
}
