package database

import "database/sql"

func CreateUsersTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)
	`)
	return err
}

func CreateProductsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price REAL NOT NULL,
			stock INTEGER NOT NULL DEFAULT 10,
			image_url TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// product_id is deliberately unconstrained: deleting a product keeps its
// sales history, so the column may reference a row that no longer exists.
func CreatePurchasesTable(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS purchases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			buyer_name TEXT NOT NULL,
			cedula TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			product_id INTEGER NOT NULL,
			total_price REAL NOT NULL,
			purchased_at TIMESTAMP NOT NULL
		)
	`); err != nil {
		return err
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_purchases_product_id ON purchases(product_id)`); err != nil {
		return err
	}

	_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_purchases_purchased_at ON purchases(purchased_at)`)
	return err
}
