package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type MigrationService struct {
	db     *sql.DB
	logger logger.Logger
}

func NewMigrationService(db *sql.DB, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		logger: logger,
	}
}

func (m *MigrationService) InitMigrationTable() error {
	query := `
    CREATE TABLE IF NOT EXISTS migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE,
        applied_at TIMESTAMP NOT NULL
    )
    `

	_, err := m.db.Exec(query)
	if err != nil {
		m.logger.Error("failed to create migrations table", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM migrations WHERE name = ?`
	err := m.db.QueryRow(query, name).Scan(&count)
	if err != nil {
		m.logger.Error("failed to check migration state", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) ApplyMigration(name string, migrationFunc func(*sql.Tx) error) error {
	applied, err := m.IsMigrationApplied(name)
	if err != nil {
		return err
	}

	if applied {
		m.logger.Debug("migration already applied", map[string]interface{}{"name": name})
		return nil
	}

	m.logger.Info("applying migration", map[string]interface{}{"name": name})

	tx, err := m.db.Begin()
	if err != nil {
		return err
	}

	if err := migrationFunc(tx); err != nil {
		tx.Rollback()
		m.logger.Error("migration failed, rolled back", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	if _, err := tx.Exec(`INSERT INTO migrations (name, applied_at) VALUES (?, ?)`, name, time.Now().UTC()); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		m.logger.Error("failed to commit migration", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) RunMigrations() error {
	m.logger.Info("running migrations", map[string]interface{}{})

	if err := m.InitMigrationTable(); err != nil {
		return fmt.Errorf("migrations table init failed: %w", err)
	}

	migrations := []struct {
		Name string
		Func func(*sql.Tx) error
	}{
		{"create_users_table", CreateUsersTable},
		{"create_products_table", CreateProductsTable},
		{"create_purchases_table", CreatePurchasesTable},
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(migration.Name, migration.Func); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
	}

	m.logger.Info("migrations complete", map[string]interface{}{"count": len(migrations)})
	return nil
}
