package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
	"github.com/Ordones18/Ponte-Once-Store/pkg/metrics"
)

type UserRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, logger logger.Logger) domain.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) FindByID(id int64) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE id = ?`

	var user domain.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to find user by id", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE email = ?`

	var user domain.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to find user by email", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) Create(user *domain.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	user.CreatedAt = time.Now().UTC()

	result, err := r.db.Exec(
		query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
	)

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return domain.ErrDuplicateEmail
		}
		r.logger.Error("failed to create user", map[string]interface{}{"email": user.Email, "error": err.Error()})
		return fmt.Errorf("user creation failed: %w", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	metrics.RecordDatabaseOperation("insert", "user")
	return nil
}

func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	_, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		r.logger.Error("failed to update password", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("password update failed: %w", err)
	}

	metrics.RecordDatabaseOperation("update", "user")
	return nil
}

func (r *UserRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count users", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("user count failed: %w", err)
	}

	return count, nil
}
