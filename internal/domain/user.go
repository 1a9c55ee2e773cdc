package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	FindByID(id int64) (*User, error)
	FindByEmail(email string) (*User, error)
	Create(user *User) error
	UpdatePassword(id int64, passwordHash string) error
	CountAll() (int64, error)
}

// Session is the authenticated identity a request carries after the
// session cookie has been verified.
type Session struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

type AuthService interface {
	Register(username, email, password string) (*User, error)
	Login(email, password string) (*User, string, error)
	ParseSession(token string) (*Session, error)
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
}
