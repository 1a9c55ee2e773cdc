package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ordones18/Ponte-Once-Store/internal/config"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/internal/notification"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

// resetPurpose is stamped into reset tokens; a token minted for any other
// purpose never validates.
const resetPurpose = "email-confirm"

type AuthService struct {
	repo       domain.UserRepository
	dispatcher domain.EmailDispatcher
	mailer     *notification.Mailer
	cfg        config.AuthConfig
	logger     logger.Logger
}

func NewAuthService(
	repo domain.UserRepository,
	dispatcher domain.EmailDispatcher,
	mailer *notification.Mailer,
	cfg config.AuthConfig,
	logger logger.Logger,
) domain.AuthService {
	return &AuthService{
		repo:       repo,
		dispatcher: dispatcher,
		mailer:     mailer,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *AuthService) Register(username, email, password string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(user); err != nil {
		// The unique index is the authority; the pre-check above only
		// narrows the race window.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("user registered", map[string]interface{}{"user_id": user.ID, "email": user.Email})

	// Welcome mail is best-effort; registration already succeeded.
	s.dispatcher.Enqueue(s.mailer.Welcome(user.Username, user.Email))

	return user, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("login failed: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.signSession(user)
	if err != nil {
		s.logger.Error("failed to sign session", map[string]interface{}{"user_id": user.ID, "error": err.Error()})
		return nil, "", fmt.Errorf("login failed: %w", err)
	}

	s.logger.Info("user logged in", map[string]interface{}{"user_id": user.ID})
	return user, token, nil
}

func (s *AuthService) signSession(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"admin": user.IsAdmin,
		"typ":   "session",
		"exp":   time.Now().Add(s.cfg.SessionTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
}

func (s *AuthService) ParseSession(token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if claims["typ"] != "session" {
		return nil, domain.ErrUnauthorized
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	admin, _ := claims["admin"].(bool)

	return &domain.Session{
		UserID:  int64(sub),
		Email:   email,
		IsAdmin: admin,
	}, nil
}

func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("password reset request failed: %w", err)
	}
	if user == nil {
		// Callers are told no account matched. Known information
		// disclosure, kept for contract parity with the frontend.
		return domain.ErrUserNotFound
	}

	token, err := s.signResetToken(email)
	if err != nil {
		s.logger.Error("failed to sign reset token", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("password reset request failed: %w", err)
	}

	if !s.dispatcher.Enqueue(s.mailer.PasswordReset(user.Username, user.Email, token)) {
		return domain.ErrNotificationDelivery
	}

	s.logger.Info("password reset requested", map[string]interface{}{"user_id": user.ID})
	return nil
}

func (s *AuthService) signResetToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":     email,
		"typ":     "reset",
		"purpose": resetPurpose,
		"exp":     time.Now().Add(s.cfg.ResetTokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SecretKey))
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return domain.ErrInvalidOrExpiredToken
	}

	if claims["typ"] != "reset" || claims["purpose"] != resetPurpose {
		return domain.ErrInvalidOrExpiredToken
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return domain.ErrInvalidOrExpiredToken
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	if user == nil {
		return domain.ErrInvalidOrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	if err := s.repo.UpdatePassword(user.ID, string(hash)); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}

	s.logger.Info("password reset completed", map[string]interface{}{"user_id": user.ID})
	return nil
}
