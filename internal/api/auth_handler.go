package api

import (
	"encoding/json"
	"net/http"

	"github.com/Ordones18/Ponte-Once-Store/internal/api/middleware"
	"github.com/Ordones18/Ponte-Once-Store/internal/config"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type AuthHandler struct {
	auth      domain.AuthService
	analytics domain.AnalyticsService
	cfg       *config.Config
	logger    logger.Logger

	registerLimiter *middleware.RateLimiter
	loginLimiter    *middleware.RateLimiter
}

func NewAuthHandler(
	auth domain.AuthService,
	analytics domain.AnalyticsService,
	cfg *config.Config,
	logger logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:            auth,
		analytics:       analytics,
		cfg:             cfg,
		logger:          logger,
		registerLimiter: middleware.NewRateLimiter(cfg.Rate.RegisterPerMinute, logger),
		loginLimiter:    middleware.NewRateLimiter(cfg.Rate.LoginPerMinute, logger),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeBadRequest(w, "usuario, correo y contraseña son obligatorios")
		return
	}

	user, err := h.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "registration rejected", map[string]interface{}{"email": req.Email, "error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Registro exitoso. Por favor inicia sesión.", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.cfg.Auth.SessionTTL.Seconds())))
	writeSuccess(w, http.StatusOK, "", user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeSuccess(w, http.StatusOK, "sesión cerrada", nil)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cfg.IsProduction(),
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	if err := h.auth.RequestPasswordReset(req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Te hemos enviado un enlace de recuperación a tu correo.", nil)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	if req.Password == "" {
		writeBadRequest(w, "la contraseña es obligatoria")
		return
	}

	if err := h.auth.ResetPassword(token, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Tu contraseña ha sido actualizada.", nil)
}

// Profile lists the purchases tied to the authenticated account's email,
// newest first.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.RequireUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	purchases, err := h.analytics.ListPurchasesByEmail(session.Email)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "profile listing failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", purchases)
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.registerLimiter.Wrap(h.Register))
	mux.HandleFunc("POST /api/auth/login", h.loginLimiter.Wrap(h.Login))
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("POST /api/auth/forgot_password", h.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset_password/{token}", h.ResetPassword)
	mux.HandleFunc("GET /api/profile", h.Profile)
}
