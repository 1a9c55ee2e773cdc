package domain

import "errors"

var (
	ErrDuplicateEmail        = errors.New("el correo ya está registrado")
	ErrInvalidCredentials    = errors.New("credenciales incorrectas")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrOutOfStock            = errors.New("producto agotado")
	ErrInvalidOrExpiredToken = errors.New("el enlace es inválido o ha expirado")
	ErrUnauthorized          = errors.New("debes iniciar sesión")
	ErrForbidden             = errors.New("se requieren permisos de administrador")
	ErrNotificationDelivery  = errors.New("no se pudo enviar el correo")
)
