package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
)

// envelope mirrors the {message, status} JSON shape the storefront's
// frontend has always consumed.
type envelope struct {
	Message string      `json:"message,omitempty"`
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, envelope{Message: message, Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	message := "error interno del servidor"

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		code, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		code, message = http.StatusNotFound, "no encontramos una cuenta con ese correo"
	case errors.Is(err, domain.ErrProductNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrOutOfStock):
		code, message = http.StatusBadRequest, "Error: Producto agotado."
	case errors.Is(err, domain.ErrInvalidOrExpiredToken):
		code, message = http.StatusBadRequest, err.Error()
	}

	writeJSON(w, code, envelope{Message: message, Status: "error"})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Message: message, Status: "error"})
}
