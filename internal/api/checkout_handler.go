package api

import (
	"encoding/json"
	"net/http"

	"github.com/Ordones18/Ponte-Once-Store/internal/api/middleware"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type CheckoutHandler struct {
	checkout domain.CheckoutService
	logger   logger.Logger
}

func NewCheckoutHandler(checkout domain.CheckoutService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// Buy requires a session, but the contact details in the payload are the
// buyer's to choose; the purchase email may differ from the account email.
func (h *CheckoutHandler) Buy(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r); err != nil {
		writeError(w, err)
		return
	}

	var req domain.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	if req.ProductID == 0 || req.Name == "" || req.Cedula == "" || req.Email == "" {
		writeBadRequest(w, "faltan datos del comprador")
		return
	}

	purchase, err := h.checkout.Buy(&req)
	if err != nil {
		h.logger.WarnContext(r.Context(), "checkout rejected", map[string]interface{}{
			"product_id": req.ProductID,
			"error":      err.Error(),
		})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Compra procesada correctamente", purchase)
}

func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/buy", h.Buy)
}
