package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Ordones18/Ponte-Once-Store/internal/api/middleware"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

const recentPurchasesLimit = 10

type AdminHandler struct {
	analytics domain.AnalyticsService
	catalog   domain.CatalogService
	logger    logger.Logger
}

func NewAdminHandler(analytics domain.AnalyticsService, catalog domain.CatalogService, logger logger.Logger) *AdminHandler {
	return &AdminHandler{
		analytics: analytics,
		catalog:   catalog,
		logger:    logger,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r); err != nil {
		writeError(w, err)
		return
	}

	stats, err := h.analytics.DashboardStats()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard stats failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", stats)
}

func (h *AdminHandler) RecentPurchases(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r); err != nil {
		writeError(w, err)
		return
	}

	limit := recentPurchasesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	purchases, err := h.analytics.ListRecentPurchases(limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "recent purchases failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", purchases)
}

type createProductRequest struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Stock       json.Number `json:"stock"`
	ImageURL    string      `json:"image_url"`
	Description string      `json:"description"`
}

// CreateProduct coerces price and stock to numbers and persists whatever
// it gets; there is deliberately no business-rule validation here.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r); err != nil {
		writeError(w, err)
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la solicitud inválido")
		return
	}

	price, err := req.Price.Float64()
	if err != nil {
		writeBadRequest(w, "el precio debe ser un número")
		return
	}

	stock, err := strconv.Atoi(req.Stock.String())
	if err != nil {
		writeBadRequest(w, "el stock debe ser un número entero")
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       price,
		Stock:       stock,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := h.catalog.CreateProduct(product); err != nil {
		h.logger.ErrorContext(r.Context(), "product creation failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Producto agregado exitosamente.", product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireAdmin(r); err != nil {
		writeError(w, err)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "identificador de producto inválido")
		return
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Producto eliminado.", nil)
}

func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/admin/dashboard", h.Dashboard)
	mux.HandleFunc("GET /api/admin/purchases", h.RecentPurchases)
	mux.HandleFunc("POST /api/admin/products", h.CreateProduct)
	mux.HandleFunc("DELETE /api/admin/products/{id}", h.DeleteProduct)
}
