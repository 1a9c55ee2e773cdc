package api

import (
	"net/http"
	"strconv"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

const featuredLimit = 3

type CatalogHandler struct {
	catalog domain.CatalogService
	logger  logger.Logger
}

func NewCatalogHandler(catalog domain.CatalogService, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Featured backs the landing page: the first three products in catalog
// order.
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListFeatured(featuredLimit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "featured listing failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", products)
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAll()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "catalog listing failed", map[string]interface{}{"error": err.Error()})
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", products)
}

func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "identificador de producto inválido")
		return
	}

	product, err := h.catalog.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", product)
}

func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/featured", h.Featured)
	mux.HandleFunc("GET /api/catalog", h.List)
	mux.HandleFunc("GET /api/products/{id}", h.GetByID)
}
