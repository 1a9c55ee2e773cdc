package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/internal/notification"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

type HealthHandler struct {
	db         *sql.DB
	dispatcher *notification.Dispatcher
	logger     logger.Logger
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	Version   string                 `json:"version"`
}

func NewHealthHandler(db *sql.DB, dispatcher *notification.Dispatcher, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	services := make(map[string]interface{})
	services["database"] = h.checkDatabaseHealth()
	services["mail_dispatcher"] = h.mailDispatcherStats()

	status := "healthy"
	for _, service := range services {
		if serviceMap, ok := service.(map[string]interface{}); ok {
			if serviceStatus, exists := serviceMap["status"]; exists && serviceStatus != "healthy" {
				status = "degraded"
				break
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
		Version:   "1.0.0",
	}

	if status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthHandler) checkDatabaseHealth() map[string]interface{} {
	if h.db == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "database connection is nil",
		}
	}

	if err := h.db.Ping(); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	stats := h.db.Stats()
	return map[string]interface{}{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}
}

func (h *HealthHandler) mailDispatcherStats() map[string]interface{} {
	if h.dispatcher == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "mail dispatcher is nil",
		}
	}

	stats := h.dispatcher.Stats()
	return map[string]interface{}{
		"status":       "healthy",
		"queue_length": h.dispatcher.QueueLength(),
		"submitted":    stats.Submitted,
		"completed":    stats.Completed,
		"failed":       stats.Failed,
		"rejected":     stats.Rejected,
	}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
}
