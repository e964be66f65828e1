package handlers

import (
	"net/http"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/store"
	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	services := make(map[string]string)
	status := "healthy"

	if err := h.store.Ping(c.Request().Context()); err != nil {
		services["index"] = "unhealthy"
		status = "unhealthy"
	} else {
		services["index"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, HealthResponse{
		Status:   status,
		Services: services,
	})
}
