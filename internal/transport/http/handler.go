// Package http provides the echo handlers for the bridge's HTTP surface.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FXdmz/HPA-Azure-Demo/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *service.Service
	gatherer prometheus.Gatherer
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		service:  svc,
		gatherer: gatherer,
	}
}

// RegisterRoutes registers the API routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/agents", h.ListAgents)
	e.GET("/api/agent", h.GetAgent)
	e.GET("/api/health", h.Health)
	e.POST("/api/chat", h.Chat)
	e.POST("/api/clear", h.Clear)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

// Health returns the bridge's health view. Always 200: agent resolution
// failures degrade to configured defaults rather than an error status.
// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Health(c.Request().Context()))
}
