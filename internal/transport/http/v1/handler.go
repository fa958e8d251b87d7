// Package v1 provides the versioned HTTP handlers for the hub.
package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Agent registry API
	e.POST("/v1/agents/register", h.RegisterAgent)
	e.POST("/v1/agents/:agent_id/heartbeat", h.Heartbeat)
	e.GET("/v1/agents", h.ListAgents)
	e.GET("/v1/agents/:agent_id", h.GetAgent)

	// Message API
	e.POST("/v1/messages/send", h.SendMessage)
	e.GET("/v1/messages/:agent_id", h.GetMessages)
	e.GET("/v1/messages/:agent_id/history", h.GetMessageHistory)

	// Task API
	e.POST("/v1/tasks/request", h.RequestTask)
	e.POST("/v1/tasks/result", h.SubmitResult)
	e.GET("/v1/tasks/:task_id", h.GetTask)

	// Collaboration API
	e.POST("/v1/sessions", h.CreateSession)
	e.POST("/v1/sessions/coordinate", h.Coordinate)
	e.GET("/v1/sessions/:session_id", h.GetSession)

	e.GET("/v1/status", h.Status)
	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// respondError maps service errors to HTTP responses.
func (h *Handler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNoCapableAgent):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrPolicyBlocked):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
