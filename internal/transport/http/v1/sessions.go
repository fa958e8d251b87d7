package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CreateSessionRequest is the request to create a collaboration session.
type CreateSessionRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
	Type         string   `json:"type"`
}

// CoordinateRequest is the request to fan a coordinated task out to a set
// of participants.
type CoordinateRequest struct {
	TaskName     string          `json:"task_name"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Participants []string        `json:"participants"`
}

// CreateSession creates a collaboration session and invites its
// participants.
// POST /v1/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	session, err := h.service.CreateSession(ctx, req.Name, req.Participants, req.Type)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"session_id": session.SessionID,
	})
}

// Coordinate fans a coordinated task out to every participant's mailbox.
// POST /v1/sessions/coordinate
func (h *Handler) Coordinate(c echo.Context) error {
	ctx := c.Request().Context()

	var req CoordinateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.service.ExecuteCoordinatedTask(ctx, req.TaskName, req.Payload, req.Participants); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// GetSession gets a session by ID.
// GET /v1/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	session, err := h.service.GetSession(ctx, sessionID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, session)
}
