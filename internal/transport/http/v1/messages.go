package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agenthub/agenthub/internal/domain"
)

// SendMessageRequest is the request to send a message.
type SendMessageRequest struct {
	SenderID string `json:"sender_id"`
	// ReceiverID empty means broadcast to all agents except the sender.
	ReceiverID  string          `json:"receiver_id,omitempty"`
	MessageType string          `json:"message_type"`
	Content     json.RawMessage `json:"content"`
	Priority    int             `json:"priority,omitempty"`
}

// SendMessage records and routes a message.
// POST /v1/messages/send
func (h *Handler) SendMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	messageID, err := h.service.SendMessage(ctx, req.SenderID, req.ReceiverID, domain.MessageType(req.MessageType), req.Content, req.Priority)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message_id": messageID,
	})
}

// GetMessages drains and returns the agent's mailbox in send order.
// GET /v1/messages/:agent_id
func (h *Handler) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()
	agentID := c.Param("agent_id")

	messages := h.service.ReceiveMessages(ctx, agentID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// GetMessageHistory returns the durable message history for an agent.
// GET /v1/messages/:agent_id/history
func (h *Handler) GetMessageHistory(c echo.Context) error {
	ctx := c.Request().Context()
	agentID := c.Param("agent_id")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}

	messages, err := h.service.MessageHistory(ctx, agentID, limit)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}
