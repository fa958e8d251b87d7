package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AgentRegisterRequest is the request to register an agent.
type AgentRegisterRequest struct {
	AgentID      string   `json:"agent_id"`
	AgentName    string   `json:"agent_name"`
	AgentType    string   `json:"agent_type"`
	EndpointURL  string   `json:"endpoint_url"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// RegisterAgent registers a new agent.
// POST /v1/agents/register
func (h *Handler) RegisterAgent(c echo.Context) error {
	ctx := c.Request().Context()

	var req AgentRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	agent, err := h.service.RegisterAgent(ctx, req.AgentID, req.AgentName, req.AgentType, req.EndpointURL, req.Capabilities)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "success",
		"registered_at": agent.CreatedAt.UnixMilli(),
	})
}

// Heartbeat refreshes the liveness of an agent.
// POST /v1/agents/:agent_id/heartbeat
func (h *Handler) Heartbeat(c echo.Context) error {
	ctx := c.Request().Context()
	agentID := c.Param("agent_id")

	if err := h.service.Heartbeat(ctx, agentID); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// ListAgents lists all registered agents.
// GET /v1/agents
func (h *Handler) ListAgents(c echo.Context) error {
	ctx := c.Request().Context()

	agents := h.service.ListAgents(ctx)

	// Convert to response format
	agentList := make([]map[string]interface{}, len(agents))
	for i, a := range agents {
		agentList[i] = map[string]interface{}{
			"agent_id":          a.AgentID,
			"name":              a.Name,
			"type":              a.Type,
			"status":            a.Status,
			"capabilities":      a.Capabilities,
			"last_heartbeat_at": nil,
		}
		if a.LastHeartbeat != nil {
			agentList[i]["last_heartbeat_at"] = a.LastHeartbeat.UnixMilli()
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"agents": agentList,
	})
}

// GetAgent gets a specific agent by ID.
// GET /v1/agents/:agent_id
func (h *Handler) GetAgent(c echo.Context) error {
	ctx := c.Request().Context()
	agentID := c.Param("agent_id")

	agent, err := h.service.GetAgent(ctx, agentID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, agent)
}
