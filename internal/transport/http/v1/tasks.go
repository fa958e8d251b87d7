package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agenthub/agenthub/internal/domain"
)

// TaskRequest is the request to dispatch a task.
type TaskRequest struct {
	RequesterID    string          `json:"requester_id"`
	TaskType       string          `json:"task_type"`
	Description    string          `json:"description"`
	Data           json.RawMessage `json:"data,omitempty"`
	Priority       int             `json:"priority,omitempty"`
	PreferredAgent string          `json:"preferred_agent,omitempty"`
}

// TaskResultRequest is the request to submit a task result.
type TaskResultRequest struct {
	TaskID     string          `json:"task_id"`
	AgentID    string          `json:"agent_id"`
	ResultData json.RawMessage `json:"result_data,omitempty"`
	Status     string          `json:"status,omitempty"`
}

// RequestTask dispatches a task to a capable online agent.
// POST /v1/tasks/request
func (h *Handler) RequestTask(c echo.Context) error {
	ctx := c.Request().Context()

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	task, err := h.service.RequestTask(ctx, req.RequesterID, req.TaskType, req.Description, req.Data, req.Priority, req.PreferredAgent)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"task_id":        task.TaskID,
		"assigned_agent": task.AssigneeID,
	})
}

// SubmitResult records a task result. A result from anyone other than the
// stored assignee is accepted and ignored.
// POST /v1/tasks/result
func (h *Handler) SubmitResult(c echo.Context) error {
	ctx := c.Request().Context()

	var req TaskResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.service.SubmitResult(ctx, req.TaskID, req.AgentID, req.ResultData, domain.TaskStatus(req.Status)); err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// GetTask gets a task by ID.
// GET /v1/tasks/:task_id
func (h *Handler) GetTask(c echo.Context) error {
	ctx := c.Request().Context()
	taskID := c.Param("task_id")

	task, err := h.service.GetTask(ctx, taskID)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, task)
}
