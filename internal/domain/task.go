package domain

import (
	"encoding/json"
	"time"
)

// Task represents a unit of work dispatched to exactly one agent at
// creation time. AssigneeID is fixed at creation; status only moves
// forward (assigned -> completed | failed).
type Task struct {
	TaskID      string          `json:"task_id"`
	Type        string          `json:"task_type"`
	RequesterID string          `json:"requester_id"`
	AssigneeID  string          `json:"assignee_id"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Priority    int             `json:"priority"`
	Status      TaskStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}
