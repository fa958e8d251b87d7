package domain

import "encoding/json"

// TaskRequestPayload is the content of a TASK_REQUEST message delivered to
// the assignee's mailbox.
type TaskRequestPayload struct {
	TaskID      string          `json:"task_id"`
	TaskType    string          `json:"task_type"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Priority    int             `json:"priority"`
	RequesterID string          `json:"requester_id"`
}

// TaskResponsePayload is the content of a TASK_RESPONSE message delivered
// to the original requester's mailbox.
type TaskResponsePayload struct {
	TaskID string          `json:"task_id"`
	Status TaskStatus      `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

// CoordinationPayload is the content of a COORDINATION message.
type CoordinationPayload struct {
	Subtype     string          `json:"subtype"`
	SessionID   string          `json:"session_id,omitempty"`
	SessionName string          `json:"session_name,omitempty"`
	SessionType string          `json:"session_type,omitempty"`
	TaskName    string          `json:"task_name,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}
