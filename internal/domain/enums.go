// Package domain defines the core domain models for the hub.
package domain

// AgentStatus represents the liveness state of an agent.
type AgentStatus string

const (
	AgentStatusOnline  AgentStatus = "online"
	AgentStatusOffline AgentStatus = "offline"
)

// TaskStatus represents the status of a task.
// Tasks are created already assigned; there is no pending state.
type TaskStatus string

const (
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// SessionStatus represents the status of a collaboration session.
type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusEnded  SessionStatus = "ended"
)

// MessageType represents the type of a routed message.
// Callers may send arbitrary types; the hub itself emits these.
type MessageType string

const (
	MessageTypeTaskRequest  MessageType = "TASK_REQUEST"
	MessageTypeTaskResponse MessageType = "TASK_RESPONSE"
	MessageTypeCoordination MessageType = "COORDINATION"
)

// Coordination message subtypes.
const (
	CoordinationInvite          = "collaboration_invite"
	CoordinationCoordinatedTask = "coordinated_task"
)
