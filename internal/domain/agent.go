package domain

import "time"

// Agent represents a registered worker process.
type Agent struct {
	AgentID       string      `json:"agent_id"`
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	Endpoint      string      `json:"endpoint"`
	Capabilities  []string    `json:"capabilities,omitempty"`
	Status        AgentStatus `json:"status"`
	LastHeartbeat *time.Time  `json:"last_heartbeat,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
