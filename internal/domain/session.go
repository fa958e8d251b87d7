package domain

import "time"

// Session represents a named multi-agent collaboration session.
// Participants are fixed at creation.
type Session struct {
	SessionID    string        `json:"session_id"`
	Name         string        `json:"name"`
	Participants []string      `json:"participants"`
	Type         string        `json:"type"`
	Status       SessionStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}
