package domain

import (
	"encoding/json"
	"time"
)

// Message represents a single routed message. Messages are immutable once
// created; a mailbox entry is consumed at most once.
type Message struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	// ReceiverID is empty for broadcast messages.
	ReceiverID string          `json:"receiver_id,omitempty"`
	Type       MessageType     `json:"message_type"`
	Content    json.RawMessage `json:"content"`
	// Priority is advisory metadata; the router never reorders by it.
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}
