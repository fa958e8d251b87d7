package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/metrics"
)

// SendMessage records a message and routes it. An empty receiverID means
// broadcast: the message is enqueued to every registered agent except the
// sender. Targeting an unknown receiver is a silent no-op at the mailbox
// level; the message is still recorded in the history.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID string, msgType domain.MessageType, content []byte, priority int) (string, error) {
	if senderID == "" {
		return "", fmt.Errorf("sender_id is required: %w", domain.ErrValidation)
	}
	if msgType == "" {
		return "", fmt.Errorf("message_type is required: %w", domain.ErrValidation)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	if priority <= 0 {
		priority = 1
	}

	msg := domain.Message{
		MessageID:  "msg_" + uuid.New().String()[:8],
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       msgType,
		Content:    content,
		Priority:   priority,
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateMessage(ctx, &msg); err != nil {
		return "", fmt.Errorf("failed to record message: %w", err)
	}
	metrics.MessagesSent.WithLabelValues(string(msgType)).Inc()

	if receiverID != "" {
		if s.router.Enqueue(receiverID, msg) {
			metrics.MessagesDelivered.Inc()
		}
		return msg.MessageID, nil
	}

	// Broadcast to every registered agent except the sender. Fan-out is
	// not atomic across mailboxes.
	for _, id := range s.registry.IDs() {
		if id == senderID {
			continue
		}
		if s.router.Enqueue(id, msg) {
			metrics.MessagesDelivered.Inc()
		}
	}
	return msg.MessageID, nil
}

// ReceiveMessages atomically drains the agent's mailbox, oldest first.
// Draining an empty mailbox returns an empty list, never an error.
func (s *Service) ReceiveMessages(ctx context.Context, agentID string) []domain.Message {
	msgs := s.router.Drain(agentID)
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs
}

// MessageHistory returns the durable record of messages addressed to an
// agent, oldest first. Unlike ReceiveMessages this does not consume
// anything; drained messages stay in the history for audit.
func (s *Service) MessageHistory(ctx context.Context, agentID string, limit int) ([]domain.Message, error) {
	msgs, err := s.store.GetMessages(ctx, agentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get message history: %w", err)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}
