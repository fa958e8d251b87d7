package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agenthub/agenthub/internal/domain"
)

// hubSenderID is the sender recorded on messages the hub emits itself
// (session invites, coordinated task fan-outs).
const hubSenderID = "hub"

// CreateSession persists an active collaboration session and invites every
// participant that is currently registered. Participants are fixed at
// creation.
func (s *Service) CreateSession(ctx context.Context, name string, participants []string, sessionType string) (*domain.Session, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("participants are required: %w", domain.ErrValidation)
	}
	if sessionType == "" {
		return nil, fmt.Errorf("type is required: %w", domain.ErrValidation)
	}

	session := &domain.Session{
		SessionID:    "sess_" + uuid.New().String()[:8],
		Name:         name,
		Participants: participants,
		Type:         sessionType,
		Status:       domain.SessionStatusActive,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	content, err := json.Marshal(domain.CoordinationPayload{
		Subtype:     domain.CoordinationInvite,
		SessionID:   session.SessionID,
		SessionName: session.Name,
		SessionType: session.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invite: %w", err)
	}
	for _, id := range participants {
		if _, ok := s.registry.Get(id); !ok {
			continue
		}
		if _, err := s.SendMessage(ctx, hubSenderID, id, domain.MessageTypeCoordination, content, 1); err != nil {
			log.Printf("WARN: failed to invite %s to %s: %v", id, session.SessionID, err)
		}
	}

	return session, nil
}

// ExecuteCoordinatedTask fans a COORDINATION message out to every
// participant's mailbox. Fire-and-forget: no session row, no
// acknowledgement tracking, no completion aggregation.
func (s *Service) ExecuteCoordinatedTask(ctx context.Context, name string, payload json.RawMessage, participants []string) error {
	if name == "" {
		return fmt.Errorf("task_name is required: %w", domain.ErrValidation)
	}
	if len(participants) == 0 {
		return fmt.Errorf("participants are required: %w", domain.ErrValidation)
	}

	content, err := json.Marshal(domain.CoordinationPayload{
		Subtype:  domain.CoordinationCoordinatedTask,
		TaskName: name,
		Payload:  payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal coordinated task: %w", err)
	}
	for _, id := range participants {
		if _, err := s.SendMessage(ctx, hubSenderID, id, domain.MessageTypeCoordination, content, 1); err != nil {
			log.Printf("WARN: failed to deliver coordinated task to %s: %v", id, err)
		}
	}
	return nil
}

// GetSession returns a collaboration session by id.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return session, nil
}
