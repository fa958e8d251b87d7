package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/metrics"
)

// RegisterAgent upserts an agent record and ensures its mailbox exists.
// Re-registering an id overwrites the record without creating a duplicate;
// the existing mailbox is kept.
func (s *Service) RegisterAgent(ctx context.Context, agentID, name, agentType, endpoint string, capabilities []string) (*domain.Agent, error) {
	if agentID == "" {
		return nil, fmt.Errorf("agent_id is required: %w", domain.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("agent_name is required: %w", domain.ErrValidation)
	}
	if agentType == "" {
		return nil, fmt.Errorf("agent_type is required: %w", domain.ErrValidation)
	}
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint_url is required: %w", domain.ErrValidation)
	}

	agent := &domain.Agent{
		AgentID:      agentID,
		Name:         name,
		Type:         agentType,
		Endpoint:     endpoint,
		Capabilities: capabilities,
	}

	if err := s.registry.Register(ctx, agent); err != nil {
		return nil, err
	}
	s.router.Ensure(agentID)
	metrics.OnlineAgents.Set(float64(s.registry.OnlineCount()))

	return agent, nil
}

// Heartbeat refreshes the liveness of a registered agent.
func (s *Service) Heartbeat(ctx context.Context, agentID string) error {
	if err := s.registry.Heartbeat(ctx, agentID); err != nil {
		return err
	}
	metrics.OnlineAgents.Set(float64(s.registry.OnlineCount()))
	return nil
}

// ListAgents returns all registered agents in registration order.
func (s *Service) ListAgents(ctx context.Context) []domain.Agent {
	return s.registry.List()
}

// GetAgent returns a registered agent.
func (s *Service) GetAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, ok := s.registry.Get(agentID)
	if !ok {
		return nil, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
	}
	return &agent, nil
}

// SweepAgents runs one liveness sweep, demoting agents whose last
// heartbeat is older than the configured staleness threshold. It returns
// the number of agents demoted. A sweep has no effect on in-flight tasks.
func (s *Service) SweepAgents(ctx context.Context) int {
	demoted := s.registry.Sweep(ctx, time.Now(), s.config.StaleAfter)
	metrics.SweepsRun.Inc()
	metrics.OnlineAgents.Set(float64(s.registry.OnlineCount()))
	if demoted > 0 {
		log.Printf("sweep: marked %d agent(s) offline", demoted)
	}
	return demoted
}
