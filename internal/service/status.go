package service

import (
	"context"
	"fmt"

	"github.com/agenthub/agenthub/internal/domain"
)

// SystemStatus is a point-in-time snapshot of the hub.
type SystemStatus struct {
	TotalAgents   int            `json:"total_agents"`
	OnlineAgents  int            `json:"online_agents"`
	TotalMessages int            `json:"total_messages"`
	ActiveTasks   int            `json:"active_tasks"`
	QueueDepths   map[string]int `json:"queue_depths"`
}

// Status reports registry, history and mailbox statistics.
func (s *Service) Status(ctx context.Context) (*SystemStatus, error) {
	totalMessages, err := s.store.CountMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}
	activeTasks, err := s.store.CountTasksByStatus(ctx, domain.TaskStatusAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	agents := s.registry.List()
	online := 0
	for _, a := range agents {
		if a.Status == domain.AgentStatusOnline {
			online++
		}
	}

	return &SystemStatus{
		TotalAgents:   len(agents),
		OnlineAgents:  online,
		TotalMessages: totalMessages,
		ActiveTasks:   activeTasks,
		QueueDepths:   s.router.Depths(),
	}, nil
}
