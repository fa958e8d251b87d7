// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
)

// Store defines the interface for data persistence. It is the sole durable
// owner of agents, messages, tasks and sessions; the registry and router
// hold derived in-memory views only.
type Store interface {
	// Agent operations
	UpsertAgent(ctx context.Context, agent *domain.Agent) error
	GetAgent(ctx context.Context, agentID string) (*domain.Agent, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	UpdateAgentLiveness(ctx context.Context, agentID string, status domain.AgentStatus, lastHeartbeat *time.Time) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, agentID string, limit int) ([]domain.Message, error)
	CountMessages(ctx context.Context) (int, error)

	// Task operations
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	CompleteTask(ctx context.Context, taskID, agentID string, status domain.TaskStatus, result json.RawMessage, completedAt time.Time) (bool, error)
	CountTasksByStatus(ctx context.Context, status domain.TaskStatus) (int, error)

	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// Lifecycle
	Close() error
}
