// Package registry tracks live agents, their capabilities and liveness.
//
// The registry is a derived in-memory view over the durable store: every
// mutation is written through, and Rebuild reloads the view at startup so a
// restart does not lose registered agents.
package registry

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/store"
)

// Registry is a concurrency-safe agent registry. Reads (capability lookups,
// heartbeat checks) dominate writes, so a single RWMutex over the map is
// enough at the agent counts this hub serves.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*domain.Agent
	// order preserves registration order for the FindCapable tie-break.
	order []string
	store store.Store
}

// New creates an empty registry backed by the given store.
func New(s store.Store) *Registry {
	return &Registry{
		agents: make(map[string]*domain.Agent),
		store:  s,
	}
}

// Rebuild loads all agents from the store into the in-memory view.
// Mailboxes are intentionally not rebuilt; they are ephemeral.
func (r *Registry) Rebuild(ctx context.Context) error {
	agents, err := r.store.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load agents: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = make(map[string]*domain.Agent, len(agents))
	r.order = r.order[:0]
	for i := range agents {
		agent := agents[i]
		r.agents[agent.AgentID] = &agent
		r.order = append(r.order, agent.AgentID)
	}
	return nil
}

// Register upserts an agent with status online and a fresh heartbeat.
// Re-registering an existing id overwrites the record in place and keeps
// its original position in registration order.
func (r *Registry) Register(ctx context.Context, agent *domain.Agent) error {
	now := time.Now()
	agent.Status = domain.AgentStatusOnline
	agent.LastHeartbeat = &now

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.agents[agent.AgentID]; ok {
		agent.CreatedAt = existing.CreatedAt
	} else {
		agent.CreatedAt = now
		r.order = append(r.order, agent.AgentID)
	}
	r.agents[agent.AgentID] = agent

	if err := r.store.UpsertAgent(ctx, agent); err != nil {
		return fmt.Errorf("failed to persist agent: %w", err)
	}
	return nil
}

// Heartbeat refreshes the liveness of a registered agent. The memory
// update and the store write happen under the same lock as Sweep, so the
// durable row never disagrees with the in-memory view.
func (r *Registry) Heartbeat(ctx context.Context, agentID string) error {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	agent, ok := r.agents[agentID]
	if !ok {
		return fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
	}
	agent.Status = domain.AgentStatusOnline
	agent.LastHeartbeat = &now

	if err := r.store.UpdateAgentLiveness(ctx, agentID, domain.AgentStatusOnline, &now); err != nil {
		return fmt.Errorf("failed to persist heartbeat: %w", err)
	}
	return nil
}

// Get returns a copy of the agent with the given id.
func (r *Registry) Get(agentID string) (domain.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.agents[agentID]
	if !ok {
		return domain.Agent{}, false
	}
	return *agent, true
}

// List returns copies of all agents in registration order.
func (r *Registry) List() []domain.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agents := make([]domain.Agent, 0, len(r.order))
	for _, id := range r.order {
		agents = append(agents, *r.agents[id])
	}
	return agents
}

// IDs returns all registered agent ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// OnlineCount returns the number of agents currently online.
func (r *Registry) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, agent := range r.agents {
		if agent.Status == domain.AgentStatusOnline {
			count++
		}
	}
	return count
}

// FindCapable selects the agent to assign a task of the given type to.
//
// If preferredID names an online agent it wins. Otherwise agents are
// scanned in registration order and the first online agent with a
// capability that case-insensitively contains taskType as a substring is
// returned. This first-match tie-break is a deliberate policy, not a load
// balancer.
func (r *Registry) FindCapable(taskType, preferredID string) (domain.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if preferredID != "" {
		if agent, ok := r.agents[preferredID]; ok && agent.Status == domain.AgentStatusOnline {
			return *agent, true
		}
	}

	want := strings.ToLower(taskType)
	for _, id := range r.order {
		agent := r.agents[id]
		if agent.Status != domain.AgentStatusOnline {
			continue
		}
		for _, capability := range agent.Capabilities {
			if strings.Contains(strings.ToLower(capability), want) {
				return *agent, true
			}
		}
	}
	return domain.Agent{}, false
}

// Sweep marks agents whose last heartbeat is older than staleAfter as
// offline and persists the transition. It returns the number of agents
// demoted. Persistence errors are logged and do not abort the sweep.
//
// The lock is held across the store writes so a concurrent heartbeat
// cannot slip between the in-memory demotion and the persist and leave the
// durable row stale. Sweeps are infrequent and the write set is small.
func (r *Registry) Sweep(ctx context.Context, now time.Time, staleAfter time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	demoted := 0
	for _, id := range r.order {
		agent := r.agents[id]
		if agent.Status == domain.AgentStatusOffline {
			continue
		}
		if agent.LastHeartbeat == nil || now.Sub(*agent.LastHeartbeat) > staleAfter {
			agent.Status = domain.AgentStatusOffline
			demoted++
			if err := r.store.UpdateAgentLiveness(ctx, id, domain.AgentStatusOffline, nil); err != nil {
				log.Printf("WARN: failed to persist offline status for %s: %v", id, err)
			}
		}
	}
	return demoted
}
