// Package router implements per-agent mailboxes for point-to-point and
// broadcast delivery.
//
// Each mailbox is an independent FIFO queue with its own lock: any number
// of senders may enqueue concurrently while the owning agent is the only
// reader. There is no cross-mailbox locking; the router-level RWMutex only
// guards mailbox creation. Mailboxes are ephemeral — they start empty after
// a restart, while the message history in the store is durable.
package router

import (
	"sync"

	"github.com/agenthub/agenthub/internal/domain"
)

type mailbox struct {
	mu    sync.Mutex
	queue []domain.Message
}

func (m *mailbox) enqueue(msg domain.Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
}

// drain atomically swaps out the queue. A drained entry is never returned
// twice.
func (m *mailbox) drain() []domain.Message {
	m.mu.Lock()
	msgs := m.queue
	m.queue = nil
	m.mu.Unlock()
	return msgs
}

func (m *mailbox) depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Router owns the set of per-agent mailboxes.
type Router struct {
	mu        sync.RWMutex
	mailboxes map[string]*mailbox
}

// New creates an empty router.
func New() *Router {
	return &Router{mailboxes: make(map[string]*mailbox)}
}

// Ensure creates a mailbox for the agent if one does not exist yet.
// Called at registration; re-registration keeps the existing queue.
func (r *Router) Ensure(agentID string) {
	r.mu.Lock()
	if _, ok := r.mailboxes[agentID]; !ok {
		r.mailboxes[agentID] = &mailbox{}
	}
	r.mu.Unlock()
}

// Enqueue appends a message to the agent's mailbox. Delivery to an agent
// without a mailbox is a silent no-op; the caller never gets a hard error
// for a bad receiver id.
func (r *Router) Enqueue(agentID string, msg domain.Message) bool {
	r.mu.RLock()
	mb, ok := r.mailboxes[agentID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	mb.enqueue(msg)
	return true
}

// Drain removes and returns the entire current mailbox contents in send
// order. Draining an empty or unknown mailbox returns nil, never an error.
func (r *Router) Drain(agentID string) []domain.Message {
	r.mu.RLock()
	mb, ok := r.mailboxes[agentID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return mb.drain()
}

// Depth returns the number of queued messages for an agent.
func (r *Router) Depth(agentID string) int {
	r.mu.RLock()
	mb, ok := r.mailboxes[agentID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}
	return mb.depth()
}

// Depths returns the queue depth of every mailbox, keyed by agent id.
func (r *Router) Depths() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	depths := make(map[string]int, len(r.mailboxes))
	for id, mb := range r.mailboxes {
		depths[id] = mb.depth()
	}
	return depths
}
