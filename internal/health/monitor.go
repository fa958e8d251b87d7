// Package health runs the periodic liveness sweep.
package health

import (
	"context"
	"log"
	"time"

	"github.com/agenthub/agenthub/internal/service"
)

// Monitor periodically sweeps the agent registry, demoting stale agents to
// offline. It runs independently of request traffic and never cancels or
// reassigns in-flight tasks.
type Monitor struct {
	svc      *service.Service
	interval time.Duration
}

// NewMonitor creates a monitor sweeping at the given interval.
func NewMonitor(svc *service.Service, interval time.Duration) *Monitor {
	return &Monitor{svc: svc, interval: interval}
}

// Run blocks until ctx is cancelled, running one sweep per tick. A failed
// sweep is logged and the loop continues on the next tick.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Printf("health monitor started, interval %s", m.interval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("health monitor stopped")
			return
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: sweep panicked: %v", r)
		}
	}()
	m.svc.SweepAgents(ctx)
}
