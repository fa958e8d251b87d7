// Package metrics exposes hub counters on the default Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesSent counts messages accepted by the router, by type.
	MessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agenthub_messages_sent_total",
		Help: "Messages accepted for delivery, by message type.",
	}, []string{"type"})

	// MessagesDelivered counts mailbox enqueues (a broadcast counts once
	// per recipient).
	MessagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenthub_messages_delivered_total",
		Help: "Messages enqueued into agent mailboxes.",
	})

	// TasksDispatched counts tasks assigned to agents.
	TasksDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenthub_tasks_dispatched_total",
		Help: "Tasks created and dispatched to an assignee.",
	})

	// TasksFinished counts terminal task transitions, by status.
	TasksFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agenthub_tasks_finished_total",
		Help: "Tasks moved to a terminal status.",
	}, []string{"status"})

	// SweepsRun counts health monitor sweeps.
	SweepsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agenthub_sweeps_total",
		Help: "Liveness sweeps executed by the health monitor.",
	})

	// OnlineAgents tracks the number of agents currently online.
	OnlineAgents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agenthub_online_agents",
		Help: "Agents currently marked online.",
	})
)
