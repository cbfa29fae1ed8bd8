// Package metrics provides prometheus instrumentation for chat turns.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bridge's prometheus collectors.
type Metrics struct {
	chatTurns       *prometheus.CounterVec
	toolInvocations *prometheus.CounterVec
	turnDuration    prometheus.Histogram
}

// New registers the collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		chatTurns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_chat_turns_total",
			Help: "Chat turns by outcome (passed, blocked, truncated, failed).",
		}, []string{"outcome"}),
		toolInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_tool_invocations_total",
			Help: "Tool calls dispatched to executors, by tool name.",
		}, []string{"tool"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridge_turn_duration_seconds",
			Help:    "Wall-clock duration of a chat turn from run start to terminal status.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
}

// TurnFinished records one completed chat turn.
func (m *Metrics) TurnFinished(outcome string, d time.Duration) {
	m.chatTurns.WithLabelValues(outcome).Inc()
	m.turnDuration.Observe(d.Seconds())
}

// TurnFailed records a turn that ended in the generic error path.
func (m *Metrics) TurnFailed() {
	m.chatTurns.WithLabelValues("failed").Inc()
}

// ToolInvoked records one dispatched tool call.
func (m *Metrics) ToolInvoked(tool string) {
	m.toolInvocations.WithLabelValues(tool).Inc()
}
