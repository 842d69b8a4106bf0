package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the ordering service.
var (
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mozo_chat_turns_total",
		Help: "Chat turns processed, by outcome.",
	}, []string{"outcome"})

	GatewayErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mozo_gateway_errors_total",
		Help: "Failed LLM gateway calls.",
	})

	GatewayLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mozo_gateway_latency_seconds",
		Help:    "LLM gateway call latency.",
		Buckets: prometheus.DefBuckets,
	})

	CartActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mozo_cart_actions_total",
		Help: "Cart actions parsed from assistant output, by op.",
	}, []string{"op"})
)

// Turn outcomes recorded on TurnsTotal.
const (
	OutcomeLocal   = "local"
	OutcomePending = "pending"
	OutcomeModel   = "model"
	OutcomeError   = "gateway_error"
)

// Monitor collects ad-hoc metrics for API introspection
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// IncrementMetric bumps an integer metric by one
func (m *Monitor) IncrementMetric(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	if v, ok := m.metrics[name].(int); ok {
		m.metrics[name] = v + 1
		return
	}
	m.metrics[name] = 1
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}
