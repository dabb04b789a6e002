package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "tangency"

// codeOK labels successful calls.
const codeOK = "OK"

// toolMetrics counts tool calls and their latency. Labels: tool (the tool
// name or REST operation), code (codeOK or the error code).
type toolMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newToolMetrics(reg prometheus.Registerer) *toolMetrics {
	factory := promauto.With(reg)
	return &toolMetrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tool_calls_total",
				Help:      "Total tool calls by tool and result code",
			},
			[]string{"tool", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Tool call latency in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
			[]string{"tool"},
		),
	}
}

func (m *toolMetrics) observe(tool, code string, start time.Time) {
	if code == "" {
		code = codeOK
	}
	m.calls.WithLabelValues(tool, code).Inc()
	m.duration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
