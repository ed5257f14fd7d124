package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/fractal/pkg/errors"
)

// Metrics implements StoreHooks and ServerHooks on top of Prometheus
// collectors.
type Metrics struct {
	edits       *prometheus.CounterVec
	editSeconds *prometheus.HistogramVec
	treeSize    prometheus.Gauge
	history     *prometheus.CounterVec
	requests    *prometheus.CounterVec
	reqSeconds  *prometheus.HistogramVec
	sessions    prometheus.Gauge
}

var (
	_ StoreHooks  = (*Metrics)(nil)
	_ ServerHooks = (*Metrics)(nil)
)

// NewMetrics creates the collectors and registers them with reg.
// It panics if a collector with the same name is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fractal_edits_total",
			Help: "Tree edits by operation and outcome code.",
		}, []string{"op", "code"}),
		editSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fractal_edit_duration_seconds",
			Help:    "Time spent applying tree edits.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		treeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fractal_tree_vertices",
			Help: "Vertex count of the most recently edited tree.",
		}),
		history: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fractal_history_moves_total",
			Help: "Undo and redo requests by whether the history index moved.",
		}, []string{"op", "moved"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fractal_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		reqSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fractal_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fractal_sessions",
			Help: "Live editing sessions.",
		}),
	}
	reg.MustRegister(m.edits, m.editSeconds, m.treeSize, m.history, m.requests, m.reqSeconds, m.sessions)
	return m
}

func (m *Metrics) OnEdit(op string, size int, duration time.Duration, err error) {
	code := "OK"
	if err != nil {
		code = string(errors.GetCode(err))
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
	}
	m.edits.WithLabelValues(op, code).Inc()
	m.editSeconds.WithLabelValues(op).Observe(duration.Seconds())
	m.treeSize.Set(float64(size))
}

func (m *Metrics) OnHistory(op string, moved bool) {
	m.history.WithLabelValues(op, strconv.FormatBool(moved)).Inc()
}

func (m *Metrics) OnRequest(_ context.Context, route string, status int, duration time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.reqSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) OnSessions(_ context.Context, count int) {
	m.sessions.Set(float64(count))
}
