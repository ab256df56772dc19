package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// LandingMetrics exposes counters, histograms and gauges for the landing service.
type LandingMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	interactions    *prometheus.CounterVec
	dispatchTotal   *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	chatConnections prometheus.Gauge
}

func NewLandingMetrics(reg prometheus.Registerer) *LandingMetrics {
	m := &LandingMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route pattern",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "interactions_total",
			Help:      "Visitor interactions applied to page state",
		}, []string{"action", "outcome"}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "tour_dispatch_total",
			Help:      "Tour link activations by navigation mode",
		}, []string{"mode"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "active_sessions",
			Help:      "Mounted page controllers",
		}),
		chatConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cosmo",
			Subsystem: "landing",
			Name:      "chat_connections",
			Help:      "Open chat websocket connections",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.interactions, m.dispatchTotal, m.activeSessions, m.chatConnections)
	return m
}

func (m *LandingMetrics) ObserveRequest(route, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route).Observe(seconds)
}

func (m *LandingMetrics) ObserveInteraction(action, outcome string) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(action, outcome).Inc()
}

func (m *LandingMetrics) ObserveDispatch(newTab bool) {
	if m == nil {
		return
	}
	mode := "same_tab"
	if newTab {
		mode = "new_tab"
	}
	m.dispatchTotal.WithLabelValues(mode).Inc()
}

func (m *LandingMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

func (m *LandingMetrics) ChatConnected() {
	if m == nil {
		return
	}
	m.chatConnections.Inc()
}

func (m *LandingMetrics) ChatDisconnected() {
	if m == nil {
		return
	}
	m.chatConnections.Dec()
}
