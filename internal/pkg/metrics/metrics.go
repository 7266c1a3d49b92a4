package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "carehome"

// Metrics exposes counters and histograms for the HTTP surface, the room finder and bookings.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	wizardOps     *prometheus.CounterVec
	wizardLatency *prometheus.HistogramVec
	bookings      *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	wsClients     prometheus.Gauge
	sessions      prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route pattern, method and status",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		wizardOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "room_finder",
			Name:      "operations_total",
			Help:      "Room finder operations by outcome",
		}, []string{"operation", "outcome"}),
		wizardLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "room_finder",
			Name:      "collaborator_duration_seconds",
			Help:      "Latency of room search and booking calls made by the room finder",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Booking confirmations by outcome",
		}, []string{"outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Redis cache lookups by cache and result",
		}, []string{"cache", "hit"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "websocket_clients",
			Help:      "Connected notification websocket clients",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "room_finder",
			Name:      "active_sessions",
			Help:      "Room finder sessions held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.httpRequests, m.httpLatency, m.wizardOps, m.wizardLatency,
		m.bookings, m.cacheLookups, m.wsClients, m.sessions)
	return m
}

func (m *Metrics) ObserveHTTP(route, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(seconds)
}

// ObserveWizard counts one room finder operation; outcome is ok, validation, service, busy or rejected.
func (m *Metrics) ObserveWizard(operation, outcome string) {
	if m == nil {
		return
	}
	m.wizardOps.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveCollaborator(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.wizardLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCache(cache string, hit bool) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(cache, strconv.FormatBool(hit)).Inc()
}

func (m *Metrics) SetWebsocketClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
