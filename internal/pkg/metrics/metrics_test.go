package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP("/api/v1/room-finder/{sessionID}", "GET", 200, 0.01)
	m.ObserveHTTP("", "GET", 404, 0.01)
	m.ObserveWizard("find_rooms", "ok")
	m.ObserveWizard("find_rooms", "ok")
	m.ObserveCollaborator("find_rooms", 0.2)
	m.ObserveBooking("confirmed")
	m.ObserveCache("room_search", true)
	m.SetWebsocketClients(3)
	m.SetSessions(2)

	if got := testutil.ToFloat64(m.wizardOps.WithLabelValues("find_rooms", "ok")); got != 2 {
		t.Fatalf("expected 2 find_rooms ok, got %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Fatalf("expected unmatched route counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.wsClients); got != 3 {
		t.Fatalf("expected 3 websocket clients, got %v", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("/", "GET", 200, 0.1)
	m.ObserveWizard("confirm_booking", "service")
	m.ObserveCollaborator("confirm_booking", 0.1)
	m.ObserveBooking("unavailable")
	m.ObserveCache("record_context", false)
	m.SetWebsocketClients(1)
	m.SetSessions(1)
}
