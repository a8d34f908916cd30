package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTurn(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveTurn("reply", 0.05)
	m.ObserveTurn("reply", 0.10)
	m.ObserveTurn("booked", 0.25)

	if got := testutil.ToFloat64(m.turnsTotal.WithLabelValues("reply")); got != 2 {
		t.Errorf("expected 2 reply turns, got %v", got)
	}
	if got := testutil.ToFloat64(m.turnsTotal.WithLabelValues("booked")); got != 1 {
		t.Errorf("expected 1 booked turn, got %v", got)
	}
}

func TestObserveEventCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveEventCreated()
	m.ObserveEventCreated()

	if got := testutil.ToFloat64(m.eventsCreated); got != 2 {
		t.Errorf("expected 2 events created, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *ChatMetrics
	m.ObserveTurn("reply", 0.01)
	m.ObserveEventCreated()
}
