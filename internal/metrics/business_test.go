package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := gauge.Write(&m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestIncrementDrawCreated(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)

	m.IncrementDrawCreated()
	m.IncrementDrawCreated()

	if got := getCounterValue(t, m.DrawCreatedTotal); got != 2 {
		t.Errorf("DrawCreatedTotal = %v, want 2", got)
	}
}

func TestIncrementRedemption(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)

	m.IncrementRedemption()

	if got := getCounterValue(t, m.RedemptionsTotal); got != 1 {
		t.Errorf("RedemptionsTotal = %v, want 1", got)
	}
}

func TestSetDrawsTotal(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)

	m.SetDrawsTotal(42)
	m.SetDrawsTotal(7)

	if got := getGaugeValue(t, m.DrawsTotal); got != 7 {
		t.Errorf("DrawsTotal = %v, want 7", got)
	}
}

func TestSetRedeemedParticipants(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), nil)

	m.SetRedeemedParticipants(3)

	if got := getGaugeValue(t, m.RedeemedParticipants); got != 3 {
		t.Errorf("RedeemedParticipants = %v, want 3", got)
	}
}
