package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Collector, match func(*dto.Metric) bool) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)
	for m := range ch {
		var out dto.Metric
		if err := m.Write(&out); err != nil {
			t.Fatalf("writing metric: %v", err)
		}
		if match(&out) {
			if out.Counter != nil {
				return out.Counter.GetValue()
			}
			if out.Histogram != nil {
				return float64(out.Histogram.GetSampleCount())
			}
		}
	}
	return 0
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, l := range m.Label {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/videos", "201", 42*time.Millisecond)
	m.Observe("POST", "/videos", "201", 10*time.Millisecond)

	got := counterValue(t, m.requests, func(metric *dto.Metric) bool {
		return hasLabel(metric, "status", "201")
	})
	if got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}

	samples := counterValue(t, m.duration, func(metric *dto.Metric) bool {
		return hasLabel(metric, "route", "/videos")
	})
	if samples != 2 {
		t.Fatalf("expected 2 duration samples, got %v", samples)
	}
}

func TestUploadMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewUploadMetrics(reg)

	m.IncUpload("success")
	m.IncUpload("failure")
	m.IncCompensation()
	m.IncStaleDelete()

	if got := counterValue(t, m.uploads, func(metric *dto.Metric) bool {
		return hasLabel(metric, "outcome", "failure")
	}); got != 1 {
		t.Fatalf("expected 1 failed upload, got %v", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	m := NewUploadMetrics(nil)
	m.IncUpload("success")
	m.IncCompensation()
	m.IncStaleDelete()

	h := NewHTTPMetrics(nil)
	h.Observe("GET", "/categories", "200", time.Millisecond)
}
