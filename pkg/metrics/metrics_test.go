package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if c := m.GetCounter(); c != nil {
				total += c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				total += g.GetValue()
			}
		}
		return total
	}
	t.Fatalf("metric %q not gathered", name)
	return 0
}

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegistry(reg), WithNamespace("t"))

	m.RecordNavigation(OutcomeCommitted)
	m.RecordNavigation(OutcomeNoop)
	m.RecordCollapsed(3)
	m.RecordRedirectLoop()
	m.RecordParseError()
	m.SetRouting(true)

	if got := gatherValue(t, reg, "t_navigations_total"); got != 2 {
		t.Errorf("navigations_total = %v, want 2", got)
	}
	if got := gatherValue(t, reg, "t_redirects_collapsed_total"); got != 3 {
		t.Errorf("redirects_collapsed_total = %v, want 3", got)
	}
	if got := gatherValue(t, reg, "t_redirect_loops_total"); got != 1 {
		t.Errorf("redirect_loops_total = %v, want 1", got)
	}
	if got := gatherValue(t, reg, "t_location_parse_errors_total"); got != 1 {
		t.Errorf("location_parse_errors_total = %v, want 1", got)
	}
	if got := gatherValue(t, reg, "t_routing"); got != 1 {
		t.Errorf("routing = %v, want 1", got)
	}

	m.SetRouting(false)
	if got := gatherValue(t, reg, "t_routing"); got != 0 {
		t.Errorf("routing = %v, want 0", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordNavigation(OutcomeError)
	m.RecordCollapsed(1)
	m.RecordRedirectLoop()
	m.RecordParseError()
	m.SetRouting(true)
}

func TestMetricsCollapsedIgnoresZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(WithRegistry(reg), WithNamespace("t"))

	m.RecordCollapsed(0)
	if got := gatherValue(t, reg, "t_redirects_collapsed_total"); got != 0 {
		t.Errorf("redirects_collapsed_total = %v, want 0", got)
	}
}
