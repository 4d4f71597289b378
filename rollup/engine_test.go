package rollup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xtxerr/sup/metric"
	"github.com/xtxerr/sup/timing"
)

func testPolicy(t *testing.T, doc string) *Policy {
	t.Helper()
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse policy: %v", err)
	}
	return p
}

func TestEngineRun(t *testing.T) {
	reg := metric.NewRegistry()

	// One sample per second for two minutes, valued by second index.
	m := reg.GetOrCreate("cpu", map[string]string{"host": "a"})
	for i := int64(0); i < 120; i++ {
		if err := m.Observe(timing.FromMillis(i*1000), float64(i)); err != nil {
			t.Fatal(err)
		}
	}

	p := testPolicy(t, `
defaults:
  - interval: 1m
    ops: [min, max, mean]
`)

	if err := NewEngine(reg, p).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	ids := m.AlignedIDs()
	want := []string{"max-1m", "mean-1m", "min-1m"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}

	maxSeries, _ := m.Aligned("max-1m")
	sample, ok := maxSeries.Lookup(timing.FromMillis(0))
	if !ok {
		t.Fatal("expected first-minute max")
	}
	if v, _ := sample.Value(); v != 59 {
		t.Errorf("expected max 59 in the first minute, got %v", v)
	}

	meanSeries, _ := m.Aligned("mean-1m")
	sample, ok = meanSeries.Lookup(timing.FromMillis(60000))
	if !ok {
		t.Fatal("expected second-minute mean")
	}
	if v, _ := sample.Value(); v != 89.5 {
		t.Errorf("expected mean 89.5 in the second minute, got %v", v)
	}
}

func TestEngineScopedRules(t *testing.T) {
	reg := metric.NewRegistry()

	counter := reg.GetOrCreate("ifInOctets", nil)
	for i := int64(0); i < 10; i++ {
		if err := counter.Observe(timing.FromMillis(i*1000), float64(i*100)); err != nil {
			t.Fatal(err)
		}
	}
	gauge := reg.GetOrCreate("temperature", nil)
	if err := gauge.Observe(timing.FromMillis(0), 21.5); err != nil {
		t.Fatal(err)
	}

	p := testPolicy(t, `
defaults:
  - interval: 10s
    ops: [mean]
metrics:
  - name: ifInOctets
    rules:
      - interval: 10s
        ops: [delta]
`)

	if err := NewEngine(reg, p).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	deltaSeries, ok := counter.Aligned("delta-10s")
	if !ok {
		t.Fatal("expected delta-10s on the counter")
	}
	sample, ok := deltaSeries.Lookup(timing.FromMillis(0))
	if !ok {
		t.Fatal("expected a delta value")
	}
	if v, _ := sample.Value(); v != 900 {
		t.Errorf("expected delta 900, got %v", v)
	}
	if _, ok := counter.Aligned("mean-10s"); ok {
		t.Error("scoped metric must not get default rules")
	}

	if _, ok := gauge.Aligned("mean-10s"); !ok {
		t.Error("expected defaults on the unscoped metric")
	}
}

func TestEngineAnchorsGrid(t *testing.T) {
	reg := metric.NewRegistry()
	m := reg.GetOrCreate("cpu", nil)
	// First sample mid-minute: the grid is anchored at the minute boundary.
	if err := m.Observe(timing.FromMillis(90_000), 1.0); err != nil {
		t.Fatal(err)
	}
	if err := m.Observe(timing.FromMillis(95_000), 3.0); err != nil {
		t.Fatal(err)
	}

	p := testPolicy(t, `
defaults:
  - interval: 1m
    ops: [mean]
`)
	if err := NewEngine(reg, p).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	s, _ := m.Aligned("mean-1m")
	if s.Origin() != timing.FromMillis(60_000) {
		t.Errorf("expected origin 60000, got %d", s.Origin().Millis())
	}
	sample, ok := s.Lookup(timing.FromMillis(60_000))
	if !ok {
		t.Fatal("expected a sample on the minute boundary")
	}
	if v, _ := sample.Value(); v != 2.0 {
		t.Errorf("expected mean 2.0, got %v", v)
	}

	if Anchor(timing.FromMillis(90_000), timing.Minute) != timing.FromMillis(60_000) {
		t.Error("Anchor must match the engine's grid origin")
	}
}

func TestEngineEmptyMetric(t *testing.T) {
	reg := metric.NewRegistry()
	reg.GetOrCreate("empty", nil)

	p := testPolicy(t, `
defaults:
  - interval: 1m
    ops: [mean]
`)
	if err := NewEngine(reg, p).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestEngineCancelled(t *testing.T) {
	reg := metric.NewRegistry()
	m := reg.GetOrCreate("cpu", nil)
	if err := m.Observe(timing.FromMillis(0), 1.0); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := testPolicy(t, `
defaults:
  - interval: 1m
    ops: [mean]
`)
	if err := NewEngine(reg, p).Run(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestEngineWorkerLimit(t *testing.T) {
	reg := metric.NewRegistry()
	for _, name := range []string{"a", "b", "c", "d"} {
		m := reg.GetOrCreate(name, nil)
		for i := int64(0); i < 10; i++ {
			if err := m.Observe(timing.FromMillis(i*1000), float64(i)); err != nil {
				t.Fatal(err)
			}
		}
	}

	p := testPolicy(t, `
defaults:
  - interval: 10s
    ops: [max]
`)
	e := NewEngine(reg, p)
	e.SetWorkers(2)
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, m := range reg.List() {
		if _, ok := m.Aligned("max-10s"); !ok {
			t.Errorf("metric %s missing rollup", m.Name)
		}
	}
}

func TestLoadPolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rollup.yaml")
	doc := `
defaults:
  - interval: 5m
    ops: [mean, p99]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(p.Defaults) != 1 || p.Defaults[0].Interval != "5m" {
		t.Errorf("unexpected policy: %+v", p)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
