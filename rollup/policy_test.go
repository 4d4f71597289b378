package rollup

import (
	"errors"
	"testing"

	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
)

func TestParsePolicy(t *testing.T) {
	p, err := Parse([]byte(`
defaults:
  - interval: 1m
    ops: [min, max, mean]
  - interval: 1h
    ops: [mean, p95]
metrics:
  - name: ifInOctets
    rules:
      - interval: 5m
        ops: [delta]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(p.Defaults) != 2 {
		t.Fatalf("expected 2 default rules, got %d", len(p.Defaults))
	}
	if p.Defaults[0].Interval != "1m" || len(p.Defaults[0].Ops) != 3 {
		t.Errorf("unexpected first rule: %+v", p.Defaults[0])
	}

	rules := p.RulesFor("ifInOctets")
	if len(rules) != 1 || rules[0].Interval != "5m" || rules[0].Ops[0] != "delta" {
		t.Errorf("expected scoped rules for ifInOctets, got %+v", rules)
	}

	rules = p.RulesFor("cpu")
	if len(rules) != 2 {
		t.Errorf("expected defaults for unscoped metric, got %+v", rules)
	}
}

func TestParsePolicyRejectsUnknownOp(t *testing.T) {
	_, err := Parse([]byte(`
defaults:
  - interval: 1m
    ops: [median]
`))
	if err == nil {
		t.Error("expected error for unknown op")
	}
}

func TestParsePolicyRejectsBadInterval(t *testing.T) {
	_, err := Parse([]byte(`
defaults:
  - interval: soon
    ops: [mean]
`))
	if !errors.Is(err, series.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestParsePolicyRejectsEmptyOps(t *testing.T) {
	_, err := Parse([]byte(`
defaults:
  - interval: 1m
    ops: []
`))
	if err == nil {
		t.Error("expected error for rule without ops")
	}
}

func TestRuleID(t *testing.T) {
	r := Rule{Interval: "5m", Ops: []string{"mean"}}
	if r.ID("mean") != "mean-5m" {
		t.Errorf("expected mean-5m, got %s", r.ID("mean"))
	}
}

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want timing.Duration
	}{
		{"500ms", 500 * timing.Millisecond},
		{"30s", timing.FromSeconds(30)},
		{"1m", timing.Minute},
		{"5m", 5 * timing.Minute},
		{"1h", timing.Hour},
		{"24h", timing.Day},
		{"7d", timing.Week},
		{"1w", timing.Week},
		{"250", 250 * timing.Millisecond},
	}
	for _, c := range cases {
		got, err := ParseInterval(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: expected %d, got %d", c.in, c.want.Millis(), got.Millis())
		}
	}

	for _, in := range []string{"", "m", "-1m", "0s", "five"} {
		if _, err := ParseInterval(in); !errors.Is(err, series.ErrInvalidInterval) {
			t.Errorf("%q: expected ErrInvalidInterval, got %v", in, err)
		}
	}
}
