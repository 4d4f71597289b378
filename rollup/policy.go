// Package rollup downsamples raw metric streams into aligned series
// according to a configured policy.
//
// A policy is a set of rules, each naming a target interval ("1m", "1h")
// and the operators to apply per window ("min", "max", "mean", "p95", ...).
// Rules may be global defaults or scoped to a metric name. The engine
// applies the policy to every metric in a registry, one worker per metric.
package rollup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
	"github.com/xtxerr/sup/window"
)

// Rule downsamples a raw stream into one aligned series per operator, at a
// fixed interval. The resulting series are keyed "op-interval" ("mean-5m").
type Rule struct {
	Interval string   `yaml:"interval"`
	Ops      []string `yaml:"ops"`
}

// ID returns the downsample id for one operator of this rule.
func (r Rule) ID(op string) string {
	return op + "-" + r.Interval
}

// MetricPolicy scopes rules to a single metric name.
type MetricPolicy struct {
	Name  string `yaml:"name"`
	Rules []Rule `yaml:"rules"`
}

// Policy is the full downsampling configuration.
type Policy struct {
	// Defaults apply to every metric without a scoped entry.
	Defaults []Rule `yaml:"defaults"`
	// Metrics override the defaults for specific metric names.
	Metrics []MetricPolicy `yaml:"metrics"`
}

// Load reads and validates a policy from a YAML file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a policy from YAML bytes.
func Parse(data []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Policy) validate() error {
	if err := validateRules(p.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	for _, mp := range p.Metrics {
		if mp.Name == "" {
			return fmt.Errorf("metric policy without a name")
		}
		if err := validateRules(mp.Rules); err != nil {
			return fmt.Errorf("metric %q: %w", mp.Name, err)
		}
	}
	return nil
}

func validateRules(rules []Rule) error {
	for _, r := range rules {
		if _, err := ParseInterval(r.Interval); err != nil {
			return err
		}
		if len(r.Ops) == 0 {
			return fmt.Errorf("rule %q has no ops", r.Interval)
		}
		for _, op := range r.Ops {
			if _, ok := window.ByName(op); !ok {
				return fmt.Errorf("rule %q: unknown op %q", r.Interval, op)
			}
		}
	}
	return nil
}

// RulesFor returns the rules applying to the given metric name: its scoped
// rules if any, the defaults otherwise.
func (p *Policy) RulesFor(name string) []Rule {
	for _, mp := range p.Metrics {
		if mp.Name == name {
			return mp.Rules
		}
	}
	return p.Defaults
}

// ParseInterval parses an interval string such as "500ms", "30s", "1m",
// "1h", "24h", "7d", or "1w" into a duration. The interval must be positive.
func ParseInterval(s string) (timing.Duration, error) {
	unit := timing.Millisecond
	num := s

	switch {
	case strings.HasSuffix(s, "ms"):
		num = s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		unit, num = timing.Second, s[:len(s)-1]
	case strings.HasSuffix(s, "m"):
		unit, num = timing.Minute, s[:len(s)-1]
	case strings.HasSuffix(s, "h"):
		unit, num = timing.Hour, s[:len(s)-1]
	case strings.HasSuffix(s, "d"):
		unit, num = timing.Day, s[:len(s)-1]
	case strings.HasSuffix(s, "w"):
		unit, num = timing.Week, s[:len(s)-1]
	}

	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("interval %q: %w", s, series.ErrInvalidInterval)
	}

	d, err := unit.Mul(n)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("interval %q: %w", s, series.ErrInvalidInterval)
	}
	return d, nil
}
