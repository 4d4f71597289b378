// Package metric groups series under named, tagged metrics.
//
// A Metric owns one raw stream of observations plus any number of derived
// aligned series produced by downsampling, keyed by a downsample id such as
// "mean-5m". The raw stream has a single logical owner; the registry only
// synchronizes metric lookup, not series mutation.
package metric

import (
	"sort"
	"strings"

	"github.com/xtxerr/sup/series"
	"github.com/xtxerr/sup/timing"
)

// Metric is a named, tagged stream of float64 observations. Ingestion
// normalizes payloads to float64; typed series remain available directly
// through the series package for callers that need them.
type Metric struct {
	Name string
	Tags map[string]string

	Raw *series.RawSeries[float64]

	// Derived series keyed by downsample id ("mean-5m").
	aligned map[string]*series.AlignedSeries[float64]
}

// New creates a metric with the given name and tags.
func New(name string, tags map[string]string) *Metric {
	return &Metric{
		Name:    name,
		Tags:    tags,
		Raw:     series.NewRaw[float64](),
		aligned: make(map[string]*series.AlignedSeries[float64]),
	}
}

// Key returns the unique identifier for this metric: the name followed by
// its tags in sorted order.
func (m *Metric) Key() string {
	return Key(m.Name, m.Tags)
}

// Key builds a metric key from a name and tags.
func Key(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteByte('/')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(tags[k])
	}
	return b.String()
}

// Observe appends a Point observation to the raw stream.
func (m *Metric) Observe(ts timing.TimeStamp, value float64) error {
	return m.Raw.Push(ts, value)
}

// ObserveSample appends an arbitrary sample (Zero, Reset, or Point) to the
// raw stream.
func (m *Metric) ObserveSample(ts timing.TimeStamp, sample series.Sample[float64]) error {
	return m.Raw.Append(ts, sample)
}

// SetAligned stores a derived aligned series under the given downsample id,
// replacing any previous series with that id.
func (m *Metric) SetAligned(id string, s *series.AlignedSeries[float64]) {
	m.aligned[id] = s
}

// Aligned returns the derived series with the given downsample id.
func (m *Metric) Aligned(id string) (*series.AlignedSeries[float64], bool) {
	s, ok := m.aligned[id]
	return s, ok
}

// AlignedIDs returns the downsample ids present on this metric, sorted.
func (m *Metric) AlignedIDs() []string {
	ids := make([]string, 0, len(m.aligned))
	for id := range m.aligned {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
