package metric

import "sync"

// Registry holds metrics by key. Lookup and creation are safe for concurrent
// use; the series owned by each metric are not, and keep the single-owner
// discipline of the series package.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]*Metric)}
}

// GetOrCreate returns the metric with the given name and tags, creating it
// if absent.
func (r *Registry) GetOrCreate(name string, tags map[string]string) *Metric {
	key := Key(name, tags)

	r.mu.RLock()
	m, ok := r.metrics[key]
	r.mu.RUnlock()
	if ok {
		return m
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.metrics[key]; ok {
		return m
	}
	m = New(name, tags)
	r.metrics[key] = m
	return m
}

// Get returns the metric with the given key.
func (r *Registry) Get(key string) (*Metric, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.metrics[key]
	return m, ok
}

// List returns a snapshot of all registered metrics.
func (r *Registry) List() []*Metric {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Metric, 0, len(r.metrics))
	for _, m := range r.metrics {
		out = append(out, m)
	}
	return out
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.metrics)
}
