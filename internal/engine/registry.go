package engine

import "sync"

// Registry accumulates the component ids referenced by non-ignore rules over
// a whole run. It backs the end-of-run "component never found" check and the
// check-mode summary. Safe for concurrent use should documents ever be
// processed in parallel.
type Registry struct {
	mu    sync.Mutex
	order []string
	seen  map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Record notes that component was referenced by a rule. Recording the same
// component twice is a no-op; first-seen order is preserved.
func (r *Registry) Record(component string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[component]; ok {
		return
	}
	r.seen[component] = struct{}{}
	r.order = append(r.order, component)
}

// Contains reports whether component was recorded.
func (r *Registry) Contains(component string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[component]
	return ok
}

// Components returns the recorded component ids in first-seen order.
func (r *Registry) Components() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
