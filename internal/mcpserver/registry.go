package mcpserver

import (
	"sync"

	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/runner"
)

// entry is a live run plus its cached enrichment.
type entry struct {
	run        *runner.Run
	enrichment *enrichment.Report
}

// Registry holds the runs started through the tool surface. A run's session
// is only touched while the registry lock is held.
type Registry struct {
	mu   sync.Mutex
	runs map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*entry)}
}

// Add registers run under its ID.
func (r *Registry) Add(run *runner.Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = &entry{run: run}
}

// With calls fn with the entry for id under the lock. It reports false when
// no such run exists.
func (r *Registry) With(id string, fn func(e *entry)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.runs[id]
	if !ok {
		return false
	}
	fn(e)
	return true
}

// Len returns the number of registered runs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}
