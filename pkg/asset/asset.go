// Package asset provides the label-addressed registry the conversion
// pipeline registers its outputs in, and the stable handles it hands out.
package asset

import (
	"sync"

	"github.com/google/uuid"
)

// Handle identifies one registered asset. Handles are comparable and
// stable for the lifetime of the registry. The zero Handle is a valid
// placeholder that refers to no asset; consumers substitute their own
// default (for example a default material) when they meet one.
type Handle struct {
	id uuid.UUID
}

// NewHandle returns a fresh unique handle.
func NewHandle() Handle {
	return Handle{id: uuid.New()}
}

// IsZero reports whether h is the placeholder handle.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

// String returns a short form of the handle for logs.
func (h Handle) String() string {
	if h.IsZero() {
		return "handle(zero)"
	}
	return "handle(" + h.id.String()[:8] + ")"
}

// Registry is the host-side sink for named assets. The pipeline only
// needs to register values under deterministic labels and re-resolve
// labels it has seen before.
type Registry interface {
	// Register stores value under label and returns its handle.
	// Registering a label that already exists returns the original
	// handle and keeps the first value.
	Register(label string, value any) Handle

	// Lookup returns the handle registered for label.
	Lookup(label string) (Handle, bool)

	// Get returns the value behind a handle.
	Get(h Handle) (any, bool)
}

// MemoryRegistry is an in-memory Registry safe for concurrent use.
type MemoryRegistry struct {
	mu      sync.RWMutex
	byLabel map[string]Handle
	values  map[Handle]any

	// Stats
	hits   int
	misses int
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		byLabel: make(map[string]Handle),
		values:  make(map[Handle]any),
	}
}

// Register stores value under label, keeping the first value when the
// label already exists.
func (r *MemoryRegistry) Register(label string, value any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.byLabel[label]; ok {
		return h
	}
	h := NewHandle()
	r.byLabel[label] = h
	r.values[h] = value
	return h
}

// Lookup returns the handle registered for label.
func (r *MemoryRegistry) Lookup(label string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.byLabel[label]
	if ok {
		r.hits++
	} else {
		r.misses++
	}
	return h, ok
}

// Get returns the value behind a handle.
func (r *MemoryRegistry) Get(h Handle) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[h]
	return value, ok
}

// Len returns the number of registered assets.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byLabel)
}

// Stats returns lookup statistics.
func (r *MemoryRegistry) Stats() (hits, misses int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits, r.misses
}
