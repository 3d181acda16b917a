package layout

// Layout registry, keyed by flow.

import (
	"sync"

	"github.com/tturner/pniodip/internal/pnio"
)

// Key identifies one flow: source and destination link-layer address
// plus the frame ID. Comparable, equality by value.
type Key struct {
	Src     pnio.Addr
	Dst     pnio.Addr
	FrameID pnio.FrameID
}

// Registry holds the configured sub-frame layouts. Lookups return an
// owned snapshot, so an in-flight decode is never affected by a
// concurrent update.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]Entry)}
}

// Lookup returns a clone of the entry for a flow, or ok=false when no
// layout is configured. Absence is not an error: the caller falls back
// to a default raw layout.
func (r *Registry) Lookup(k Key) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[k]
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// Put stores a layout for a flow after validating every descriptor.
// The entry is cloned on the way in, so later caller mutation cannot
// reach the stored copy.
func (r *Registry) Put(k Key, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[k] = e.Clone()
	return nil
}

// Delete removes a flow's layout.
func (r *Registry) Delete(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, k)
}

// Len returns the number of configured flows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
