// Package fleet tracks the simulated vending machines and their stock.
package fleet

import (
	"sort"
	"sync"
)

// Machine is a named stock counter.
type Machine struct {
	ID  string `json:"machine_id"`
	Qty int    `json:"qty"`
}

// Fleet holds the machines keyed by ID. It is read by the ops API from
// HTTP goroutines, so access is guarded even though event handling itself
// is single-threaded.
type Fleet struct {
	mu sync.RWMutex
	m  map[string]Machine
}

func New() *Fleet {
	return &Fleet{m: make(map[string]Machine)}
}

// Add registers a machine. An existing machine keeps its current quantity.
func (f *Fleet) Add(id string, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.m[id]; ok {
		return
	}
	f.m[id] = Machine{ID: id, Qty: qty}
}

// Get returns the machine with the given ID.
func (f *Fleet) Get(id string) (Machine, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	m, ok := f.m[id]
	return m, ok
}

// Adjust changes a machine's quantity by delta and returns the new value.
// Unknown machines report ok=false and are left untouched.
func (f *Fleet) Adjust(id string, delta int) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.m[id]
	if !ok {
		return 0, false
	}
	m.Qty += delta
	f.m[id] = m
	return m.Qty, true
}

// List returns a copy of all machines sorted by ID.
func (f *Fleet) List() []Machine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Machine, 0, len(f.m))
	for _, m := range f.m {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of machines.
func (f *Fleet) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.m)
}
