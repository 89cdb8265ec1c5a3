package events

import (
	"fmt"
	"sync"
)

// Handler reacts to one delivered event. Handlers may publish new events
// from inside Handle; those are queued behind everything already pending.
// Implementations must be comparable (the registry tracks identity), so
// register pointers, not func values.
type Handler interface {
	Handle(Event) error
}

// Stats exposes dispatcher counters.
type Stats struct {
	Published uint64 `json:"published"`
	Delivered uint64 `json:"delivered"`
	Pending   int    `json:"pending"`
}

// Dispatcher is a synchronous in-process pub/sub bus. Events are delivered
// in global FIFO order across all kinds; the first Publish on an idle
// dispatcher drains the queue to empty before returning, and publishes made
// by handlers during that drain only enqueue.
type Dispatcher struct {
	mu        sync.Mutex
	subs      map[Kind]map[Handler]struct{}
	pending   []Event
	draining  bool
	published uint64
	delivered uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[Kind]map[Handler]struct{})}
}

// Subscribe registers h for events of the given kind. Subscribing the same
// handler twice for one kind has no additional effect.
func (d *Dispatcher) Subscribe(kind Kind, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set, ok := d.subs[kind]
	if !ok {
		set = make(map[Handler]struct{})
		d.subs[kind] = set
	}
	set[h] = struct{}{}
}

// Unsubscribe removes h from the given kind. Removing an absent pair is a
// no-op. An event already being delivered still reaches h (snapshot rule).
func (d *Dispatcher) Unsubscribe(kind Kind, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if set, ok := d.subs[kind]; ok {
		delete(set, h)
	}
}

// Publish enqueues ev and, unless a drain is already running, delivers
// every pending event before returning. A handler error aborts the drain:
// it propagates to the caller and whatever is still queued stays pending
// until the next Publish.
func (d *Dispatcher) Publish(ev Event) error {
	d.mu.Lock()
	d.pending = append(d.pending, ev)
	d.published++
	if d.draining {
		d.mu.Unlock()
		return nil
	}
	d.draining = true
	for len(d.pending) > 0 {
		next := d.pending[0]
		d.pending = d.pending[1:]
		snapshot := make([]Handler, 0, len(d.subs[next.Kind]))
		for h := range d.subs[next.Kind] {
			snapshot = append(snapshot, h)
		}
		d.mu.Unlock()
		for _, h := range snapshot {
			if err := h.Handle(next); err != nil {
				d.mu.Lock()
				d.draining = false
				d.mu.Unlock()
				return fmt.Errorf("deliver %s event for machine %s: %w", next.Kind, next.MachineID, err)
			}
			d.mu.Lock()
			d.delivered++
			d.mu.Unlock()
		}
		d.mu.Lock()
	}
	d.draining = false
	d.mu.Unlock()
	return nil
}

// Stats returns current dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{Published: d.published, Delivered: d.delivered, Pending: len(d.pending)}
}
