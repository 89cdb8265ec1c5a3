// Package stock implements the subscribers reacting to machine events.
package stock

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"vendsim/internal/config"
	"vendsim/internal/events"
	"vendsim/internal/fleet"
	"vendsim/internal/metrics"
	"vendsim/internal/notify"
)

// SaleHandler applies sale events to the fleet and raises low-stock events
// when a machine drops below the threshold. Sales against unknown machines
// are skipped.
type SaleHandler struct {
	bus       *events.Dispatcher
	fleet     *fleet.Fleet
	threshold int
}

func NewSaleHandler(bus *events.Dispatcher, f *fleet.Fleet, threshold int) *SaleHandler {
	return &SaleHandler{bus: bus, fleet: f, threshold: threshold}
}

func (h *SaleHandler) Handle(ev events.Event) error {
	qty, ok := h.fleet.Adjust(ev.MachineID, -ev.Qty)
	if !ok {
		return nil
	}
	if qty < h.threshold {
		return h.bus.Publish(events.NewLowStock(ev.MachineID))
	}
	return nil
}

// RefillHandler applies refill events and raises stock-ok events once a
// machine is back at or above the threshold.
type RefillHandler struct {
	bus       *events.Dispatcher
	fleet     *fleet.Fleet
	threshold int
}

func NewRefillHandler(bus *events.Dispatcher, f *fleet.Fleet, threshold int) *RefillHandler {
	return &RefillHandler{bus: bus, fleet: f, threshold: threshold}
}

func (h *RefillHandler) Handle(ev events.Event) error {
	qty, ok := h.fleet.Adjust(ev.MachineID, ev.Qty)
	if !ok {
		return nil
	}
	if qty >= h.threshold {
		return h.bus.Publish(events.NewStockOK(ev.MachineID))
	}
	return nil
}

// Journal records alert transitions durably.
type Journal interface {
	RecordAlert(ctx context.Context, machineID, state string, ts time.Time) error
}

// AlertTracker keeps a per-machine warned flag and reports only on the
// OK->warned and warned->OK transitions; repeated low-stock or stock-ok
// events for a machine are suppressed.
type AlertTracker struct {
	cfg     config.Config
	journal Journal

	mu     sync.Mutex
	warned map[string]bool
}

// NewAlertTracker builds a tracker. journal may be nil to disable the
// durable journal (tests).
func NewAlertTracker(cfg config.Config, journal Journal) *AlertTracker {
	return &AlertTracker{cfg: cfg, journal: journal, warned: make(map[string]bool)}
}

func (t *AlertTracker) Handle(ev events.Event) error {
	switch ev.Kind {
	case events.KindLowStock:
		return t.transition(ev.MachineID, true)
	case events.KindStockOK:
		return t.transition(ev.MachineID, false)
	default:
		return nil
	}
}

func (t *AlertTracker) transition(machineID string, warned bool) error {
	t.mu.Lock()
	if t.warned[machineID] == warned {
		t.mu.Unlock()
		return nil
	}
	t.warned[machineID] = warned
	t.mu.Unlock()

	state := "cleared"
	if warned {
		state = "warned"
		metrics.IncWarningsRaised()
	} else {
		metrics.IncWarningsCleared()
	}
	log.Printf("stock alert machine=%s state=%s", machineID, state)

	if t.journal != nil {
		if err := t.journal.RecordAlert(context.Background(), machineID, state, config.Now()); err != nil {
			return fmt.Errorf("journal alert machine %s: %w", machineID, err)
		}
	}
	msg := notify.Message{MachineID: machineID, State: state, Text: fmt.Sprintf("machine %s %s", machineID, state)}
	if err := notify.SendWebhook(t.cfg, msg); err != nil {
		log.Printf("webhook notify: %v", err)
	}
	return nil
}

// Warned reports whether the machine is currently in the warned state.
func (t *AlertTracker) Warned(machineID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.warned[machineID]
}
