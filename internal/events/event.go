package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates event variants.
type Kind string

const (
	KindSale     Kind = "sale"
	KindRefill   Kind = "refill"
	KindLowStock Kind = "low_stock"
	KindStockOK  Kind = "stock_ok"
)

// Event is an immutable record of something that happened on a machine.
// Qty is meaningful for sale and refill events only.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	MachineID string    `json:"machine_id"`
	Qty       int       `json:"qty,omitempty"`
	At        time.Time `json:"at"`
}

func newEvent(kind Kind, machineID string, qty int) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		MachineID: machineID,
		Qty:       qty,
		At:        time.Now(),
	}
}

// NewSale records qty units sold from the given machine.
func NewSale(machineID string, qty int) Event {
	return newEvent(KindSale, machineID, qty)
}

// NewRefill records qty units added to the given machine.
func NewRefill(machineID string, qty int) Event {
	return newEvent(KindRefill, machineID, qty)
}

// NewLowStock flags the given machine as running low.
func NewLowStock(machineID string) Event {
	return newEvent(KindLowStock, machineID, 0)
}

// NewStockOK flags the given machine as stocked again.
func NewStockOK(machineID string) Event {
	return newEvent(KindStockOK, machineID, 0)
}
