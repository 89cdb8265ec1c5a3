// Package sim generates the pseudo-random sale and refill traffic.
package sim

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"vendsim/internal/config"
	"vendsim/internal/events"
	"vendsim/internal/fleet"
)

// Runner publishes a configured number of random events into the
// dispatcher. A handler failure propagates out of Run unrecovered.
type Runner struct {
	cfg   config.Config
	bus   *events.Dispatcher
	fleet *fleet.Fleet
}

func New(cfg config.Config, bus *events.Dispatcher, f *fleet.Fleet) *Runner {
	return &Runner{cfg: cfg, bus: bus, fleet: f}
}

// Run emits SimEvents events against random machines. SIM_SEED=0 picks a
// time-based seed; any other value makes the run reproducible.
func (r *Runner) Run(ctx context.Context) error {
	machines := r.fleet.List()
	if len(machines) == 0 {
		log.Println("sim: no machines configured, nothing to do")
		return nil
	}
	seed := r.cfg.SimSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("sim: events=%d machines=%d seed=%d", r.cfg.SimEvents, len(machines), seed)

	for i := 0; i < r.cfg.SimEvents; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m := machines[rng.Intn(len(machines))]
		qty := 1 + rng.Intn(r.cfg.SimMaxQty)
		var ev events.Event
		if rng.Intn(2) == 0 {
			ev = events.NewSale(m.ID, qty)
		} else {
			ev = events.NewRefill(m.ID, qty)
		}
		if err := r.bus.Publish(ev); err != nil {
			return fmt.Errorf("sim publish %d/%d: %w", i+1, r.cfg.SimEvents, err)
		}
	}
	return nil
}
