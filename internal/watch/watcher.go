package watch

import (
	"context"
	"log"
	"path/filepath"

	"vendsim/internal/config"
	"vendsim/internal/fleet"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the fleet file and registers newly listed machines
// while the simulation is running. Existing machines keep their quantity.
type Watcher struct {
	cfg   config.Config
	fleet *fleet.Fleet
}

func New(cfg config.Config, f *fleet.Fleet) *Watcher {
	return &Watcher{cfg: cfg, fleet: f}
}

func (w *Watcher) Start(ctx context.Context) error {
	if !w.cfg.EnableWatcher {
		log.Println("watcher disabled")
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	target := filepath.Clean(w.cfg.FleetPath)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 && filepath.Clean(evt.Name) == target {
					w.reload()
				}
			case err := <-watcher.Errors:
				log.Printf("watcher error: %v", err)
			}
		}
	}()
	// Watch the directory; editors replace the file on save.
	return watcher.Add(filepath.Dir(target))
}

func (w *Watcher) reload() {
	ff, err := config.LoadFleetFile(w.cfg.FleetPath)
	if err != nil {
		log.Printf("fleet reload: %v", err)
		return
	}
	added := 0
	for _, seed := range ff.Machines {
		if _, ok := w.fleet.Get(seed.ID); !ok {
			w.fleet.Add(seed.ID, seed.Qty)
			added++
		}
	}
	if added > 0 {
		log.Printf("fleet reload: machines_added=%d total=%d", added, w.fleet.Len())
	}
}
