package app

import (
	"context"
	"log"
	"net/http"

	"vendsim/internal/config"
	"vendsim/internal/events"
	"vendsim/internal/fleet"
	"vendsim/internal/httpapi"
	"vendsim/internal/report"
	"vendsim/internal/sim"
	"vendsim/internal/stock"
	"vendsim/internal/store"
	"vendsim/internal/watch"
)

// App wires the simulation components together.
type App struct {
	cfg     config.Config
	store   *store.Store
	bus     *events.Dispatcher
	fleet   *fleet.Fleet
	sim     *sim.Runner
	watcher *watch.Watcher
	mux     *http.ServeMux
}

func New(cfg config.Config) (*App, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	ff, err := config.LoadFleetFile(cfg.FleetPath)
	if err != nil {
		return nil, err
	}
	threshold := cfg.LowStockThreshold
	if ff.Threshold > 0 {
		threshold = ff.Threshold
	}

	f := fleet.New()
	for _, seed := range ff.Machines {
		f.Add(seed.ID, seed.Qty)
	}

	bus := events.NewDispatcher()
	saleHandler := stock.NewSaleHandler(bus, f, threshold)
	refillHandler := stock.NewRefillHandler(bus, f, threshold)
	tracker := stock.NewAlertTracker(cfg, st)
	bus.Subscribe(events.KindSale, saleHandler)
	bus.Subscribe(events.KindRefill, refillHandler)
	bus.Subscribe(events.KindLowStock, tracker)
	bus.Subscribe(events.KindStockOK, tracker)

	watcher := watch.New(cfg, f)
	mux := http.NewServeMux()
	router := httpapi.NewRouter(cfg, st, bus, f)
	router.Register(mux)

	return &App{
		cfg:     cfg,
		store:   st,
		bus:     bus,
		fleet:   f,
		sim:     sim.New(cfg, bus, f),
		watcher: watcher,
		mux:     mux,
	}, nil
}

// Run starts the watcher and HTTP server, drives the simulation if
// enabled, and persists the final fleet state on shutdown.
func (a *App) Run(ctx context.Context) error {
	if err := a.watcher.Start(ctx); err != nil {
		return err
	}
	srv := &http.Server{Addr: ":" + a.cfg.HTTPPort, Handler: a.mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	log.Printf("http listening on %s", a.cfg.HTTPPort)

	if a.cfg.EnableSim {
		if err := a.sim.Run(ctx); err != nil {
			return err
		}
		a.logReport(ctx)
	}

	err := srv.ListenAndServe()
	a.persistFleet(context.Background())
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (a *App) logReport(ctx context.Context) {
	counts, err := a.store.AlertCounts(ctx)
	if err != nil {
		log.Printf("alert counts: %v", err)
		counts = nil
	}
	log.Printf("%s", report.Summary(a.fleet.List(), counts))
}

func (a *App) persistFleet(ctx context.Context) {
	for _, m := range a.fleet.List() {
		if err := a.store.UpsertMachine(ctx, m.ID, m.Qty, config.Now()); err != nil {
			log.Printf("persist machine %s: %v", m.ID, err)
		}
	}
}

func (a *App) Bus() *events.Dispatcher { return a.bus }
func (a *App) Fleet() *fleet.Fleet     { return a.fleet }
func (a *App) Store() *store.Store     { return a.store }
func (a *App) Mux() *http.ServeMux     { return a.mux }
