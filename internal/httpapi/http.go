package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"vendsim/internal/config"
	"vendsim/internal/events"
	"vendsim/internal/fleet"
	"vendsim/internal/metrics"
	"vendsim/internal/store"
)

// Router builds the /ops HTTP surface around the running simulation.
type Router struct {
	cfg   config.Config
	store *store.Store
	bus   *events.Dispatcher
	fleet *fleet.Fleet
}

func NewRouter(cfg config.Config, st *store.Store, bus *events.Dispatcher, f *fleet.Fleet) *Router {
	return &Router{cfg: cfg, store: st, bus: bus, fleet: f}
}

func (r *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ops/health", r.health)
	mux.HandleFunc("/ops/status", r.status)
	mux.HandleFunc("/ops/machines", r.machines)
	mux.HandleFunc("/ops/alerts", r.alerts)
	mux.HandleFunc("/ops/events", r.inject)
}

func (r *Router) status(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, map[string]any{
		"dispatcher": r.bus.Stats(),
		"metrics":    metrics.Snapshot(),
		"machines":   r.fleet.Len(),
	})
}

func (r *Router) machines(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, r.fleet.List())
}

func (r *Router) alerts(w http.ResponseWriter, req *http.Request) {
	list, err := r.store.ListAlerts(req.Context(), 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, list)
}

// inject publishes an externally supplied sale or refill event. Warning
// kinds are reserved for the handlers themselves.
func (r *Router) inject(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		MachineID string `json:"machine_id"`
		Kind      string `json:"kind"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var ev events.Event
	switch events.Kind(body.Kind) {
	case events.KindSale:
		ev = events.NewSale(body.MachineID, body.Qty)
	case events.KindRefill:
		ev = events.NewRefill(body.MachineID, body.Qty)
	default:
		http.Error(w, "kind must be sale or refill", http.StatusBadRequest)
		return
	}
	if err := r.bus.Publish(ev); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	metrics.IncEventsInjected()
	respondJSON(w, ev)
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if err := r.store.Health(req.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json: %v", err)
	}
}
