package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vendsim/internal/config"
	"vendsim/internal/events"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	fleetPath := filepath.Join(dir, "fleet.yaml")
	doc := "threshold: 3\nmachines:\n  - id: \"001\"\n    qty: 10\n  - id: \"002\"\n    qty: 10\n  - id: \"003\"\n    qty: 10\n"
	if err := os.WriteFile(fleetPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return config.Config{
		DBPath:            filepath.Join(dir, "test.db"),
		FleetPath:         fleetPath,
		LowStockThreshold: 3,
	}
}

func TestNewSeedsFleetFromFile(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Store().Close()
	if a.Fleet().Len() != 3 {
		t.Fatalf("expected 3 machines, got %d", a.Fleet().Len())
	}
}

func TestWiredScenarioJournalsTransitions(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Store().Close()

	for _, ev := range []events.Event{
		events.NewSale("001", 8),
		events.NewSale("001", 1),
		events.NewRefill("001", 5),
	} {
		if err := a.Bus().Publish(ev); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	if m, _ := a.Fleet().Get("001"); m.Qty != 6 {
		t.Fatalf("expected qty 6, got %d", m.Qty)
	}
	alerts, err := a.Store().ListAlerts(context.Background(), 10)
	if err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected exactly one warning and one clear, got %d", len(alerts))
	}
	// Newest first: the clear follows the warning.
	if alerts[0].State != "cleared" || alerts[1].State != "warned" {
		t.Fatalf("unexpected journal order: %+v", alerts)
	}
}
