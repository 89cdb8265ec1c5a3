package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThresholdClamp(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "0")
	cfg := Load()
	if cfg.LowStockThreshold != 1 {
		t.Fatalf("expected threshold clamped to 1, got %d", cfg.LowStockThreshold)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Load()
	if cfg.LowStockThreshold != 3 {
		t.Fatalf("expected default threshold 3, got %d", cfg.LowStockThreshold)
	}
	if cfg.SimEvents != 20 {
		t.Fatalf("expected default sim events 20, got %d", cfg.SimEvents)
	}
	if !cfg.EnableSim {
		t.Fatal("expected sim enabled by default")
	}
}

func TestBadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("SIM_EVENTS", "lots")
	cfg := Load()
	if cfg.SimEvents != 20 {
		t.Fatalf("expected default on bad int, got %d", cfg.SimEvents)
	}
}

func TestLoadFleetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	doc := "threshold: 5\nmachines:\n  - id: \"001\"\n    qty: 10\n  - id: \"002\"\n    qty: 4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	ff, err := LoadFleetFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ff.Threshold != 5 {
		t.Fatalf("expected threshold 5, got %d", ff.Threshold)
	}
	if len(ff.Machines) != 2 || ff.Machines[0].ID != "001" || ff.Machines[0].Qty != 10 {
		t.Fatalf("unexpected machines: %+v", ff.Machines)
	}
}

func TestLoadFleetFileMissingIsEmpty(t *testing.T) {
	ff, err := LoadFleetFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected missing file to be tolerated: %v", err)
	}
	if len(ff.Machines) != 0 {
		t.Fatalf("expected empty fleet, got %+v", ff.Machines)
	}
}

func TestLoadFleetFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	if err := os.WriteFile(path, []byte("machines: [}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFleetFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
