package store

import (
	"context"
	"path/filepath"
	"testing"

	"vendsim/internal/config"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUpsertAndListMachines(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()
	ts := config.Now()

	if err := st.UpsertMachine(ctx, "001", 10, ts); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := st.UpsertMachine(ctx, "001", 4, ts); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if err := st.UpsertMachine(ctx, "002", 7, ts); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	machines, err := st.ListMachines(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(machines) != 2 {
		t.Fatalf("expected 2 machines, got %d", len(machines))
	}
	if machines[0].MachineID != "001" || machines[0].Qty != 4 {
		t.Fatalf("unexpected first machine: %+v", machines[0])
	}
}

func TestAlertJournal(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	for _, rec := range []struct{ id, state string }{
		{"001", StateWarned},
		{"001", StateCleared},
		{"002", StateWarned},
	} {
		if err := st.RecordAlert(ctx, rec.id, rec.state, config.Now()); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	alerts, err := st.ListAlerts(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	// Newest first.
	if alerts[0].MachineID != "002" || alerts[0].State != StateWarned {
		t.Fatalf("unexpected newest alert: %+v", alerts[0])
	}

	counts, err := st.AlertCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["001"][StateWarned] != 1 || counts["001"][StateCleared] != 1 {
		t.Fatalf("unexpected counts for 001: %v", counts["001"])
	}
	if counts["002"][StateWarned] != 1 {
		t.Fatalf("unexpected counts for 002: %v", counts["002"])
	}
}

func TestHealth(t *testing.T) {
	st := openTest(t)
	if err := st.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
