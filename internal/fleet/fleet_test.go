package fleet

import "testing"

func TestAddKeepsExistingQuantity(t *testing.T) {
	f := New()
	f.Add("001", 10)
	f.Add("001", 99)
	if m, _ := f.Get("001"); m.Qty != 10 {
		t.Fatalf("expected qty 10 preserved, got %d", m.Qty)
	}
}

func TestAdjustUnknownMachine(t *testing.T) {
	f := New()
	if _, ok := f.Adjust("missing", -1); ok {
		t.Fatal("expected adjust on unknown machine to report false")
	}
}

func TestAdjustAndList(t *testing.T) {
	f := New()
	f.Add("b", 5)
	f.Add("a", 3)
	if qty, ok := f.Adjust("a", -2); !ok || qty != 1 {
		t.Fatalf("adjust: ok=%v qty=%d", ok, qty)
	}
	list := f.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 machines, got %d", len(list))
	}
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("expected sorted order, got %v", list)
	}
	if list[0].Qty != 1 {
		t.Fatalf("expected qty 1 for machine a, got %d", list[0].Qty)
	}
}
