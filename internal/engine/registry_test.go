package engine

import (
	"testing"
)

func TestRegistry_RecordKeepsFirstSeenOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Record("mender")
	reg.Record("integration")
	reg.Record("mender")
	reg.Record("mender-artifact")
	reg.Record("integration")

	got := reg.Components()
	want := []string{"mender", "integration", "mender-artifact"}
	if len(got) != len(want) {
		t.Fatalf("components = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("components = %v, want %v", got, want)
		}
	}
}

func TestRegistry_Contains(t *testing.T) {
	reg := NewRegistry()
	if reg.Contains("mender") {
		t.Error("empty registry claims to contain mender")
	}
	reg.Record("mender")
	if !reg.Contains("mender") {
		t.Error("recorded component not found")
	}
	if reg.Contains("integration") {
		t.Error("unrecorded component reported as present")
	}
}

func TestRegistry_EmptyComponents(t *testing.T) {
	reg := NewRegistry()
	if got := reg.Components(); len(got) != 0 {
		t.Errorf("components = %v, want empty", got)
	}
}
