package bels

import (
	"errors"
	"testing"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

func TestSplitHop(t *testing.T) {
	tests := []struct {
		in    string
		base  string
		off   hopOffset
		isHop bool
	}{
		{"V4T0_N1", "V4T0", hopOffset{0, 1}, true},
		{"V4T0_S2", "V4T0", hopOffset{0, -2}, true},
		{"H2L1_E1", "H2L1", hopOffset{1, 0}, true},
		{"H2L1_W3", "H2L1", hopOffset{-3, 0}, true},
		{"CZ", "CZ", hopOffset{}, false},
		{"V4T0", "V4T0", hopOffset{}, false},
	}

	for _, tt := range tests {
		base, off, isHop := splitHop(tt.in)
		if base != tt.base || off != tt.off || isHop != tt.isHop {
			t.Errorf("splitHop(%q) = (%q, %+v, %v), want (%q, %+v, %v)",
				tt.in, base, off, isHop, tt.base, tt.off, tt.isHop)
		}
	}
}

func TestResolveHopDirect(t *testing.T) {
	// A source that is not a hop wire resolves to itself in place.
	ref, err := resolveHop(device.Loc{X: 2, Y: 3}, "CZ", nil)
	if err != nil {
		t.Fatalf("resolveHop: %v", err)
	}
	want := SourceRef{Loc: device.Loc{X: 2, Y: 3}, Pin: "CZ"}
	if ref != want {
		t.Errorf("ref = %v, want %v", ref, want)
	}
}

func TestResolveHopNorth(t *testing.T) {
	// One hop north with no further entry at the target: the wire connects
	// directly to a pin there.
	ref, err := resolveHop(device.Loc{X: 2, Y: 3}, "V4T1_N1", map[device.Loc]map[string]string{})
	if err != nil {
		t.Fatalf("resolveHop: %v", err)
	}
	want := SourceRef{Loc: device.Loc{X: 2, Y: 4}, Pin: "V4T1"}
	if ref != want {
		t.Errorf("ref = %v, want %v", ref, want)
	}
}

func TestResolveHopChain(t *testing.T) {
	hops := map[device.Loc]map[string]string{
		{X: 2, Y: 4}: {"V4T1": "H2R0_E2"},
		{X: 4, Y: 4}: {"H2R0": "CZ"},
	}

	ref, err := resolveHop(device.Loc{X: 2, Y: 3}, "V4T1_N1", hops)
	if err != nil {
		t.Fatalf("resolveHop: %v", err)
	}
	want := SourceRef{Loc: device.Loc{X: 4, Y: 4}, Pin: "CZ"}
	if ref != want {
		t.Errorf("ref = %v, want %v", ref, want)
	}
}

func TestResolveHopCycle(t *testing.T) {
	hops := map[device.Loc]map[string]string{
		{X: 2, Y: 4}: {"V4T1": "V4T1_S1"},
		{X: 2, Y: 3}: {"V4T1": "V4T1_N1"},
	}

	_, err := resolveHop(device.Loc{X: 2, Y: 3}, "V4T1_N1", hops)
	var cycle *HopCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected HopCycleError, got %v", err)
	}
}
