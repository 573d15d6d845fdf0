package bels

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

func testMappings(t *testing.T) []MultiLocCellMapping {
	t.Helper()
	idx, err := device.NewIndex(testDatabase(), "PD64")
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return multiLocMappings(idx)
}

func TestMultiLocMappings(t *testing.T) {
	mappings := testMappings(t)

	if len(mappings) != 3 {
		t.Fatalf("expected 3 mappings, got %d: %+v", len(mappings), mappings)
	}

	// ASSP takes precedence, then RAMs, then multipliers.
	assp := mappings[0]
	if assp.Name != "ASSP" || assp.To != (device.Loc{X: 1, Y: 1}) {
		t.Errorf("unexpected ASSP mapping: %+v", assp)
	}
	if !assp.From[device.Loc{X: 1, Y: 1}] || !assp.From[device.Loc{X: 2, Y: 1}] {
		t.Errorf("incomplete ASSP footprint: %v", assp.From)
	}

	// RAM folds onto the first footprint location.
	ram := mappings[1]
	if ram.Name != "RAM_0" || ram.To != (device.Loc{X: 3, Y: 1}) {
		t.Errorf("unexpected RAM mapping: %+v", ram)
	}

	// Multipliers fold onto the second footprint location.
	mult := mappings[2]
	if mult.Name != "MULT_0" || mult.To != (device.Loc{X: 5, Y: 2}) {
		t.Errorf("unexpected MULT mapping: %+v", mult)
	}
}

func TestRemapLocNoFilter(t *testing.T) {
	mappings := testMappings(t)

	// Without a pin filter any mapping containing the location applies.
	if got := remapLoc(mappings, device.Loc{X: 3, Y: 2}, ""); got != (device.Loc{X: 3, Y: 1}) {
		t.Errorf("remapLoc(X3Y2) = %v, want X3Y1", got)
	}
	if got := remapLoc(mappings, device.Loc{X: 9, Y: 9}, ""); got != (device.Loc{X: 9, Y: 9}) {
		t.Errorf("remapLoc(X9Y9) = %v, want unchanged", got)
	}
}

func TestRemapLocPinFilter(t *testing.T) {
	mappings := testMappings(t)

	// The pin name decides which mapping governs a location.
	if got := remapLoc(mappings, device.Loc{X: 5, Y: 1}, "MA"); got != (device.Loc{X: 5, Y: 2}) {
		t.Errorf("remapLoc(X5Y1, MA) = %v, want X5Y2", got)
	}
	// A RAM pin never remaps a multiplier location.
	if got := remapLoc(mappings, device.Loc{X: 5, Y: 1}, "RDATA"); got != (device.Loc{X: 5, Y: 1}) {
		t.Errorf("remapLoc(X5Y1, RDATA) = %v, want unchanged", got)
	}
}

func TestRemapLocIdempotent(t *testing.T) {
	mappings := testMappings(t)

	// Canonical locations are fixed points of the remapping.
	for _, m := range mappings {
		once := remapLoc(mappings, m.To, "")
		twice := remapLoc(mappings, once, "")
		if once != twice {
			t.Errorf("mapping %s: remap not idempotent (%v then %v)",
				m.Name, once, twice)
		}
	}
}
