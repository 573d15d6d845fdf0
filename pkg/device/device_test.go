package device

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLoc(t *testing.T) {
	tests := []struct {
		in      string
		want    Loc
		wantErr bool
	}{
		{"X0Y0", Loc{X: 0, Y: 0}, false},
		{"X3Y5", Loc{X: 3, Y: 5}, false},
		{"X12Y34", Loc{X: 12, Y: 34}, false},
		{"Y3X5", Loc{}, true},
		{"X3", Loc{}, true},
		{"", Loc{}, true},
	}

	for _, tt := range tests {
		got, err := ParseLoc(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLoc(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLoc(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLoc(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLocRoundTrip(t *testing.T) {
	loc := Loc{X: 7, Y: 11}
	parsed, err := ParseLoc(loc.String())
	if err != nil {
		t.Fatalf("ParseLoc(%q): %v", loc.String(), err)
	}
	if parsed != loc {
		t.Errorf("round trip changed %v to %v", loc, parsed)
	}
}

func TestLocBefore(t *testing.T) {
	tests := []struct {
		a, b Loc
		want bool
	}{
		{Loc{X: 1, Y: 1}, Loc{X: 2, Y: 0}, true},
		{Loc{X: 2, Y: 0}, Loc{X: 1, Y: 1}, false},
		{Loc{X: 1, Y: 1}, Loc{X: 1, Y: 2}, true},
		{Loc{X: 1, Y: 1}, Loc{X: 1, Y: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Before(tt.b); got != tt.want {
			t.Errorf("%v.Before(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPinDirectionText(t *testing.T) {
	var d PinDirection
	if err := d.UnmarshalText([]byte("output")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d != PinOutput {
		t.Errorf("expected PinOutput, got %v", d)
	}
	if err := d.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("expected error for invalid direction")
	}
}

const testDB = `{
  "cells_library": {
    "LOGIC": {"type": "LOGIC", "pins": [
      {"name": "TA1", "direction": "input"},
      {"name": "CZ", "direction": "output"}
    ]}
  },
  "tile_types": {
    "LOGICT": {"type": "LOGICT", "cells": ["LOGIC"]}
  },
  "phy_tile_grid": {
    "X2Y3": {"type": "LOGICT", "name": "LOGICT_X2Y3", "cells": [
      {"type": "LOGIC", "name": "BEL0"}
    ]}
  },
  "switchbox_types": {
    "SB": {
      "type": "SB",
      "stages": {"0": {"id": 0, "switches": {"0": {"id": 0, "muxes": {
        "0": {"id": 0, "inputs": [{"id": 0, "name": "IN_A"}]}
      }}}}},
      "connections": [],
      "outputs": {"OUT": {"name": "OUT", "loc": {"stage": 0, "switch": 0, "mux": 0, "pin": 0, "direction": "output"}}}
    }
  },
  "switchbox_grid": {"X2Y3": "SB"},
  "connections": [
    {"src": {"loc": "X1Y3", "pin": "CZ"}, "dst": {"loc": "X2Y3", "pin": "TA1"}}
  ],
  "package_pinmaps": {
    "PD64": {"FBIO_1": [{"name": "FBIO_1", "loc": "X2Y3"}]}
  }
}`

func TestDecodeDatabase(t *testing.T) {
	db, err := Decode(strings.NewReader(testDB))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	tile, ok := db.TileGrid[Loc{X: 2, Y: 3}]
	if !ok {
		t.Fatal("tile X2Y3 missing from grid")
	}
	if tile.Type != "LOGICT" || len(tile.Cells) != 1 || tile.Cells[0].Name != "BEL0" {
		t.Errorf("unexpected tile: %+v", tile)
	}

	sb, ok := db.SwitchboxTypes["SB"]
	if !ok {
		t.Fatal("switchbox type SB missing")
	}
	if sb.HighwayStage != DefaultHighwayStage {
		t.Errorf("expected default highway stage %d, got %d",
			DefaultHighwayStage, sb.HighwayStage)
	}
	mux, ok := sb.Mux(0, 0, 0)
	if !ok {
		t.Fatal("mux 0/0/0 missing")
	}
	want := []MuxInput{{ID: 0, Name: "IN_A"}}
	if diff := cmp.Diff(want, mux.Inputs); diff != "" {
		t.Errorf("mux inputs mismatch (-want +got):\n%s", diff)
	}

	out, ok := sb.Outputs["OUT"]
	if !ok || out.Loc.Direction != PinOutput {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestNewIndex(t *testing.T) {
	db, err := Decode(strings.NewReader(testDB))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	idx, err := NewIndex(db, "PD64")
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	if _, ok := idx.SwitchboxAt(Loc{X: 2, Y: 3}); !ok {
		t.Error("expected switchbox at X2Y3")
	}
	if _, ok := idx.SwitchboxAt(Loc{X: 0, Y: 0}); ok {
		t.Error("unexpected switchbox at X0Y0")
	}

	conns := idx.ConnectionsAt(Loc{X: 2, Y: 3})
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection at X2Y3, got %d", len(conns))
	}

	pins := idx.PinNames("LOGIC")
	if !pins["TA1"] || !pins["CZ"] {
		t.Errorf("incomplete pin name set: %v", pins)
	}

	name, ok := idx.PackagePinAt(Loc{X: 2, Y: 3})
	if !ok || name != "FBIO_1" {
		t.Errorf("expected FBIO_1 at X2Y3, got %q (%v)", name, ok)
	}

	if _, err := NewIndex(db, "QFN32"); err == nil {
		t.Error("expected error for unknown package")
	}
}
