package verilog

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/bels"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/pcf"
	"github.com/google/go-cmp/cmp"
)

func testDesign() *bels.Design {
	return &bels.Design{
		CellSettings: bels.SettingsMap{
			{X: 2, Y: 3}: {"BEL0": {"TA1", "QCK"}},
		},
		IOSettings: bels.SettingsMap{
			{X: 6, Y: 2}: {"IOB": {"INEN"}},
		},
		Connections: bels.ConnectionMap{
			{X: 2, Y: 3}: {"TA1": {Loc: device.Loc{X: 6, Y: 2}, Pin: "IQ"}},
		},
		InversionPins: bels.InversionPins,
		IONames: map[device.Loc]string{
			{X: 6, Y: 2}: "FBIO_1",
		},
	}
}

func testDB() *device.Database {
	return &device.Database{
		CellsLibrary: map[string]device.CellType{
			"LOGIC": {Type: "LOGIC", Pins: []device.Pin{
				{Name: "TA1", Direction: device.PinInput},
				{Name: "QCK", Direction: device.PinInput},
				{Name: "CZ", Direction: device.PinOutput},
			}},
			"BIDIR": {Type: "BIDIR", Pins: []device.Pin{
				{Name: "IQ", Direction: device.PinOutput},
				{Name: "IZ", Direction: device.PinInput},
			}},
		},
		TileGrid: map[device.Loc]device.Tile{
			{X: 2, Y: 3}: {Type: "LOGICT", Name: "LOGICT_X2Y3", Cells: []device.Cell{{Type: "LOGIC", Name: "BEL0"}}},
			{X: 6, Y: 2}: {Type: "BIDIRT", Name: "BIDIRT_X6Y2", Cells: []device.Cell{{Type: "BIDIR", Name: "IOB"}}},
		},
	}
}

func TestVerilogStructure(t *testing.T) {
	gen := NewGenerator(testDesign(), testDB(), nil)
	out := gen.Verilog()

	for _, fragment := range []string{
		"module top (",
		"inout wire FBIO_1",
		"wire X6Y2_IQ;",
		".TAS1(1'b1)",
		".QCKS(1'b1)",
		".TA1(X6Y2_IQ)",
		"LOGIC",
		" X2Y3_BEL0 (",
		"BIDIR",
		".INEN(1'b1)",
		".P(FBIO_1)",
		".IQ(X6Y2_IQ)",
		"endmodule",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, out)
		}
	}
}

func TestVerilogConstrainedNetNames(t *testing.T) {
	constraints := pcf.Constraints{"FBIO_1": "led"}
	gen := NewGenerator(testDesign(), testDB(), constraints)
	out := gen.Verilog()

	if !strings.Contains(out, "inout wire led") {
		t.Errorf("expected constrained net name in ports:\n%s", out)
	}
	if strings.Contains(out, "inout wire FBIO_1") {
		t.Errorf("package pin name should be replaced by the net name:\n%s", out)
	}

	want := pcf.Constraints{"FBIO_1": "led"}
	if diff := cmp.Diff(want, gen.Constraints()); diff != "" {
		t.Errorf("constraints mismatch (-want +got):\n%s", diff)
	}
}

func TestVerilogDeterministic(t *testing.T) {
	first := NewGenerator(testDesign(), testDB(), nil).Verilog()
	for i := 0; i < 10; i++ {
		again := NewGenerator(testDesign(), testDB(), nil).Verilog()
		if first != again {
			t.Fatalf("generation not deterministic:\n--- first\n%s\n--- again\n%s",
				first, again)
		}
	}
}
