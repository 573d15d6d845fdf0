package bels

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

// SourceRef is a fully resolved connection source: a pin at an absolute grid
// location.
type SourceRef struct {
	Loc device.Loc
	Pin string
}

func (s SourceRef) String() string {
	return fmt.Sprintf("%s.%s", s.Loc, s.Pin)
}

// SettingsMap holds active setting names per cell instance per location.
// Settings accumulate in observation order.
type SettingsMap map[device.Loc]map[string][]string

// Add appends a setting for an instance, creating the nested maps on first
// use.
func (m SettingsMap) Add(loc device.Loc, instance, setting string) {
	instances, ok := m[loc]
	if !ok {
		instances = make(map[string][]string)
		m[loc] = instances
	}
	instances[instance] = append(instances[instance], setting)
}

// ConnectionMap maps every driven sink pin to its resolved source.
type ConnectionMap map[device.Loc]map[string]SourceRef

// Set records the source driving a sink pin, creating the per-location map
// on first use.
func (m ConnectionMap) Set(loc device.Loc, sinkPin string, src SourceRef) {
	sinks, ok := m[loc]
	if !ok {
		sinks = make(map[string]SourceRef)
		m[loc] = sinks
	}
	sinks[sinkPin] = src
}

// InversionPins maps, per cell type, a logical input name to the setting that
// inverts it. The netlist writer uses this to tell inversion bits apart from
// ordinary configuration bits.
var InversionPins = map[string]map[string]string{
	"LOGIC": {
		"TA1": "TAS1",
		"TA2": "TAS2",
		"TB1": "TBS1",
		"TB2": "TBS2",
		"BA1": "BAS1",
		"BA2": "BAS2",
		"BB1": "BBS1",
		"BB2": "BBS2",
		"QCK": "QCKS",
	},
}

// Design is the completed output of a conversion run: the wiring and
// configuration model handed to the structural netlist generator.
type Design struct {
	// CellSettings holds active settings of logic, QMUX and GMUX cells.
	CellSettings SettingsMap
	// IOSettings holds active settings of interface cells, kept apart from
	// CellSettings so cell and IO configuration cannot collide by name.
	IOSettings SettingsMap
	// Connections maps every driven sink pin to its absolute source.
	Connections ConnectionMap
	// InversionPins is the inversion-bit naming table for the device.
	InversionPins map[string]map[string]string
	// IONames maps IO cell locations to package-level IO names.
	IONames map[device.Loc]string
}
