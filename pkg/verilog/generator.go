// Package verilog lowers a resolved design into a structural Verilog module
// plus the matching pin-constraint outputs.
package verilog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/bels"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/pcf"
)

// padPin is the pad-side port every IO cell exposes toward the package ball.
const padPin = "P"

// Generator renders one resolved design. Output is fully deterministic:
// locations ascend in (x, y) order and names are sorted.
type Generator struct {
	design      *bels.Design
	db          *device.Database
	constraints pcf.Constraints
	moduleName  string
}

// NewGenerator prepares rendering of a design. The constraints argument may
// be nil; when given, IO ports keep the net names the user constrained to
// the corresponding package pins.
func NewGenerator(design *bels.Design, db *device.Database, constraints pcf.Constraints) *Generator {
	return &Generator{
		design:      design,
		db:          db,
		constraints: constraints,
		moduleName:  "top",
	}
}

// ioPort is one top-level port of the generated module.
type ioPort struct {
	loc device.Loc
	net string
	pin string // package pin, empty when the location has no package entry
}

// ports lists the module's IO ports in location order.
func (g *Generator) ports() []ioPort {
	locs := make([]device.Loc, 0, len(g.design.IOSettings))
	for loc := range g.design.IOSettings {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })

	ports := make([]ioPort, 0, len(locs))
	for _, loc := range locs {
		port := ioPort{loc: loc, net: fmt.Sprintf("io_%d_%d", loc.X, loc.Y)}
		if pin, ok := g.design.IONames[loc]; ok {
			port.pin = pin
			port.net = pin
			if net, ok := g.constraints.NetForPin(pin); ok {
				port.net = net
			}
		}
		ports = append(ports, port)
	}
	return ports
}

// Verilog renders the structural module.
func (g *Generator) Verilog() string {
	var b strings.Builder

	ports := g.ports()
	portNets := make(map[device.Loc]string, len(ports))
	for _, p := range ports {
		portNets[p.loc] = sanitize(p.net)
	}

	fmt.Fprintf(&b, "module %s (\n", g.moduleName)
	for i, p := range ports {
		sep := ","
		if i == len(ports)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    inout wire %s%s\n", sanitize(p.net), sep)
	}
	b.WriteString(");\n\n")

	for _, wire := range g.wires() {
		fmt.Fprintf(&b, "    wire %s;\n", wire)
	}
	if len(g.wires()) > 0 {
		b.WriteString("\n")
	}

	for _, inst := range g.instances(portNets) {
		b.WriteString(inst)
		b.WriteString("\n")
	}

	b.WriteString("endmodule\n")
	return b.String()
}

// Constraints returns the package-pin assignment of every IO port, suitable
// for the PCF and QCF writers.
func (g *Generator) Constraints() pcf.Constraints {
	out := make(pcf.Constraints)
	for _, p := range g.ports() {
		if p.pin == "" {
			continue
		}
		out[p.pin] = sanitize(p.net)
	}
	return out
}

// wireName is the canonical net name of a resolved source.
func wireName(src bels.SourceRef) string {
	return sanitize(fmt.Sprintf("%s_%s", src.Loc, src.Pin))
}

// wires returns the sorted list of nets needed by the connection map.
func (g *Generator) wires() []string {
	seen := make(map[string]bool)
	for _, sinks := range g.design.Connections {
		for _, src := range sinks {
			seen[wireName(src)] = true
		}
	}
	wires := make([]string, 0, len(seen))
	for w := range seen {
		wires = append(wires, w)
	}
	sort.Strings(wires)
	return wires
}

// instance gathers everything rendered for one cell instance.
type instance struct {
	cellType string
	name     string
	params   []string
	conns    []string
}

// instances renders every configured cell in location order.
func (g *Generator) instances(portNets map[device.Loc]string) []string {
	drivenBy := make(map[device.Loc]map[string]string)
	for _, sinks := range g.design.Connections {
		for _, src := range sinks {
			pins, ok := drivenBy[src.Loc]
			if !ok {
				pins = make(map[string]string)
				drivenBy[src.Loc] = pins
			}
			pins[src.Pin] = wireName(src)
		}
	}

	locs := g.instanceLocs()
	var rendered []string
	for _, loc := range locs {
		for _, inst := range g.instancesAt(loc, drivenBy[loc], portNets) {
			rendered = append(rendered, renderInstance(inst))
		}
	}
	return rendered
}

// instanceLocs is the sorted union of all locations carrying settings or
// connections.
func (g *Generator) instanceLocs() []device.Loc {
	seen := make(map[device.Loc]bool)
	for loc := range g.design.CellSettings {
		seen[loc] = true
	}
	for loc := range g.design.IOSettings {
		seen[loc] = true
	}
	for loc := range g.design.Connections {
		seen[loc] = true
	}
	for _, sinks := range g.design.Connections {
		for _, src := range sinks {
			seen[src.Loc] = true
		}
	}

	locs := make([]device.Loc, 0, len(seen))
	for loc := range seen {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })
	return locs
}

// instancesAt renders the cell instances of one location: their parameter
// bits, the wires feeding their sink pins and the nets they drive.
func (g *Generator) instancesAt(loc device.Loc, driven map[string]string, portNets map[device.Loc]string) []instance {
	instances := make(map[string]*instance)
	order := []string{}

	get := func(name string) *instance {
		if inst, ok := instances[name]; ok {
			return inst
		}
		inst := &instance{
			cellType: g.cellTypeAt(loc, name),
			name:     sanitize(fmt.Sprintf("%s_%s", loc, name)),
		}
		instances[name] = inst
		order = append(order, name)
		return inst
	}

	for _, instName := range sortedStringKeys(g.design.CellSettings[loc]) {
		inst := get(instName)
		for _, setting := range g.design.CellSettings[loc][instName] {
			inst.params = append(inst.params, g.paramFor(inst.cellType, setting))
		}
	}
	for _, instName := range sortedStringKeys(g.design.IOSettings[loc]) {
		inst := get(instName)
		for _, setting := range g.design.IOSettings[loc][instName] {
			inst.params = append(inst.params, g.paramFor(inst.cellType, setting))
		}
		if net, ok := portNets[loc]; ok {
			inst.conns = append(inst.conns, fmt.Sprintf(".%s(%s)", padPin, net))
		}
	}

	// Sink pins of this location attach to the wire of their source; pins
	// driven from here attach to their own wire.
	for _, pin := range sortedStringKeys(g.design.Connections[loc]) {
		inst := g.instanceForPin(loc, pin, instances, get)
		inst.conns = append(inst.conns,
			fmt.Sprintf(".%s(%s)", sanitize(pin), wireName(g.design.Connections[loc][pin])))
	}
	for _, pin := range sortedStringKeys(driven) {
		inst := g.instanceForPin(loc, pin, instances, get)
		inst.conns = append(inst.conns, fmt.Sprintf(".%s(%s)", sanitize(pin), driven[pin]))
	}

	out := make([]instance, 0, len(order))
	for _, name := range order {
		out = append(out, *instances[name])
	}
	return out
}

// instanceForPin finds the instance at loc whose cell type declares the pin,
// falling back to the tile's first cell when no type matches.
func (g *Generator) instanceForPin(loc device.Loc, pin string, instances map[string]*instance, get func(string) *instance) *instance {
	tile, ok := g.db.TileGrid[loc]
	if ok {
		for _, cell := range tile.Cells {
			ct, ok := g.db.CellsLibrary[cell.Type]
			if !ok {
				continue
			}
			for _, p := range ct.Pins {
				if p.Name == pin {
					return get(cell.Name)
				}
			}
		}
		if len(tile.Cells) > 0 && len(instances) == 0 {
			return get(tile.Cells[0].Name)
		}
	}
	// No tile information; attach to the first known instance or a
	// synthesized one named after the location.
	if names := sortedInstanceNames(instances); len(names) > 0 {
		return get(names[0])
	}
	return get("CELL")
}

// paramFor renders one configuration bit as a parameter assignment, mapping
// inversion settings through the inversion-pin table.
func (g *Generator) paramFor(cellType, setting string) string {
	name := setting
	if pins, ok := g.design.InversionPins[cellType]; ok {
		if inv, ok := pins[setting]; ok {
			name = inv
		}
	}
	return fmt.Sprintf(".%s(1'b1)", sanitize(name))
}

// cellTypeAt resolves the cell type of an instance from the tile grid,
// falling back to the instance name itself.
func (g *Generator) cellTypeAt(loc device.Loc, instName string) string {
	tile, ok := g.db.TileGrid[loc]
	if !ok {
		return instName
	}
	for _, cell := range tile.Cells {
		if cell.Name == instName {
			return cell.Type
		}
	}
	return instName
}

func renderInstance(inst instance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    %s", inst.cellType)
	if len(inst.params) > 0 {
		b.WriteString(" #(\n        ")
		b.WriteString(strings.Join(inst.params, ",\n        "))
		b.WriteString("\n    )")
	}
	if len(inst.conns) == 0 {
		fmt.Fprintf(&b, " %s ();\n", inst.name)
		return b.String()
	}
	fmt.Fprintf(&b, " %s (\n        ", inst.name)
	b.WriteString(strings.Join(inst.conns, ",\n        "))
	b.WriteString("\n    );\n")
	return b.String()
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// sanitize rewrites a name into a legal Verilog identifier.
func sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInstanceNames(m map[string]*instance) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
