package bels

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

// MultiLocCellMapping folds one logical cell with a multi-tile footprint
// onto a single canonical location. PinNames disambiguates connection
// remapping when a location hosts more than one mergeable cell type.
type MultiLocCellMapping struct {
	Name     string
	From     map[device.Loc]bool
	To       device.Loc
	PinNames map[string]bool
}

// asspLoc is the canonical location of the ASSP block.
var asspLoc = device.Loc{X: 1, Y: 1}

// multiLocMappings scans the tile grid for cells whose footprint spans
// several locations (the ASSP block, RAM blocks and multipliers) and builds
// one mapping per logical cell. Mapping order decides remapping precedence:
// ASSP first, then RAMs, then multipliers, each group in cell-name order.
func multiLocMappings(idx *device.Index) []MultiLocCellMapping {
	asspLocs := make(map[device.Loc]bool)
	ramLocs := make(map[string]map[device.Loc]bool)
	multLocs := make(map[string]map[device.Loc]bool)

	for loc, tile := range idx.Database().TileGrid {
		tileType, ok := idx.TileType(tile)
		if !ok {
			continue
		}
		for _, cellType := range tileType.Cells {
			switch cellType {
			case "ASSP":
				asspLocs[loc] = true
			case "RAM":
				addCellLoc(ramLocs, tile, "RAM", loc)
			case "MULT":
				addCellLoc(multLocs, tile, "MULT", loc)
			}
		}
	}

	var mappings []MultiLocCellMapping
	if len(asspLocs) > 0 {
		mappings = append(mappings, MultiLocCellMapping{
			Name:     "ASSP",
			From:     asspLocs,
			To:       asspLoc,
			PinNames: idx.PinNames("ASSP"),
		})
	}
	// RAM bits fold onto the first footprint location, multiplier bits onto
	// the second. The asymmetry comes from how the fabric scatters their
	// configuration columns.
	for _, name := range sortedKeys(ramLocs) {
		mappings = append(mappings, MultiLocCellMapping{
			Name:     name,
			From:     ramLocs[name],
			To:       nthLoc(ramLocs[name], 0),
			PinNames: idx.PinNames("RAM"),
		})
	}
	for _, name := range sortedKeys(multLocs) {
		mappings = append(mappings, MultiLocCellMapping{
			Name:     name,
			From:     multLocs[name],
			To:       nthLoc(multLocs[name], 1),
			PinNames: idx.PinNames("MULT"),
		})
	}
	return mappings
}

// addCellLoc records loc under the name of the tile's cell of the given type.
func addCellLoc(dst map[string]map[device.Loc]bool, tile device.Tile, cellType string, loc device.Loc) {
	for _, cell := range tile.Cells {
		if cell.Type != cellType {
			continue
		}
		locs, ok := dst[cell.Name]
		if !ok {
			locs = make(map[device.Loc]bool)
			dst[cell.Name] = locs
		}
		locs[loc] = true
		return
	}
}

func sortedKeys(m map[string]map[device.Loc]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// nthLoc returns the n-th location of the set in (x, y) order, clamped to
// the last one for footprints smaller than n+1.
func nthLoc(set map[device.Loc]bool, n int) device.Loc {
	locs := make([]device.Loc, 0, len(set))
	for loc := range set {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })
	if n >= len(locs) {
		n = len(locs) - 1
	}
	return locs[n]
}

// remapLoc rewrites loc to a canonical location when a mapping covers it.
// An empty pinName disables the pin filter: any mapping whose footprint
// contains loc applies. The first matching mapping wins.
func remapLoc(mappings []MultiLocCellMapping, loc device.Loc, pinName string) device.Loc {
	for _, m := range mappings {
		if pinName != "" && !m.PinNames[pinName] {
			continue
		}
		if m.From[loc] {
			return m.To
		}
	}
	return loc
}
