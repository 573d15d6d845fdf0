package device

import "fmt"

// Index is a read-only lookup layer over a Database. It precomputes the
// per-location views the decode pipeline needs so that every query during
// decoding is O(1). An Index never mutates its Database and is safe for
// concurrent readers.
type Index struct {
	db *Database

	connsByLoc map[Loc][]Connection
	pinNames   map[string]map[string]bool
	ioToPkgPin map[Loc]string
	pkg        string
}

// NewIndex builds the lookup structures for one package variant of the
// device. The package name selects which package pinmap is indexed.
func NewIndex(db *Database, packageName string) (*Index, error) {
	pinmap, ok := db.PackagePinmaps[packageName]
	if !ok {
		return nil, fmt.Errorf("unknown package %q", packageName)
	}

	idx := &Index{
		db:         db,
		connsByLoc: make(map[Loc][]Connection),
		pinNames:   make(map[string]map[string]bool),
		ioToPkgPin: make(map[Loc]string),
		pkg:        packageName,
	}

	for _, conn := range db.Connections {
		idx.connsByLoc[conn.Src.Loc] = append(idx.connsByLoc[conn.Src.Loc], conn)
		idx.connsByLoc[conn.Dst.Loc] = append(idx.connsByLoc[conn.Dst.Loc], conn)
	}

	for _, ct := range db.CellsLibrary {
		names := make(map[string]bool, len(ct.Pins))
		for _, pin := range ct.Pins {
			names[pin.Name] = true
		}
		idx.pinNames[ct.Type] = names
	}

	for name, pins := range pinmap {
		if len(pins) == 0 {
			continue
		}
		idx.ioToPkgPin[pins[0].Loc] = name
	}

	return idx, nil
}

// Database returns the underlying device database.
func (idx *Index) Database() *Database {
	return idx.db
}

// Package returns the package name the index was built for.
func (idx *Index) Package() string {
	return idx.pkg
}

// SwitchboxAt returns the switchbox topology placed at loc, if any.
func (idx *Index) SwitchboxAt(loc Loc) (*Switchbox, bool) {
	typ, ok := idx.db.SwitchboxGrid[loc]
	if !ok {
		return nil, false
	}
	sb, ok := idx.db.SwitchboxTypes[typ]
	if !ok {
		return nil, false
	}
	return &sb, true
}

// TileAt returns the tile at loc, if any.
func (idx *Index) TileAt(loc Loc) (Tile, bool) {
	tile, ok := idx.db.TileGrid[loc]
	return tile, ok
}

// TileType returns the tile type description for a tile.
func (idx *Index) TileType(tile Tile) (TileType, bool) {
	tt, ok := idx.db.TileTypes[tile.Type]
	return tt, ok
}

// ConnectionsAt returns every global connection with an endpoint at loc.
func (idx *Index) ConnectionsAt(loc Loc) []Connection {
	return idx.connsByLoc[loc]
}

// PinNames returns the set of pin names declared by a cell type.
func (idx *Index) PinNames(cellType string) map[string]bool {
	return idx.pinNames[cellType]
}

// PackagePinAt maps an IO cell location to its package-level IO name.
func (idx *Index) PackagePinAt(loc Loc) (string, bool) {
	name, ok := idx.ioToPkgPin[loc]
	return name, ok
}

// IONames returns the full location-to-IO-name map for the indexed package.
func (idx *Index) IONames() map[Loc]string {
	return idx.ioToPkgPin
}
