package device

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Database is the read-only device description a conversion run works
// against. It is loaded once and never mutated afterwards.
type Database struct {
	CellsLibrary   map[string]CellType                `json:"cells_library"`
	TileTypes      map[string]TileType                `json:"tile_types"`
	TileGrid       map[Loc]Tile                       `json:"phy_tile_grid"`
	SwitchboxTypes map[string]Switchbox               `json:"switchbox_types"`
	SwitchboxGrid  map[Loc]string                     `json:"switchbox_grid"`
	Connections    []Connection                       `json:"connections"`
	PackagePinmaps map[string]map[string][]PackagePin `json:"package_pinmaps"`
}

// Decode reads a JSON-encoded device database.
func Decode(r io.Reader) (*Database, error) {
	var db Database
	dec := json.NewDecoder(r)
	if err := dec.Decode(&db); err != nil {
		return nil, fmt.Errorf("decode device database: %w", err)
	}
	for typ, sb := range db.SwitchboxTypes {
		if sb.HighwayStage == 0 {
			sb.HighwayStage = DefaultHighwayStage
			db.SwitchboxTypes[typ] = sb
		}
	}
	return &db, nil
}

// Load reads a device database from a file.
func Load(filename string) (*Database, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open device database: %w", err)
	}
	defer f.Close()

	return Decode(f)
}
