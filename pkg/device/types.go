package device

import (
	"fmt"
	"strings"
)

// Loc is a grid coordinate of a tile or switchbox. Locations order by (X, Y)
// and serve as the primary key for every per-tile structure.
type Loc struct {
	X int
	Y int
}

func (l Loc) String() string {
	return fmt.Sprintf("X%dY%d", l.X, l.Y)
}

// Before reports whether l sorts before other in (X, Y) order.
func (l Loc) Before(other Loc) bool {
	if l.X != other.X {
		return l.X < other.X
	}
	return l.Y < other.Y
}

// ParseLoc parses the textual "X<x>Y<y>" form of a location.
func ParseLoc(s string) (Loc, error) {
	var l Loc
	n, err := fmt.Sscanf(s, "X%dY%d", &l.X, &l.Y)
	if err != nil || n != 2 {
		return Loc{}, fmt.Errorf("invalid location %q", s)
	}
	return l, nil
}

// MarshalText allows Loc to be used as a JSON map key.
func (l Loc) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses a Loc from its JSON map key form.
func (l *Loc) UnmarshalText(text []byte) error {
	parsed, err := ParseLoc(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// PinDirection tells whether a pin is an input or an output of its cell or
// switchbox multiplexer.
type PinDirection int

const (
	PinInput PinDirection = iota
	PinOutput
)

var pinDirectionNames = map[PinDirection]string{
	PinInput:  "input",
	PinOutput: "output",
}

func (d PinDirection) String() string {
	if name, ok := pinDirectionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("PinDirection(%d)", int(d))
}

// MarshalText serializes the direction in its database ("input"/"output") form.
func (d PinDirection) MarshalText() ([]byte, error) {
	name, ok := pinDirectionNames[d]
	if !ok {
		return nil, fmt.Errorf("invalid pin direction %d", int(d))
	}
	return []byte(name), nil
}

// UnmarshalText parses the database form of a pin direction.
func (d *PinDirection) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "input", "in":
		*d = PinInput
	case "output", "out":
		*d = PinOutput
	default:
		return fmt.Errorf("invalid pin direction %q", string(text))
	}
	return nil
}

// Pin is a named pin of a cell type.
type Pin struct {
	Name      string       `json:"name"`
	Direction PinDirection `json:"direction"`
}

// CellType describes one entry of the cell library.
type CellType struct {
	Type string `json:"type"`
	Pins []Pin  `json:"pins"`
}

// Cell is a concrete cell instance placed inside a tile.
type Cell struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// TileType lists the cell types contained by every tile of that type.
type TileType struct {
	Type  string   `json:"type"`
	Cells []string `json:"cells"`
}

// Tile is one grid entry of the physical tile grid.
type Tile struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Cells []Cell `json:"cells"`
}

// ConnectionLoc is one endpoint of a global inter-switchbox connection.
type ConnectionLoc struct {
	Loc Loc    `json:"loc"`
	Pin string `json:"pin"`
}

// Connection is one edge of the global inter-switchbox wiring list.
type Connection struct {
	Src ConnectionLoc `json:"src"`
	Dst ConnectionLoc `json:"dst"`
}

// PackagePin binds a package-level IO name to the grid location of the IO
// cell realizing it.
type PackagePin struct {
	Name string `json:"name"`
	Loc  Loc    `json:"loc"`
}
