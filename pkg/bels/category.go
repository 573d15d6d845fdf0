package bels

import "fmt"

// Category classifies a feature by the kind of cell it configures.
type Category int

const (
	// CategoryLogic configures a logic cell instance.
	CategoryLogic Category = iota
	// CategoryQMux configures a quadrant clock mux cell.
	CategoryQMux
	// CategoryGMux configures a global clock mux cell.
	CategoryGMux
	// CategoryInterface configures an IO interface cell.
	CategoryInterface
	// CategoryRouting configures a switchbox multiplexer.
	CategoryRouting
)

var categoryNames = map[Category]string{
	CategoryLogic:     "LOGIC",
	CategoryQMux:      "QMUX",
	CategoryGMux:      "GMUX",
	CategoryInterface: "INTERFACE",
	CategoryRouting:   "ROUTING",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ParseCategory maps a feature's category tag to its Category. The second
// return value is false for unrecognized tags.
func ParseCategory(tag string) (Category, bool) {
	switch tag {
	case "LOGIC":
		return CategoryLogic, true
	case "QMUX":
		return CategoryQMux, true
	case "GMUX":
		return CategoryGMux, true
	case "INTERFACE":
		return CategoryInterface, true
	case "ROUTING":
		return CategoryRouting, true
	}
	return 0, false
}
