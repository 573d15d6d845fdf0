package bels

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/fasm"
)

// UnsupportedFeatureError indicates a feature whose category tag has no
// handler or whose signature does not match the category's grammar.
type UnsupportedFeatureError struct {
	Feature fasm.Feature
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("bels: unsupported %s feature at %s: %q",
		e.Feature.Category, e.Feature.Loc, e.Feature.Signature)
}

// ConflictError indicates two routing features configuring the same
// multiplexer. A mux can only ever be programmed once.
type ConflictError struct {
	Loc   device.Loc
	Entry RouteEntry
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"bels: conflicting multiplexer assignment at %s (stage %d, switch %d, mux %d)",
		e.Loc, e.Entry.Stage, e.Entry.Switch, e.Entry.Mux)
}

// UnresolvedPinError indicates that mux expansion reached an internal pin
// with no upstream connection in the switchbox topology. This is an
// inconsistency in the device database, not in the feature stream.
type UnresolvedPinError struct {
	Loc device.Loc
	Pin device.SwitchboxPinLoc
}

func (e *UnresolvedPinError) Error() string {
	return fmt.Sprintf("bels: no upstream connection for internal pin %s at %s",
		e.Pin, e.Loc)
}

// HopCycleError indicates a hop chain that revisited a location while being
// resolved. Valid routing never cycles; this points at corrupt input data.
type HopCycleError struct {
	Loc device.Loc
	Pin string
}

func (e *HopCycleError) Error() string {
	return fmt.Sprintf("bels: hop chain for pin %q at %s does not terminate",
		e.Pin, e.Loc)
}
