package bels

import (
	"regexp"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

// Hop wires cross tile boundaries. A switchbox output whose name starts with
// orientation, length, side and lane digits (e.g. V4T0) lands in the hop
// table instead of the connection map; a source name carrying a _<dir><dist>
// suffix (e.g. V4T0_S1) points one or more tiles away and is chased through
// the hop tables of the intermediate locations.
var (
	hopWireRE   = regexp.MustCompile(`^[VH][0-9][TBLR][0-9]`)
	hopSuffixRE = regexp.MustCompile(`^(.*)_([NSEW])([0-9]+)$`)
)

// isHopWire reports whether a switchbox output name is a hop wire.
func isHopWire(name string) bool {
	return hopWireRE.MatchString(name)
}

// hopOffset is the grid displacement encoded in a hop suffix.
type hopOffset struct {
	dx int
	dy int
}

// splitHop splits a source name into its base wire name and hop offset.
// Names without a hop suffix are returned unchanged with ok false.
func splitHop(name string) (base string, off hopOffset, ok bool) {
	m := hopSuffixRE.FindStringSubmatch(name)
	if m == nil {
		return name, hopOffset{}, false
	}
	dist, _ := strconv.Atoi(m[3])
	switch m[2] {
	case "N":
		off = hopOffset{0, dist}
	case "S":
		off = hopOffset{0, -dist}
	case "E":
		off = hopOffset{dist, 0}
	case "W":
		off = hopOffset{-dist, 0}
	}
	return m[1], off, true
}

// resolveHop chases one hop-wire source starting at loc until it reaches a
// source that is not a hop, and returns that source's absolute location and
// pin name. When a hop lands at a location whose hop table has no entry for
// the base name, the wire is directly connected there (a BEL placed one hop
// away from its switchbox) and that location is the final answer.
//
// Hop tables of a valid design are acyclic; revisiting a (location, wire)
// state means the chain cannot terminate and aborts the conversion.
func resolveHop(loc device.Loc, source string, hops map[device.Loc]map[string]string) (SourceRef, error) {
	type hopState struct {
		loc  device.Loc
		name string
	}

	name, off, hopping := splitHop(source)
	cur := loc
	visited := map[hopState]bool{}

	for hopping {
		cur = device.Loc{X: cur.X + off.dx, Y: cur.Y + off.dy}
		state := hopState{cur, name}
		if visited[state] {
			return SourceRef{}, &HopCycleError{Loc: loc, Pin: source}
		}
		visited[state] = true

		next, ok := hops[cur][name]
		if !ok {
			break
		}
		name, off, hopping = splitHop(next)
	}

	return SourceRef{Loc: cur, Pin: name}, nil
}
