package bels

import (
	"regexp"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/fasm"
)

// RouteKind distinguishes the two switchbox addressing schemes.
type RouteKind int

const (
	// RouteHighway addresses the long-range routing plane. Its stage index
	// is not encoded in the signature; the switchbox topology defines it.
	RouteHighway RouteKind = iota
	// RouteStreet addresses the local routing planes.
	RouteStreet
)

func (k RouteKind) String() string {
	if k == RouteHighway {
		return "HIGHWAY"
	}
	return "STREET"
}

// RouteEntry is one decoded routing feature: the selector value programmed
// into one multiplexer of a switchbox. All indices are 0-based. For highway
// entries Stage is -1 until resolved against a concrete switchbox.
type RouteEntry struct {
	Kind   RouteKind
	Stage  int
	Switch int
	Mux    int
	Sel    int
}

// stageIn resolves the entry's stage index for a concrete switchbox.
func (e RouteEntry) stageIn(sb *device.Switchbox) int {
	if e.Kind == RouteHighway {
		return sb.HighwayStage
	}
	return e.Stage
}

var (
	highwayRE = regexp.MustCompile(`^I_highway\.IM([0-9]+)\.I_pg([0-9]+)$`)
	streetRE  = regexp.MustCompile(`^I_street\.Isb([0-9])([0-9])\.I_M([0-9]+)\.I_pg([0-9]+)$`)
)

// parseRouteEntry decodes a ROUTING signature into a RouteEntry. Street
// signatures carry 1-based stage and switch digits which are shifted to
// 0-based here.
func parseRouteEntry(feature fasm.Feature) (RouteEntry, error) {
	if m := highwayRE.FindStringSubmatch(feature.Signature); m != nil {
		return RouteEntry{
			Kind:   RouteHighway,
			Stage:  -1,
			Switch: atoi(m[1]),
			Mux:    0,
			Sel:    atoi(m[2]),
		}, nil
	}
	if m := streetRE.FindStringSubmatch(feature.Signature); m != nil {
		return RouteEntry{
			Kind:   RouteStreet,
			Stage:  atoi(m[1]) - 1,
			Switch: atoi(m[2]) - 1,
			Mux:    atoi(m[3]),
			Sel:    atoi(m[4]),
		}, nil
	}
	return RouteEntry{}, &UnsupportedFeatureError{Feature: feature}
}

// atoi converts a digit string already validated by a regexp.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// muxKey addresses one multiplexer within a switchbox.
type muxKey struct {
	stage int
	sw    int
	mux   int
}

// routeState tags the outcome of expanding one multiplexer.
type routeState int

const (
	// routeUndriven means the mux has no selector programmed.
	routeUndriven routeState = iota
	// routeDeadEnd means expansion exhausted all upstream candidates.
	routeDeadEnd
	// routeResolved means a named switchbox input was reached.
	routeResolved
)

type routeResult struct {
	state routeState
	name  string
}

// decoder resolves the output connectivity of a single switchbox instance
// from the selectors programmed into its muxes.
type decoder struct {
	loc device.Loc
	sb  *device.Switchbox

	sel       map[muxKey]int // programmed selector per mux, -1 when unset
	connByDst map[device.SwitchboxPinLoc][]device.SwitchboxConnection
	memo      map[muxKey]routeResult
}

func newDecoder(loc device.Loc, sb *device.Switchbox) *decoder {
	d := &decoder{
		loc:       loc,
		sb:        sb,
		sel:       make(map[muxKey]int),
		connByDst: make(map[device.SwitchboxPinLoc][]device.SwitchboxConnection),
		memo:      make(map[muxKey]routeResult),
	}

	for stageID, stage := range sb.Stages {
		for switchID, sw := range stage.Switches {
			for muxID := range sw.Muxes {
				d.sel[muxKey{stageID, switchID, muxID}] = -1
			}
		}
	}

	for _, conn := range sb.Connections {
		d.connByDst[conn.Dst] = append(d.connByDst[conn.Dst], conn)
	}

	return d
}

// apply programs one selector into the selection table. Programming a mux
// twice is a fatal conflict.
func (d *decoder) apply(entry RouteEntry) error {
	key := muxKey{entry.stageIn(d.sb), entry.Switch, entry.Mux}
	entry.Stage = key.stage
	cur, ok := d.sel[key]
	if !ok {
		return &UnresolvedPinError{
			Loc: d.loc,
			Pin: device.SwitchboxPinLoc{
				Stage: key.stage, Switch: key.sw, Mux: key.mux,
				Direction: device.PinOutput,
			},
		}
	}
	if cur != -1 {
		return &ConflictError{Loc: d.loc, Entry: entry}
	}
	d.sel[key] = entry.Sel
	return nil
}

// expandFrame is one step of the iterative mux expansion.
type expandFrame struct {
	key   muxKey
	cands []device.SwitchboxConnection
	next  int
	init  bool
}

// expand walks upstream from a mux until a named switchbox input is reached.
// The traversal is an explicit stack walk with per-mux memoization so that
// outputs sharing upstream paths are not re-expanded.
func (d *decoder) expand(start muxKey) (routeResult, error) {
	if r, ok := d.memo[start]; ok {
		return r, nil
	}

	stack := []*expandFrame{{key: start}}
	var ret routeResult
	haveRet := false

	for len(stack) > 0 {
		f := stack[len(stack)-1]

		if !f.init {
			f.init = true

			sel, ok := d.sel[f.key]
			if !ok || sel == -1 {
				// Mux not programmed; its output is undriven.
				ret, haveRet = routeResult{state: routeUndriven}, true
				d.memo[f.key] = ret
				stack = stack[:len(stack)-1]
				continue
			}

			mux, ok := d.sb.Mux(f.key.stage, f.key.sw, f.key.mux)
			if !ok || sel >= len(mux.Inputs) {
				return routeResult{}, &UnresolvedPinError{
					Loc: d.loc,
					Pin: device.SwitchboxPinLoc{
						Stage: f.key.stage, Switch: f.key.sw, Mux: f.key.mux,
						Pin: sel, Direction: device.PinInput,
					},
				}
			}

			pin := mux.Inputs[sel]
			if pin.Name != "" {
				ret, haveRet = routeResult{state: routeResolved, name: pin.Name}, true
				d.memo[f.key] = ret
				stack = stack[:len(stack)-1]
				continue
			}

			// Internal pin: expand every upstream mux wired to it until one
			// yields a name. The topology guarantees at most one is active.
			inpLoc := device.SwitchboxPinLoc{
				Stage: f.key.stage, Switch: f.key.sw, Mux: f.key.mux,
				Pin: sel, Direction: device.PinInput,
			}
			f.cands = d.connByDst[inpLoc]
			if len(f.cands) == 0 {
				return routeResult{}, &UnresolvedPinError{Loc: d.loc, Pin: inpLoc}
			}
		} else if haveRet {
			if ret.state == routeResolved {
				d.memo[f.key] = ret
				stack = stack[:len(stack)-1]
				continue
			}
			// Candidate was inactive; try the next one.
			haveRet = false
		}

		if f.next < len(f.cands) {
			child := f.cands[f.next].Src
			f.next++
			key := muxKey{child.Stage, child.Switch, child.Mux}
			if r, ok := d.memo[key]; ok {
				ret, haveRet = r, true
				continue
			}
			stack = append(stack, &expandFrame{key: key})
			continue
		}

		ret, haveRet = routeResult{state: routeDeadEnd}, true
		d.memo[f.key] = ret
		stack = stack[:len(stack)-1]
	}

	return ret, nil
}

// decodeSwitchbox resolves, for every declared output of the switchbox at
// loc, the named input currently driving it. Outputs of unprogrammed muxes
// are absent from the result; an unused output is not an error.
func decodeSwitchbox(loc device.Loc, sb *device.Switchbox, entries []RouteEntry) (map[string]string, error) {
	d := newDecoder(loc, sb)

	for _, entry := range entries {
		if err := d.apply(entry); err != nil {
			return nil, err
		}
	}

	routes := make(map[string]string)
	for _, out := range sb.Outputs {
		res, err := d.expand(muxKey{out.Loc.Stage, out.Loc.Switch, out.Loc.Mux})
		if err != nil {
			return nil, err
		}
		if res.state == routeResolved {
			routes[out.Name] = res.name
		}
	}

	return routes, nil
}
