package device

import "fmt"

// DefaultHighwayStage is the stage index of the highway routing plane used
// when a switchbox definition does not carry one explicitly.
const DefaultHighwayStage = 3

// SwitchboxPinLoc addresses a single pin inside a switchbox's mux graph.
// Intra-switchbox connections are keyed by these addresses.
type SwitchboxPinLoc struct {
	Stage     int          `json:"stage"`
	Switch    int          `json:"switch"`
	Mux       int          `json:"mux"`
	Pin       int          `json:"pin"`
	Direction PinDirection `json:"direction"`
}

func (p SwitchboxPinLoc) String() string {
	return fmt.Sprintf("st%d.sw%d.mux%d.pin%d.%s",
		p.Stage, p.Switch, p.Mux, p.Pin, p.Direction)
}

// MuxInput is one selectable input of a multiplexer. A named input is an
// external pin of the switchbox; an unnamed one is internal and has to be
// resolved further upstream through the switchbox connection table.
type MuxInput struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Mux is a single multiplexer with an ordered input list.
type Mux struct {
	ID     int        `json:"id"`
	Inputs []MuxInput `json:"inputs"`
}

// Switch groups the muxes sharing one switch position within a stage.
type Switch struct {
	ID    int         `json:"id"`
	Muxes map[int]Mux `json:"muxes"`
}

// Stage is one layer of the switchbox mux graph.
type Stage struct {
	ID       int            `json:"id"`
	Switches map[int]Switch `json:"switches"`
}

// SwitchboxConnection is an internal edge from a mux output to another mux's
// input pin within the same switchbox.
type SwitchboxConnection struct {
	Src SwitchboxPinLoc `json:"src"`
	Dst SwitchboxPinLoc `json:"dst"`
}

// SwitchboxOutput is a named output pin together with the address of the mux
// that ultimately drives it.
type SwitchboxOutput struct {
	Name string          `json:"name"`
	Loc  SwitchboxPinLoc `json:"loc"`
}

// Switchbox is the routing topology of one switchbox type: a layered directed
// graph of stages, switches and multiplexers.
type Switchbox struct {
	Type         string                     `json:"type"`
	Stages       map[int]Stage              `json:"stages"`
	Connections  []SwitchboxConnection      `json:"connections"`
	Outputs      map[string]SwitchboxOutput `json:"outputs"`
	HighwayStage int                        `json:"highway_stage,omitempty"`
}

// Mux returns the mux at the given (stage, switch, mux) address.
func (sb *Switchbox) Mux(stage, sw, mux int) (Mux, bool) {
	st, ok := sb.Stages[stage]
	if !ok {
		return Mux{}, false
	}
	s, ok := st.Switches[sw]
	if !ok {
		return Mux{}, false
	}
	m, ok := s.Muxes[mux]
	return m, ok
}
