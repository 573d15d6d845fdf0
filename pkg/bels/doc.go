// Package bels reconstructs a gate-level connectivity model from the FASM
// features of a programmed fabric.
//
// The pipeline takes the tokenized feature stream together with the read-only
// device database and recovers, for every switchbox, which input drives each
// output. Switchbox-level results still reference hop wires crossing tile
// boundaries; those are chased across the grid until an absolute
// (location, pin) source remains. Finally the configuration bits and
// connection endpoints of cells spanning several grid locations (ASSP, RAM,
// multipliers) are folded onto one canonical location per cell.
//
// The resulting Design carries everything a structural netlist writer needs:
// active settings per cell instance, active settings per IO cell, and a fully
// resolved sink-to-source connection map.
package bels
