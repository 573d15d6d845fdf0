package bels

import (
	"sort"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
	"github.com/OpenTraceLab/OpenTraceFASM/pkg/fasm"
)

// Converter runs the decode pipeline: classify features, decode every
// switchbox, resolve hop wires, unify multi-location cells. A Converter is
// built once per conversion run and discarded afterwards.
type Converter struct {
	idx      *device.Index
	multiloc []MultiLocCellMapping

	routing      map[device.Loc][]RouteEntry
	cellSettings SettingsMap
	ioSettings   SettingsMap
	connections  map[device.Loc]map[string]string
	hops         map[device.Loc]map[string]string
}

// NewConverter prepares a conversion run against one package variant of the
// device described by db.
func NewConverter(db *device.Database, packageName string) (*Converter, error) {
	idx, err := device.NewIndex(db, packageName)
	if err != nil {
		return nil, err
	}
	return &Converter{
		idx:          idx,
		multiloc:     multiLocMappings(idx),
		routing:      make(map[device.Loc][]RouteEntry),
		cellSettings: make(SettingsMap),
		ioSettings:   make(SettingsMap),
		connections:  make(map[device.Loc]map[string]string),
		hops:         make(map[device.Loc]map[string]string),
	}, nil
}

// Convert runs the full pipeline over a tokenized feature stream and returns
// the resolved wiring and configuration model. Any inconsistency aborts the
// run; a partially decoded netlist is not a meaningful output.
func (c *Converter) Convert(features []fasm.Feature) (*Design, error) {
	for _, feature := range features {
		if err := c.classify(feature); err != nil {
			return nil, err
		}
	}
	if err := c.decodeSwitchboxes(); err != nil {
		return nil, err
	}
	resolved, err := c.resolveHops()
	if err != nil {
		return nil, err
	}

	return &Design{
		CellSettings:  c.unifySettings(),
		IOSettings:    c.ioSettings,
		Connections:   c.unifyConnections(resolved),
		InversionPins: InversionPins,
		IONames:       c.idx.IONames(),
	}, nil
}

// classify routes one feature to the collector for its category.
func (c *Converter) classify(feature fasm.Feature) error {
	category, ok := ParseCategory(feature.Category)
	if !ok {
		return &UnsupportedFeatureError{Feature: feature}
	}

	switch category {
	case CategoryLogic, CategoryQMux, CategoryGMux:
		return c.collectSetting(c.cellSettings, feature)
	case CategoryInterface:
		return c.collectSetting(c.ioSettings, feature)
	case CategoryRouting:
		return c.collectRouting(feature)
	}
	return nil
}

// collectSetting records one active cell or IO setting. Only asserted bits
// carry meaning; value 0 is a no-op.
func (c *Converter) collectSetting(dst SettingsMap, feature fasm.Feature) error {
	instance, setting, ok := strings.Cut(feature.Signature, ".")
	if !ok {
		return &UnsupportedFeatureError{Feature: feature}
	}
	if feature.Value != 1 {
		return nil
	}
	dst.Add(feature.Loc, instance, normalizeSetting(setting))
	return nil
}

// normalizeSetting strips the inversion marker from a setting path. The
// marker only identifies which logical input an inversion bit belongs to;
// the remaining path is the setting name.
func normalizeSetting(setting string) string {
	if strings.Contains(setting, "ZINV.") {
		return strings.Replace(setting, "ZINV.", "", 1)
	}
	return strings.Replace(setting, "INV.", "", 1)
}

// collectRouting decodes a routing signature and queues it for its
// switchbox.
func (c *Converter) collectRouting(feature fasm.Feature) error {
	entry, err := parseRouteEntry(feature)
	if err != nil {
		return err
	}
	c.routing[feature.Loc] = append(c.routing[feature.Loc], entry)
	return nil
}

// decodeSwitchboxes decodes every switchbox with observed routing features
// in ascending (x, y) order and partitions the results into direct
// connections and pending hop wires.
func (c *Converter) decodeSwitchboxes() error {
	locs := make([]device.Loc, 0, len(c.routing))
	for loc := range c.routing {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })

	for _, loc := range locs {
		sb, ok := c.idx.SwitchboxAt(loc)
		if !ok {
			continue
		}
		routes, err := decodeSwitchbox(loc, sb, c.routing[loc])
		if err != nil {
			return err
		}
		for out, src := range routes {
			if isHopWire(out) {
				c.addHop(loc, out, src)
			} else {
				c.addConnection(loc, out, src)
			}
		}
	}
	return nil
}

func (c *Converter) addHop(loc device.Loc, wire, src string) {
	wires, ok := c.hops[loc]
	if !ok {
		wires = make(map[string]string)
		c.hops[loc] = wires
	}
	wires[wire] = src
}

func (c *Converter) addConnection(loc device.Loc, sink, src string) {
	sinks, ok := c.connections[loc]
	if !ok {
		sinks = make(map[string]string)
		c.connections[loc] = sinks
	}
	sinks[sink] = src
}

// resolveHops rewrites every connection whose source is a hop wire into an
// absolute (location, pin) reference.
func (c *Converter) resolveHops() (ConnectionMap, error) {
	resolved := make(ConnectionMap)
	for loc, sinks := range c.connections {
		for pin, source := range sinks {
			ref, err := resolveHop(loc, source, c.hops)
			if err != nil {
				return nil, err
			}
			resolved.Set(loc, pin, ref)
		}
	}
	return resolved, nil
}

// unifySettings folds the settings of multi-location cell instances onto
// their canonical locations. Settings of single-location instances pass
// through unchanged.
func (c *Converter) unifySettings() SettingsMap {
	byName := make(map[string]MultiLocCellMapping, len(c.multiloc))
	for _, m := range c.multiloc {
		byName[m.Name] = m
	}

	// Folding must be deterministic: when one instance contributes settings
	// from several locations they accumulate in (x, y) order.
	locs := make([]device.Loc, 0, len(c.cellSettings))
	for loc := range c.cellSettings {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })

	unified := make(SettingsMap)
	for _, loc := range locs {
		for instance, settings := range c.cellSettings[loc] {
			target := loc
			if m, ok := byName[instance]; ok && m.From[loc] {
				target = m.To
			}
			for _, setting := range settings {
				unified.Add(target, instance, setting)
			}
		}
	}
	return unified
}

// unifyConnections rewrites both endpoints of every connection through the
// multi-location mappings, with the pin name selecting the governing
// mapping.
func (c *Converter) unifyConnections(conns ConnectionMap) ConnectionMap {
	unified := make(ConnectionMap)
	for loc, sinks := range conns {
		for pin, src := range sinks {
			dstLoc := remapLoc(c.multiloc, loc, pin)
			srcLoc := remapLoc(c.multiloc, src.Loc, src.Pin)
			unified.Set(dstLoc, pin, SourceRef{Loc: srcLoc, Pin: src.Pin})
		}
	}
	return unified
}
