package fasm

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/OpenTraceLab/OpenTraceFASM/pkg/device"
)

// ErrUnsupportedFeature indicates a feature path that does not follow the
// X<x>Y<y>.<CATEGORY>.<signature> layout used by the fabric.
var ErrUnsupportedFeature = errors.New("fasm: unsupported feature format")

// Feature is one decoded configuration-bit assignment: a grid location, the
// category tag of the cell it configures, the category-specific signature and
// the assigned value.
type Feature struct {
	Loc       device.Loc
	Category  string
	Signature string
	Value     int
}

var featureRE = regexp.MustCompile(
	`^X(?P<x>[0-9]+)Y(?P<y>[0-9]+)\.(?P<category>[A-Z]+)\.(?P<signature>.*)$`,
)

// Split decomposes a raw feature path into its location, category tag and
// signature. The value is carried over from the line unchanged.
func Split(line *Line) (Feature, error) {
	match := featureRE.FindStringSubmatch(line.Feature)
	if match == nil {
		return Feature{}, fmt.Errorf("%w: %q", ErrUnsupportedFeature, line.Feature)
	}

	var loc device.Loc
	fmt.Sscanf(match[1], "%d", &loc.X)
	fmt.Sscanf(match[2], "%d", &loc.Y)

	return Feature{
		Loc:       loc,
		Category:  match[3],
		Signature: match[4],
		Value:     line.SetValue(),
	}, nil
}

// SplitAll decomposes every set line of a parsed file. Lines assigning 0 are
// skipped: in FASM a cleared feature is indistinguishable from an absent one.
func SplitAll(file *File) ([]Feature, error) {
	features := make([]Feature, 0, len(file.Lines))
	for _, line := range file.Lines {
		if !line.Set() {
			continue
		}
		feature, err := Split(line)
		if err != nil {
			return nil, err
		}
		features = append(features, feature)
	}
	return features, nil
}
