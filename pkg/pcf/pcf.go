// Package pcf reads and writes pin-constraint files: PCF (set_io) and the
// QCF variant (place) used by the vendor toolchain.
package pcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Constraints maps a physical package pin to the logical IO net constrained
// to it. Keying by pin lets the netlist writer recover the user's net name
// for an IO cell from the package pin it landed on.
type Constraints map[string]string

// Parse reads "set_io <net> <pin>" constraints. Lines that are not
// three-field set_io commands (comments, empty lines, other commands) are
// skipped.
func Parse(r io.Reader) (Constraints, error) {
	constraints := make(Constraints)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 || fields[0] != "set_io" {
			continue
		}
		constraints[fields[2]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pcf: %w", err)
	}
	return constraints, nil
}

// ParseFile reads set_io constraints from a file.
func ParseFile(filename string) (Constraints, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open pcf: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// NetForPin returns the net constrained to the given package pin, if any.
func (c Constraints) NetForPin(pin string) (string, bool) {
	net, ok := c[pin]
	return net, ok
}

// Write emits set_io lines sorted by pin name.
func (c Constraints) Write(w io.Writer) error {
	for _, pin := range c.sortedPins() {
		if _, err := fmt.Fprintf(w, "set_io %s %s\n", c[pin], pin); err != nil {
			return err
		}
	}
	return nil
}

// WriteQCF emits the constraints in QCF form, sorted by pin name.
func (c Constraints) WriteQCF(w io.Writer) error {
	for _, pin := range c.sortedPins() {
		if _, err := fmt.Fprintf(w, "place %s %s\n", c[pin], pin); err != nil {
			return err
		}
	}
	return nil
}

func (c Constraints) sortedPins() []string {
	pins := make([]string, 0, len(c))
	for pin := range c {
		pins = append(pins, pin)
	}
	sort.Strings(pins)
	return pins
}
