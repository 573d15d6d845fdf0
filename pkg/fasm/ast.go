package fasm

// File represents a complete FASM feature file.
type File struct {
	Lines []*Line `parser:"EOL* ( @@ EOL* )*"`
}

// Line is a single feature assignment.
// A feature without an explicit value is implicitly set to 1.
type Line struct {
	Feature string `parser:"@Feature"`
	Value   *int   `parser:"( Eq @Integer )?"`
}

// Set reports whether the line asserts its feature. Only set features carry
// meaning; "FEATURE = 0" is equivalent to the line being absent.
func (l *Line) Set() bool {
	return l.SetValue() != 0
}

// SetValue returns the assigned value, defaulting to 1 when the line has no
// explicit assignment.
func (l *Line) SetValue() int {
	if l.Value == nil {
		return 1
	}
	return *l.Value
}
