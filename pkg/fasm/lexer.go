package fasm

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer defines the lexical structure of FASM feature files.
// FASM is line oriented: one feature per line, an optional "= value"
// assignment, and "#" comments running to end of line.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - FASM style (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// End of line is significant; features may not span lines
	{Name: "EOL", Pattern: `\n`},

	// Intra-line whitespace
	{Name: "Whitespace", Pattern: `[ \t\r]+`},

	// Operators
	{Name: "Eq", Pattern: `=`},

	// Feature paths, e.g. X3Y5.ROUTING.I_street.Isb12.I_M0.I_pg3
	{Name: "Feature", Pattern: `[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*`},

	// Values are plain decimal integers
	{Name: "Integer", Pattern: `[0-9]+`},
})
