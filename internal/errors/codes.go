// Package errors provides the diagnostic layer of the Mamba toolchain:
// error codes, the CompileError value, terminal rendering with source
// context, and the keyword-typo suggestion helpers shared with the
// parser.
package errors

// ============================================================================
// Levels
// ============================================================================

// Level classifies a diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelNote
	LevelHelp
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ============================================================================
// Diagnostic codes
// ============================================================================
//
// E00xx are lexical, E01xx are syntactic. The codes are stable: tools and
// tests key on them, messages are free to change.

const (
	// E0001-E0099: lexical errors
	E0001 = "E0001" // unexpected character
	E0002 = "E0002" // unterminated string
	E0003 = "E0003" // invalid number or digit for base
	E0004 = "E0004" // invalid escape sequence
	E0005 = "E0005" // inconsistent indentation (tabs and spaces)
	E0006 = "E0006" // unindent matches no outer level

	// E0100-E0199: parse errors
	E0100 = "E0100" // unexpected token
	E0101 = "E0101" // missing delimiter (colon, paren, bracket)
	E0102 = "E0102" // expected expression
	E0103 = "E0103" // invalid assignment target
	E0104 = "E0104" // starred expression misuse
	E0105 = "E0105" // parameter order violation
	E0106 = "E0106" // async not followed by def
	E0107 = "E0107" // class header keyword violation
	E0108 = "E0108" // unsupported construct (try/with/match/yield/await)
	E0109 = "E0109" // unexpected end of file inside a construct
	E0110 = "E0110" // nesting too deep
)
