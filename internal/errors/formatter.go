package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ============================================================================
// CompileError
// ============================================================================

// CompileError is a rendered-ready diagnostic: a lexical or parse error
// plus everything the formatter needs (code, level, location, hints).
type CompileError struct {
	Code    string // stable code, see codes.go
	Level   Level
	Message string
	File    string
	Line    int // 1-based
	Column  int // 1-based
	Length  int // columns to underline; 0 means 1
	Hints   []string
}

// Error renders the one-line form "file:line:col: message".
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// ============================================================================
// Formatter
// ============================================================================

// Formatter renders CompileErrors for a terminal, in the style
//
//	error[E0101]: Expected ':' after if condition, found newline
//	 --> demo.mamba:3:10
//	  |
//	3 | if x == 5
//	  |          ^
//	  = help: ...
type Formatter struct {
	Colors     bool
	ShowSource bool
	ShowHints  bool
	TabWidth   int
}

// NewFormatter returns a formatter with source context and hints enabled.
func NewFormatter() *Formatter {
	return &Formatter{
		Colors:     true,
		ShowSource: true,
		ShowHints:  true,
		TabWidth:   4,
	}
}

func (f *Formatter) sprintf(c *color.Color, format string, args ...interface{}) string {
	if !f.Colors {
		return fmt.Sprintf(format, args...)
	}
	return c.Sprintf(format, args...)
}

func (f *Formatter) levelColor(level Level) *color.Color {
	switch level {
	case LevelError:
		return color.New(color.FgRed, color.Bold)
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

var (
	locColor  = color.New(color.FgCyan)
	gutColor  = color.New(color.FgBlue)
	markColor = color.New(color.FgRed, color.Bold)
)

// Format renders one diagnostic. sourceLines is the source split on
// newlines; pass nil to skip the snippet.
func (f *Formatter) Format(err *CompileError, sourceLines []string) string {
	var sb strings.Builder

	// error[E0101]: message
	head := f.sprintf(f.levelColor(err.Level), "%s[%s]", err.Level, err.Code)
	sb.WriteString(fmt.Sprintf("%s: %s\n", head, err.Message))

	// --> file:line:col
	sb.WriteString(fmt.Sprintf(" %s %s\n",
		f.sprintf(locColor, "-->"),
		f.sprintf(locColor, "%s:%d:%d", err.File, err.Line, err.Column)))

	if f.ShowSource && err.Line > 0 && err.Line <= len(sourceLines) {
		sb.WriteString(f.formatSnippet(sourceLines[err.Line-1], err))
	}

	if f.ShowHints {
		for _, hint := range err.Hints {
			sb.WriteString(fmt.Sprintf("%s %s\n", f.sprintf(locColor, " = help:"), hint))
		}
	}

	return sb.String()
}

// FormatAll renders a batch of diagnostics against one source text.
func (f *Formatter) FormatAll(errs []*CompileError, source string) string {
	lines := strings.Split(source, "\n")
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f.Format(e, lines))
	}
	return sb.String()
}

// formatSnippet renders the offending line with a caret underneath.
func (f *Formatter) formatSnippet(line string, err *CompileError) string {
	var sb strings.Builder

	lineNum := fmt.Sprintf("%d", err.Line)
	gutterWidth := len(lineNum)

	expanded, caretCol := f.expandTabs(line, err.Column)

	// Blank gutter line.
	sb.WriteString(f.sprintf(gutColor, "%s |", strings.Repeat(" ", gutterWidth)))
	sb.WriteString("\n")

	// Source line.
	sb.WriteString(f.sprintf(gutColor, "%s |", lineNum))
	sb.WriteString(" " + expanded + "\n")

	// Caret line.
	length := err.Length
	if length < 1 {
		length = 1
	}
	if caretCol < 1 {
		caretCol = 1
	}
	sb.WriteString(f.sprintf(gutColor, "%s |", strings.Repeat(" ", gutterWidth)))
	sb.WriteString(" " + strings.Repeat(" ", caretCol-1))
	sb.WriteString(f.sprintf(markColor, "%s", strings.Repeat("^", length)))
	sb.WriteString("\n")

	return sb.String()
}

// expandTabs replaces tabs with spaces and maps the 1-based column into
// the expanded line.
func (f *Formatter) expandTabs(line string, col int) (string, int) {
	var sb strings.Builder
	outCol := col
	for i, ch := range line {
		if ch == '\t' {
			sb.WriteString(strings.Repeat(" ", f.TabWidth))
			if i < col-1 {
				outCol += f.TabWidth - 1
			}
		} else {
			sb.WriteRune(ch)
		}
	}
	return sb.String(), outCol
}
