// Package errors renders compiler diagnostics the way the driver prints
// them: "Error: (at line N) (at token …) message", optionally highlighted
// in red for a terminal (spec §7).
//
// Every fallible stage (scanner, parser, lowering pass) returns a plain Go
// error; this package is only responsible for the driver-facing textual
// rendering, not for control flow. The driver is the only place that
// prints a CompilerError and exits (spec §9, replacing throw/catch).
package errors

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/lexer"
)

// CompilerError is the taxonomy member common to all three failure
// kinds (LexError, ParseError, LowerError): a source line, an optional
// offending token, and a message.
type CompilerError struct {
	Line    int
	Token   string // "" when the error has no associated token (e.g. LexError)
	Message string
}

// NewCompilerError builds a CompilerError with an associated token.
func NewCompilerError(line int, token, message string) *CompilerError {
	return &CompilerError{Line: line, Token: token, Message: message}
}

// FromLexError adapts a *lexer.LexError, which has no offending token.
func FromLexError(e *lexer.LexError) *CompilerError {
	return &CompilerError{Line: e.Line, Message: e.Message}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders "Error: (at line N) (at token T) message", with the
// whole line in red/bold when color is true (the driver passes true only
// when stderr is a terminal). When Token is empty the "(at token …)"
// segment is omitted.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("Error: ")
	sb.WriteString(fmt.Sprintf("(at line %d) ", e.Line))
	if e.Token != "" {
		sb.WriteString(fmt.Sprintf("(at token %s) ", e.Token))
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// FormatWithSource renders Format plus the offending source line,
// prefixed with its line number. No caret is drawn: a CompilerError
// carries a line but no column.
func (e *CompilerError) FormatWithSource(source string, color bool) string {
	var sb strings.Builder
	sb.WriteString(e.Format(color))

	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return sb.String()
	}
	sb.WriteString("\n")
	lineNumStr := fmt.Sprintf("%4d | ", e.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(lines[e.Line-1])
	return sb.String()
}
