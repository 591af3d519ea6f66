// errors.go — unified diagnostics and caret-snippet rendering.
//
// Every diagnostic the engine produces — parse errors, incomplete-input
// probes, runtime failures — is an *Error carrying a kind, a message, and a
// 1-based source position. WrapErrorWithSource / WrapErrorWithName upgrade an
// *Error into a readable, Python-style snippet with a caret pointing at the
// offending column:
//
//	PARSE ERROR at 2:14: expected next token to be ), got ; instead
//
//	   1 | let x = 5;
//	   2 | let y = (x + 2;
//	       |             ^
//	   3 | y;
//
// Other error values pass through unchanged. Line/column are clamped to the
// source bounds so rendering never fails on short or empty input.
package mico

import (
	"fmt"
	"strings"
)

// DiagKind classifies a diagnostic.
type DiagKind int

const (
	// DiagParse is a syntax error at a definite position.
	DiagParse DiagKind = iota
	// DiagIncomplete is a parse failure whose only obstacle was end of input;
	// interactive drivers treat it as "keep reading".
	DiagIncomplete
	// DiagRuntime is an evaluation-time failure (arity mismatch, division by
	// zero, calling a non-function).
	DiagRuntime
)

// Error is the unified diagnostic type. Line and Col are 1-based.
type Error struct {
	Kind DiagKind
	Msg  string
	Line int
	Col  int
}

func (e *Error) header() string {
	switch e.Kind {
	case DiagRuntime:
		return "RUNTIME ERROR"
	default:
		return "PARSE ERROR"
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.header(), e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is an *Error of kind DiagIncomplete.
func IsIncomplete(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == DiagIncomplete
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. Non-*Error values pass through unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source label ("<repl>",
// a file path) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", prettyErrorStringLabeled(src, e.header(), srcName, e.Line, e.Col, e.Msg))
}

// prettyErrorStringLabeled builds the snippet: header, at most one previous
// and one next line of context, and a caret under the 1-based column.
// Coordinates are clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
