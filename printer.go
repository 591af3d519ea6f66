// printer.go — canonical textual renderings for values and source.
//
// FormatValue is the one rendering the REPL prints and the tests assert
// against. Pretty parses source and re-prints it in canonical form; the
// canonical form is a fixed point (pretty(src) == pretty(pretty(src))) and
// re-parsing it yields a tree that evaluates identically.
package mico

import "strconv"

// FormatValue renders a runtime value canonically: integers as decimal
// digits, booleans as true/false, null as null, and functions as their
// parameter list and body.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTReturn:
		// Not observable outside block evaluation; rendered for debugging.
		return FormatValue(v.Data.(Value))
	case VTFun:
		f := v.Data.(*Fun)
		return "fn(" + joinIdents(f.Params) + ") " + braced(f.Body)
	default:
		return "<unknown>"
	}
}

// Pretty parses Mico source and returns its canonical rendering. The first
// parse diagnostic, if any, is returned as a caret-snippet error.
func Pretty(src string) (string, error) {
	p := New(NewLexer(src))
	prog := p.ParseProgram()
	if ds := p.Diagnostics(); len(ds) > 0 {
		return "", WrapErrorWithSource(ds[0], src)
	}
	return prog.String(), nil
}
