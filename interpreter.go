// interpreter.go — PUBLIC API SURFACE for the Mico interpreter.
//
// OVERVIEW
// ========
// This file exposes the public surface of the runtime: the tagged value
// model, closures, lexical environments, and the Interpreter entry points.
// The tree-walking evaluator itself is private (interpreter_exec.go).
//
// EXECUTION & SCOPING SEMANTICS
// -----------------------------
// Code evaluates in environments (*Env) forming a lexical chain via parent.
// The Interpreter owns one well-known frame, Global, which persists for the
// interpreter's lifetime. Entry points differ only in which environment they
// target:
//   - EvalSource runs in a fresh child of Global: names bound during
//     evaluation land in that throwaway child and Global stays unchanged.
//   - EvalPersistentSource runs in Global itself (REPL-style), so let
//     bindings survive across calls.
//   - EvalProgram evaluates a pre-parsed Program exactly in the environment
//     you pass, letting hosts control scoping explicitly.
//
// ERRORS
// ------
// All entry points return (Value, error). Parse failures surface the first
// recorded diagnostic; evaluation failures surface a *Error{Kind:
// DiagRuntime} with a 1-based position. Both are wrapped into caret-style
// snippets by the source-taking entry points. The evaluator is deliberately
// permissive — unresolved identifiers, unknown operators, and type-mismatched
// operands degrade to null — and only two conditions are hard runtime errors:
// call arity mismatches and division by zero. Silently returning null there
// would make programmer mistakes indistinguishable from legitimate nulls.
package mico

// Version is the interpreter release; BuildDate may be stamped at link time.
const Version = "0.4.0"

var BuildDate = "unknown"

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates all runtime kinds a Value may hold.
type ValueTag int

const (
	VTNull   ValueTag = iota // null (no payload)
	VTBool                   // bool
	VTInt                    // int64
	VTReturn                 // Value; control-flow carrier, never observable outside a block
	VTFun                    // *Fun (closure)
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag). When Tag==VTNull, Data is nil.
type Value struct {
	Tag  ValueTag
	Data any
}

// String renders the canonical textual form (see FormatValue).
func (v Value) String() string { return FormatValue(v) }

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value   { return Value{Tag: VTInt, Data: n} }
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// returnVal wraps a value in the return-signal carrier. The signal propagates
// wrapped through nested blocks and is unwrapped exactly once at the nearest
// program or function-call boundary.
func returnVal(v Value) Value { return Value{Tag: VTReturn, Data: v} }

// Fun is a function value: parameters, body, and the environment captured at
// definition time. The capture is a shared reference to the frame, not a
// snapshot — later calls observe bindings added to that frame afterward.
type Fun struct {
	Params []*Identifier
	Body   *BlockStatement
	Env    *Env
}

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; Define always writes the local frame (no implicit outer
// mutation). Environments are mutable, reference-shared, and not safe for
// concurrent use without external synchronization.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new lexical frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter is the entry point for evaluating Mico programs. Global is the
// persistent program environment (REPL state); it is explicit, owned state —
// never process-wide.
type Interpreter struct {
	Global *Env
}

// NewInterpreter constructs an interpreter with an empty Global environment.
func NewInterpreter() *Interpreter {
	return &Interpreter{Global: NewEnv(nil)}
}

// EvalSource parses and evaluates source in a fresh child of Global.
// Bindings made by the program land in that ephemeral child.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.evalNamedSource("<main>", src, NewEnv(ip.Global))
}

// EvalPersistentSource parses and evaluates source in Global (REPL-style);
// let bindings persist across calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	return ip.evalNamedSource("<repl>", src, ip.Global)
}

// EvalProgram evaluates a pre-parsed Program in the provided environment
// exactly as given. Errors are unwrapped *Error values (no source snippet).
func (ip *Interpreter) EvalProgram(prog *Program, env *Env) (Value, error) {
	return runProgram(prog, env)
}

// Apply applies a function Value to the provided arguments, with the same
// arity rules as an in-language call.
func (ip *Interpreter) Apply(fn Value, args []Value) (out Value, err error) {
	defer recoverRuntime(&out, &err)
	return applyFunction(fn, args, 1, 1), nil
}

func (ip *Interpreter) evalNamedSource(name, src string, env *Env) (Value, error) {
	p := New(NewLexer(src))
	prog := p.ParseProgram()
	if ds := p.Diagnostics(); len(ds) > 0 {
		return Null, WrapErrorWithName(ds[0], name, src)
	}
	v, err := runProgram(prog, env)
	if err != nil {
		return Null, WrapErrorWithName(err, name, src)
	}
	return v, nil
}

//// END_OF_PUBLIC
