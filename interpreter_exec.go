// interpreter_exec.go — PRIVATE: tree-walking evaluator for Mico.
//
// Structurally recursive over the AST; never mutates it. The only state is
// the environment chain mutated in place. Two error disciplines coexist:
//
//   - Soft failures (unresolved identifiers, unknown operators, non-numeric
//     operands) degrade to the null Value. This permissive policy is part of
//     the language contract; do not "fix" it here.
//   - Hard failures (arity mismatch, division by zero, calling a
//     non-function) panic with the private rtErr signal and are recovered at
//     the public Eval boundary into *Error{Kind: DiagRuntime}.
//
// Return statements produce a VTReturn-wrapped value that propagates wrapped
// through nested blocks and is unwrapped exactly once at the program or
// function-call boundary, so a return inside a nested if-block still escapes
// the whole function body.
package mico

import "fmt"

// rtErr is the panic payload for hard runtime failures. Line/Col are 1-based.
type rtErr struct {
	msg  string
	line int
	col  int
}

// failAt raises a hard runtime error positioned at node n.
func failAt(n Node, msg string) {
	line, col := n.Pos()
	panic(rtErr{msg: msg, line: line, col: col})
}

// recoverRuntime converts an rtErr panic into a *Error; other panics keep
// propagating (they are host bugs, not user errors).
func recoverRuntime(out *Value, err *error) {
	if r := recover(); r != nil {
		sig, ok := r.(rtErr)
		if !ok {
			panic(r)
		}
		*out = Null
		*err = &Error{Kind: DiagRuntime, Msg: sig.msg, Line: sig.line, Col: sig.col}
	}
}

// runProgram is the recovery boundary between the panic-based engine
// internals and the (Value, error) public surface.
func runProgram(prog *Program, env *Env) (out Value, err error) {
	defer recoverRuntime(&out, &err)
	return evalProgram(prog, env), nil
}

// evalProgram executes statements in order, keeping the last statement's
// value. A return signal stops execution and is unwrapped here — the
// outermost boundary.
func evalProgram(prog *Program, env *Env) Value {
	result := Null
	for _, stmt := range prog.Statements {
		result = evalStatement(stmt, env)
		if result.Tag == VTReturn {
			return result.Data.(Value)
		}
	}
	return result
}

// evalBlock is evalProgram without the unwrap: the signal propagates wrapped
// so it can escape enclosing blocks too.
func evalBlock(block *BlockStatement, env *Env) Value {
	result := Null
	for _, stmt := range block.Statements {
		result = evalStatement(stmt, env)
		if result.Tag == VTReturn {
			return result
		}
	}
	return result
}

func evalStatement(stmt Statement, env *Env) Value {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		return evalExpression(s.Expr, env)
	case *BlockStatement:
		return evalBlock(s, env)
	case *ReturnStatement:
		return returnVal(evalExpression(s.Value, env))
	case *LetStatement:
		// Statements are expression-valued: a let yields the bound value.
		v := evalExpression(s.Value, env)
		env.Define(s.Name.Name, v)
		return v
	default:
		failAt(stmt, fmt.Sprintf("unhandled statement %T", stmt))
		return Null
	}
}

func evalExpression(expr Expression, env *Env) Value {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return Int(e.Value)
	case *BooleanLiteral:
		return Bool(e.Value)
	case *Identifier:
		// Unresolved identifiers evaluate to null, not an error.
		if v, ok := env.Get(e.Name); ok {
			return v
		}
		return Null
	case *PrefixExpression:
		return evalPrefix(e, env)
	case *InfixExpression:
		return evalInfix(e, env)
	case *IfExpression:
		return evalIf(e, env)
	case *FunctionLiteral:
		return FunVal(&Fun{Params: e.Params, Body: e.Body, Env: env})
	case *CallExpression:
		return evalCall(e, env)
	default:
		failAt(expr, fmt.Sprintf("unhandled expression %T", expr))
		return Null
	}
}

func evalPrefix(e *PrefixExpression, env *Env) Value {
	rhs := evalExpression(e.Right, env)
	switch e.Op {
	case "!":
		return evalBang(rhs)
	case "-":
		return evalMinus(rhs)
	default:
		return Null
	}
}

// evalBang: booleans negate, null is truthy-inverted to true, and every
// other value — integers included — yields false. Never an error.
func evalBang(v Value) Value {
	switch v.Tag {
	case VTBool:
		return Bool(!v.Data.(bool))
	case VTNull:
		return Bool(true)
	default:
		return Bool(false)
	}
}

func evalMinus(v Value) Value {
	if v.Tag != VTInt {
		return Null
	}
	return Int(-v.Data.(int64))
}

// asArith reduces a value to a machine integer for infix evaluation:
// integers as-is, booleans coerced to 0/1, anything else refuses.
func asArith(v Value) (int64, bool) {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64), true
	case VTBool:
		if v.Data.(bool) {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// evalInfix reduces both operands to machine integers before applying the
// operator. A non-numeric operand or an unrecognized operator degrades to
// null; division by zero is the one hard error here.
func evalInfix(e *InfixExpression, env *Env) Value {
	lv, lok := asArith(evalExpression(e.Left, env))
	rv, rok := asArith(evalExpression(e.Right, env))
	if !lok || !rok {
		return Null
	}

	switch e.Op {
	case "+":
		return Int(lv + rv)
	case "-":
		return Int(lv - rv)
	case "*":
		return Int(lv * rv)
	case "/":
		if rv == 0 {
			failAt(e, "division by zero")
		}
		return Int(lv / rv)
	case "<":
		return Bool(lv < rv)
	case ">":
		return Bool(lv > rv)
	case "==":
		return Bool(lv == rv)
	case "!=":
		return Bool(lv != rv)
	default:
		return Null
	}
}

// isTruthy: null is falsy, booleans are themselves, everything else —
// including integer zero — is truthy.
func isTruthy(v Value) bool {
	switch v.Tag {
	case VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

func evalIf(e *IfExpression, env *Env) Value {
	if isTruthy(evalExpression(e.Condition, env)) {
		return evalBlock(e.Consequence, env)
	}
	if e.Alternative != nil {
		return evalBlock(e.Alternative, env)
	}
	return Null
}

// evalCall evaluates the callee, then each argument left to right in the
// caller's environment, and applies.
func evalCall(e *CallExpression, env *Env) Value {
	callee := evalExpression(e.Callee, env)

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, evalExpression(a, env))
	}

	line, col := e.Pos()
	return applyFunction(callee, args, line, col)
}

// applyFunction builds the call frame and evaluates the body. The frame's
// parent is the closure's captured environment — not the caller's — which is
// what makes scoping lexical rather than dynamic.
func applyFunction(fn Value, args []Value, line, col int) Value {
	if fn.Tag != VTFun {
		panic(rtErr{msg: fmt.Sprintf("not a function: %s", FormatValue(fn)), line: line, col: col})
	}
	f := fn.Data.(*Fun)

	if len(args) != len(f.Params) {
		panic(rtErr{
			msg:  fmt.Sprintf("arity mismatch: expected %d, got %d", len(f.Params), len(args)),
			line: line,
			col:  col,
		})
	}

	frame := NewEnv(f.Env)
	for i, p := range f.Params {
		frame.Define(p.Name, args[i])
	}

	result := evalBlock(f.Body, frame)
	if result.Tag == VTReturn {
		return result.Data.(Value)
	}
	return result
}
