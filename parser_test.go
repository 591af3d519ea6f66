package mico

import "testing"

// parseProgram parses src and fails the test on any diagnostic.
func parseProgram(t *testing.T, src string) *Program {
	t.Helper()
	p := New(NewLexer(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse of %q failed: %v", src, errs)
	}
	return prog
}

// onlyExpr parses src expecting exactly one expression statement and returns
// its expression.
func onlyExpr(t *testing.T, src string) Expression {
	t.Helper()
	prog := parseProgram(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("want 1 statement, got %d: %s", len(prog.Statements), prog.String())
	}
	es, ok := prog.Statements[0].(*ExpressionStatement)
	if !ok {
		t.Fatalf("want expression statement, got %T", prog.Statements[0])
	}
	return es.Expr
}

func Test_Parser_LetStatements(t *testing.T) {
	prog := parseProgram(t, `let x = 5;
let y = true;
let foobar = y;`)

	want := []struct {
		name  string
		value string
	}{
		{"x", "5"},
		{"y", "true"},
		{"foobar", "y"},
	}
	if len(prog.Statements) != len(want) {
		t.Fatalf("want %d statements, got %d", len(want), len(prog.Statements))
	}
	for i, w := range want {
		ls, ok := prog.Statements[i].(*LetStatement)
		if !ok {
			t.Fatalf("statement %d: want *LetStatement, got %T", i, prog.Statements[i])
		}
		if ls.Name.Name != w.name {
			t.Fatalf("statement %d: want name %q, got %q", i, w.name, ls.Name.Name)
		}
		if got := ls.Value.String(); got != w.value {
			t.Fatalf("statement %d: want value %q, got %q", i, w.value, got)
		}
	}
}

func Test_Parser_ReturnStatements(t *testing.T) {
	prog := parseProgram(t, `return 5;
return x + y;`)

	want := []string{"return 5;", "return (x + y);"}
	if len(prog.Statements) != len(want) {
		t.Fatalf("want %d statements, got %d", len(want), len(prog.Statements))
	}
	for i, w := range want {
		if _, ok := prog.Statements[i].(*ReturnStatement); !ok {
			t.Fatalf("statement %d: want *ReturnStatement, got %T", i, prog.Statements[i])
		}
		if got := prog.Statements[i].String(); got != w {
			t.Fatalf("statement %d: want %q, got %q", i, w, got)
		}
	}
}

func Test_Parser_Precedence_Renderings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"-5 + 4", "((-5) + 4)"},
		{"-(5 + 4)", "(-(5 + 4))"},
		{"true == !false", "(true == (!false))"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
	}

	for _, c := range cases {
		expr := onlyExpr(t, c.src)
		if got := expr.String(); got != c.want {
			t.Fatalf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func Test_Parser_IfExpression(t *testing.T) {
	expr := onlyExpr(t, "if (x < y) { x }")

	ifx, ok := expr.(*IfExpression)
	if !ok {
		t.Fatalf("want *IfExpression, got %T", expr)
	}
	if got := ifx.Condition.String(); got != "(x < y)" {
		t.Fatalf("want condition %q, got %q", "(x < y)", got)
	}
	if len(ifx.Consequence.Statements) != 1 {
		t.Fatalf("want 1 consequence statement, got %d", len(ifx.Consequence.Statements))
	}
	if ifx.Alternative != nil {
		t.Fatalf("want nil alternative, got %s", ifx.Alternative.String())
	}
}

func Test_Parser_IfElseExpression(t *testing.T) {
	expr := onlyExpr(t, "if (x < y) { x } else { y }")

	ifx, ok := expr.(*IfExpression)
	if !ok {
		t.Fatalf("want *IfExpression, got %T", expr)
	}
	if ifx.Alternative == nil {
		t.Fatal("want alternative block, got nil")
	}
	if got := ifx.String(); got != "if ((x < y)) { x; } else { y; }" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func Test_Parser_FunctionLiteral_Params(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"fn() {};", nil},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
		{"fn(x, y,) {};", []string{"x", "y"}}, // trailing comma tolerated
	}

	for _, c := range cases {
		expr := onlyExpr(t, c.src)
		fl, ok := expr.(*FunctionLiteral)
		if !ok {
			t.Fatalf("%q: want *FunctionLiteral, got %T", c.src, expr)
		}
		if len(fl.Params) != len(c.want) {
			t.Fatalf("%q: want %d params, got %d", c.src, len(c.want), len(fl.Params))
		}
		for i, name := range c.want {
			if fl.Params[i].Name != name {
				t.Fatalf("%q: param %d: want %q, got %q", c.src, i, name, fl.Params[i].Name)
			}
		}
	}
}

func Test_Parser_CallExpression(t *testing.T) {
	expr := onlyExpr(t, "add(1, 2 * 3, 4 + 5);")

	call, ok := expr.(*CallExpression)
	if !ok {
		t.Fatalf("want *CallExpression, got %T", expr)
	}
	if got := call.Callee.String(); got != "add" {
		t.Fatalf("want callee %q, got %q", "add", got)
	}
	want := []string{"1", "(2 * 3)", "(4 + 5)"}
	if len(call.Args) != len(want) {
		t.Fatalf("want %d args, got %d", len(want), len(call.Args))
	}
	for i, w := range want {
		if got := call.Args[i].String(); got != w {
			t.Fatalf("arg %d: want %q, got %q", i, w, got)
		}
	}
}

func Test_Parser_Diagnostic_Messages(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"let x 5;", "expected next token to be =, got INT instead"},
		{"let = 10;", "expected next token to be IDENT, got = instead"},
		{"if (true) { 1 ", "expected next token to be }, got EOF instead"},
		{"let x = @;", `unexpected character "@"`},
		{"9223372036854775808;", `could not parse "9223372036854775808" as integer`},
	}

	for _, c := range cases {
		p := New(NewLexer(c.src))
		p.ParseProgram()
		diags := p.Diagnostics()
		if len(diags) == 0 {
			t.Fatalf("%q: want a diagnostic, got none", c.src)
		}
		if diags[0].Msg != c.want {
			t.Fatalf("%q: want %q, got %q", c.src, c.want, diags[0].Msg)
		}
	}
}

func Test_Parser_Diagnostic_Positions(t *testing.T) {
	p := New(NewLexer("let x = 5;\nlet y 7;"))
	p.ParseProgram()

	diags := p.Diagnostics()
	if len(diags) == 0 {
		t.Fatal("want a diagnostic, got none")
	}
	if diags[0].Line != 2 || diags[0].Col != 7 {
		t.Fatalf("want diagnostic at 2:7, got %d:%d", diags[0].Line, diags[0].Col)
	}
}

// A single mistake may cascade: the parser stays put on an unexpected token
// and resumes at the next statement, so the stray tokens surface again.
func Test_Parser_CollectsMultipleDiagnostics(t *testing.T) {
	p := New(NewLexer("let x 5; let = 10;"))
	prog := p.ParseProgram()

	if len(p.Diagnostics()) < 2 {
		t.Fatalf("want at least 2 diagnostics, got %d: %v", len(p.Diagnostics()), p.Errors())
	}
	// The failed lets contribute no nodes; the stray 5 and 10 reparse as
	// expression statements.
	for _, s := range prog.Statements {
		if _, ok := s.(*LetStatement); ok {
			t.Fatalf("malformed let produced a node: %s", s.String())
		}
	}
}

func Test_Parser_Interactive_IncompleteProbe(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"fn(x) {", true},
		{"fn(x) { x + 1; }", false},
		{"(1 + 2", true},
		{"let x =", true},
		{"if (true) {", true},
		{"let x 5;", false}, // real syntax error, not an early end
		{"5 + 5;", false},
	}

	for _, c := range cases {
		p := NewInteractive(NewLexer(c.src))
		p.ParseProgram()
		if got := p.Incomplete(); got != c.want {
			t.Fatalf("%q: want Incomplete()=%v, got %v (diags: %v)", c.src, c.want, got, p.Errors())
		}
	}
}

// The same early ends are hard errors outside interactive mode.
func Test_Parser_NonInteractive_EarlyEnd_IsParseError(t *testing.T) {
	p := New(NewLexer("fn(x) {"))
	p.ParseProgram()

	if p.Incomplete() {
		t.Fatal("non-interactive parser must not report incomplete input")
	}
	diags := p.Diagnostics()
	if len(diags) == 0 {
		t.Fatal("want a diagnostic, got none")
	}
	if diags[0].Kind != DiagParse {
		t.Fatalf("want DiagParse, got kind %d", diags[0].Kind)
	}
}

func Test_Parser_OptionalSemicolons(t *testing.T) {
	prog := parseProgram(t, "5 + 5")
	if got := prog.String(); got != "(5 + 5);" {
		t.Fatalf("want %q, got %q", "(5 + 5);", got)
	}
}
