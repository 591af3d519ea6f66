// ast.go — typed syntax tree for Mico.
//
// The tree is an algebraic sum: Statement and Expression are small sealed
// interfaces and every variant is a concrete struct. The parser is the only
// producer; the evaluator the only consumer. Nodes are immutable after
// parsing, own their children exclusively (no back edges, no sharing), and
// each carries the token that introduced it so runtime diagnostics can point
// at real source positions.
//
// String renders canonical, re-parseable source. Operator expressions print
// fully parenthesized — "-5 + 4" renders "((-5) + 4)" — which is what the
// precedence tests assert against and what keeps Pretty idempotent.
package mico

import "strings"

// Node is the common interface of every syntax-tree node.
type Node interface {
	// String renders the node as canonical source text.
	String() string
	// Pos reports the node's source position (1-based line and column).
	Pos() (line, col int)
}

// Statement nodes appear in Program and BlockStatement bodies.
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes produce values.
type Expression interface {
	Node
	exprNode()
}

// Program is the root of a parsed source unit: its statements in source order.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, s := range p.Statements {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 1
}

func pos(t Token) (int, int) { return t.Line, t.Col + 1 }

// ───────────────────────────────── statements ───────────────────────────────

// LetStatement binds Name to the value of Value in the current environment.
type LetStatement struct {
	Tok   Token // the 'let' token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) stmtNode()       {}
func (s *LetStatement) Pos() (int, int) { return pos(s.Tok) }
func (s *LetStatement) String() string {
	return "let " + s.Name.String() + " = " + s.Value.String() + ";"
}

// ReturnStatement carries the value back to the nearest function-call (or
// program) boundary.
type ReturnStatement struct {
	Tok   Token // the 'return' token
	Value Expression
}

func (s *ReturnStatement) stmtNode()       {}
func (s *ReturnStatement) Pos() (int, int) { return pos(s.Tok) }
func (s *ReturnStatement) String() string  { return "return " + s.Value.String() + ";" }

// ExpressionStatement is a bare expression in statement position.
type ExpressionStatement struct {
	Tok  Token // first token of the expression
	Expr Expression
}

func (s *ExpressionStatement) stmtNode()       {}
func (s *ExpressionStatement) Pos() (int, int) { return pos(s.Tok) }
func (s *ExpressionStatement) String() string  { return s.Expr.String() + ";" }

// BlockStatement is a brace-delimited statement sequence. An empty block is
// legal and evaluates to null.
type BlockStatement struct {
	Tok        Token // the '{' token
	Statements []Statement
}

func (s *BlockStatement) stmtNode()       {}
func (s *BlockStatement) Pos() (int, int) { return pos(s.Tok) }
func (s *BlockStatement) String() string {
	parts := make([]string, 0, len(s.Statements))
	for _, st := range s.Statements {
		parts = append(parts, st.String())
	}
	return strings.Join(parts, " ")
}

// ──────────────────────────────── expressions ───────────────────────────────

// Identifier names a binding.
type Identifier struct {
	Tok  Token
	Name string
}

func (e *Identifier) exprNode()       {}
func (e *Identifier) Pos() (int, int) { return pos(e.Tok) }
func (e *Identifier) String() string  { return e.Name }

// IntegerLiteral is a decimal integer constant.
type IntegerLiteral struct {
	Tok   Token
	Value int64
}

func (e *IntegerLiteral) exprNode()       {}
func (e *IntegerLiteral) Pos() (int, int) { return pos(e.Tok) }
func (e *IntegerLiteral) String() string  { return e.Tok.Lexeme }

// BooleanLiteral is 'true' or 'false'.
type BooleanLiteral struct {
	Tok   Token
	Value bool
}

func (e *BooleanLiteral) exprNode()       {}
func (e *BooleanLiteral) Pos() (int, int) { return pos(e.Tok) }
func (e *BooleanLiteral) String() string  { return e.Tok.Lexeme }

// PrefixExpression is "!x" or "-x".
type PrefixExpression struct {
	Tok   Token // the operator token
	Op    string
	Right Expression
}

func (e *PrefixExpression) exprNode()       {}
func (e *PrefixExpression) Pos() (int, int) { return pos(e.Tok) }
func (e *PrefixExpression) String() string  { return "(" + e.Op + e.Right.String() + ")" }

// InfixExpression is "left op right" for the eight binary operators.
type InfixExpression struct {
	Tok   Token // the operator token
	Op    string
	Left  Expression
	Right Expression
}

func (e *InfixExpression) exprNode()       {}
func (e *InfixExpression) Pos() (int, int) { return pos(e.Tok) }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// IfExpression evaluates Consequence when Condition is truthy, otherwise
// Alternative (which may be nil).
type IfExpression struct {
	Tok         Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when no else branch
}

func (e *IfExpression) exprNode()       {}
func (e *IfExpression) Pos() (int, int) { return pos(e.Tok) }
func (e *IfExpression) String() string {
	out := "if (" + e.Condition.String() + ") " + braced(e.Consequence)
	if e.Alternative != nil {
		out += " else " + braced(e.Alternative)
	}
	return out
}

// FunctionLiteral is "fn(params) { body }".
type FunctionLiteral struct {
	Tok    Token // the 'fn' token
	Params []*Identifier
	Body   *BlockStatement
}

func (e *FunctionLiteral) exprNode()       {}
func (e *FunctionLiteral) Pos() (int, int) { return pos(e.Tok) }
func (e *FunctionLiteral) String() string {
	return "fn(" + joinIdents(e.Params) + ") " + braced(e.Body)
}

// CallExpression applies Callee to Args.
type CallExpression struct {
	Tok    Token // the '(' token of the argument list
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) exprNode()       {}
func (e *CallExpression) Pos() (int, int) { return pos(e.Tok) }
func (e *CallExpression) String() string {
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		parts = append(parts, a.String())
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

func braced(b *BlockStatement) string {
	inner := b.String()
	if inner == "" {
		return "{ }"
	}
	return "{ " + inner + " }"
}

func joinIdents(ids []*Identifier) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ", ")
}
