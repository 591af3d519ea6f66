// parser.go — Pratt parser for Mico.
//
// OVERVIEW
// --------
// The parser consumes the lexer's token stream through a one-token lookahead
// (curTok/peekTok) and produces the typed AST in ast.go. Expression parsing is
// precedence climbing: every token kind that can start an expression has a
// prefix rule, every token kind that can continue one has an infix rule keyed
// by a binding power, and parseExpression keeps consuming operators while the
// next token binds tighter than the threshold it was called with.
//
// Binding powers, lowest to highest (this ordering is load-bearing; the
// evaluator's notion of tree shape depends on it):
//
//	Lowest < Equals(== !=) < LessGreater(< >) < Sum(+ -) < Product(* /)
//	       < Prefix(-x !x) < Call(f(...))
//
// Error policy is collect-and-continue: a statement that fails to parse
// contributes no node, its diagnostic is recorded, and parsing resumes at the
// next statement boundary. expectPeek does not advance past an unexpected
// token, so one mistake can cascade into further diagnostics — an accepted
// trade-off for a simple recovery scheme. Callers must check Errors() before
// trusting the Program.
//
// Interactive mode (NewInteractive) supports REPL line continuation: an
// expectation that fails because the input simply ended is recorded as
// DiagIncomplete instead of DiagParse, and Incomplete() reports whether more
// input could still turn the prefix into a valid program.
package mico

import (
	"fmt"
	"strconv"
)

// Binding powers for infix operators.
const (
	precLowest = iota + 1
	precEquals      // == !=
	precLessGreater // < >
	precSum         // + -
	precProduct     // * /
	precPrefix      // -x !x
	precCall        // f(...)
)

var precedences = map[TokenType]int{
	EQ:       precEquals,
	NOT_EQ:   precEquals,
	LT:       precLessGreater,
	GT:       precLessGreater,
	PLUS:     precSum,
	MINUS:    precSum,
	ASTERISK: precProduct,
	SLASH:    precProduct,
	LPAREN:   precCall,
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// Parser turns a token stream into a Program, accumulating diagnostics
// instead of aborting.
type Parser struct {
	l           *Lexer
	interactive bool

	diags []*Error

	curTok  Token
	peekTok Token

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// New creates a parser over l with both lookahead tokens primed.
func New(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[TokenType]prefixParseFn{
		IDENT:    p.parseIdentifier,
		INT:      p.parseIntegerLiteral,
		TRUE:     p.parseBooleanLiteral,
		FALSE:    p.parseBooleanLiteral,
		BANG:     p.parsePrefixExpression,
		MINUS:    p.parsePrefixExpression,
		LPAREN:   p.parseGroupedExpression,
		IF:       p.parseIfExpression,
		FUNCTION: p.parseFunctionLiteral,
	}
	p.infixFns = map[TokenType]infixParseFn{
		PLUS:     p.parseInfixExpression,
		MINUS:    p.parseInfixExpression,
		ASTERISK: p.parseInfixExpression,
		SLASH:    p.parseInfixExpression,
		EQ:       p.parseInfixExpression,
		NOT_EQ:   p.parseInfixExpression,
		LT:       p.parseInfixExpression,
		GT:       p.parseInfixExpression,
		LPAREN:   p.parseCallExpression,
	}

	p.advance()
	p.advance()
	return p
}

// NewInteractive creates a parser whose end-of-input failures surface as
// DiagIncomplete, for REPL continuation probing.
func NewInteractive(l *Lexer) *Parser {
	p := New(l)
	p.interactive = true
	return p
}

// ParseProgram consumes tokens until EOF and returns whatever statements
// parsed successfully. Check Errors() before trusting the result.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{Statements: []Statement{}}

	for !p.curTokenIs(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.advance()
	}

	return prog
}

// Errors renders the accumulated diagnostics as human-readable messages.
func (p *Parser) Errors() []string {
	out := make([]string, 0, len(p.diags))
	for _, d := range p.diags {
		out = append(out, d.Error())
	}
	return out
}

// Diagnostics returns the structured diagnostics.
func (p *Parser) Diagnostics() []*Error { return p.diags }

// Incomplete reports whether every recorded diagnostic was caused by the
// input ending early — i.e. more input could still complete the program.
func (p *Parser) Incomplete() bool {
	if len(p.diags) == 0 {
		return false
	}
	for _, d := range p.diags {
		if d.Kind != DiagIncomplete {
			return false
		}
	}
	return true
}

// ─────────────────────────── token plumbing ────────────────────────────────

// advance pulls exactly one new token from the lexer.
func (p *Parser) advance() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curTokenIs(tt TokenType) bool  { return p.curTok.Type == tt }
func (p *Parser) peekTokenIs(tt TokenType) bool { return p.peekTok.Type == tt }

// expectPeek advances when the peeked token matches. On mismatch it records a
// diagnostic and stays put; parsing resumes from the unexpected token.
func (p *Parser) expectPeek(tt TokenType) bool {
	if p.peekTokenIs(tt) {
		p.advance()
		return true
	}
	p.peekError(tt)
	return false
}

func (p *Parser) diagAt(tok Token, kind DiagKind, msg string) {
	line, col := pos(tok)
	p.diags = append(p.diags, &Error{Kind: kind, Msg: msg, Line: line, Col: col})
}

func (p *Parser) peekError(expected TokenType) {
	kind := DiagParse
	if p.interactive && p.peekTokenIs(EOF) {
		kind = DiagIncomplete
	}
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", expected, p.peekTok.Type)
	p.diagAt(p.peekTok, kind, msg)
}

func (p *Parser) noPrefixError() {
	if p.curTokenIs(ILLEGAL) {
		p.diagAt(p.curTok, DiagParse, fmt.Sprintf("unexpected character %q", p.curTok.Lexeme))
		return
	}
	kind := DiagParse
	if p.interactive && p.curTokenIs(EOF) {
		kind = DiagIncomplete
	}
	msg := fmt.Sprintf("no prefix parse function for %s found", p.curTok.Type)
	p.diagAt(p.curTok, kind, msg)
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curTok.Type]; ok {
		return prec
	}
	return precLowest
}

// ──────────────────────────────── statements ────────────────────────────────

func (p *Parser) parseStatement() Statement {
	switch p.curTok.Type {
	case LET:
		return p.parseLetStatement()
	case RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses "let IDENT = EXPR ;". A missing identifier or '='
// abandons the statement; the caller gets no node, not a partial one.
func (p *Parser) parseLetStatement() Statement {
	tok := p.curTok

	if !p.expectPeek(IDENT) {
		return nil
	}
	name := &Identifier{Tok: p.curTok, Name: p.curTok.Lexeme}

	if !p.expectPeek(ASSIGN) {
		return nil
	}

	p.advance()
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}

	if p.peekTokenIs(SEMICOLON) {
		p.advance()
	}

	return &LetStatement{Tok: tok, Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() Statement {
	tok := p.curTok

	p.advance()
	value := p.parseExpression(precLowest)
	if value == nil {
		return nil
	}

	if p.peekTokenIs(SEMICOLON) {
		p.advance()
	}

	return &ReturnStatement{Tok: tok, Value: value}
}

// Semicolons after expression statements are optional so the REPL accepts
// bare expressions like "5 + 10".
func (p *Parser) parseExpressionStatement() Statement {
	tok := p.curTok

	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(SEMICOLON) {
		p.advance()
	}

	return &ExpressionStatement{Tok: tok, Expr: expr}
}

// parseBlockStatement parses "{ stmt* }". Reaching EOF before '}' is a
// diagnostic (incomplete in interactive mode).
func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Tok: p.curTok}

	p.advance()
	for !p.curTokenIs(RBRACE) && !p.curTokenIs(EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.advance()
	}

	if p.curTokenIs(EOF) {
		kind := DiagParse
		if p.interactive {
			kind = DiagIncomplete
		}
		p.diagAt(p.curTok, kind, fmt.Sprintf("expected next token to be %s, got %s instead", RBRACE, EOF))
	}

	return block
}

// ─────────────────────────── expressions (Pratt core) ───────────────────────

// parseExpression parses a left-hand expression via the current token's
// prefix rule, then keeps consuming infix operators while the peeked token
// binds tighter than the given threshold.
func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.noPrefixError()
		return nil
	}
	left := prefix()

	for left != nil && !p.peekTokenIs(SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}
		p.advance()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Tok: p.curTok, Name: p.curTok.Lexeme}
}

func (p *Parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curTok.Lexeme, 10, 64)
	if err != nil {
		p.diagAt(p.curTok, DiagParse, fmt.Sprintf("could not parse %q as integer", p.curTok.Lexeme))
		return nil
	}
	return &IntegerLiteral{Tok: p.curTok, Value: value}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Tok: p.curTok, Value: p.curTokenIs(TRUE)}
}

func (p *Parser) parsePrefixExpression() Expression {
	tok := p.curTok

	p.advance()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}

	return &PrefixExpression{Tok: tok, Op: tok.Lexeme, Right: right}
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	tok := p.curTok
	precedence := p.curPrecedence()

	p.advance()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &InfixExpression{Tok: tok, Op: tok.Lexeme, Left: left, Right: right}
}

func (p *Parser) parseGroupedExpression() Expression {
	p.advance()

	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpression() Expression {
	tok := p.curTok

	if !p.expectPeek(LPAREN) {
		return nil
	}
	p.advance()
	cond := p.parseExpression(precLowest)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(RPAREN) {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	cons := p.parseBlockStatement()

	expr := &IfExpression{Tok: tok, Condition: cond, Consequence: cons}

	if p.peekTokenIs(ELSE) {
		p.advance()
		if !p.expectPeek(LBRACE) {
			return nil
		}
		expr.Alternative = p.parseBlockStatement()
	}

	return expr
}

func (p *Parser) parseFunctionLiteral() Expression {
	tok := p.curTok

	if !p.expectPeek(LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParams()
	if !ok {
		return nil
	}
	if !p.expectPeek(LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()

	return &FunctionLiteral{Tok: tok, Params: params, Body: body}
}

// parseFunctionParams parses a comma-separated identifier list ending at ')',
// tolerating a trailing comma.
func (p *Parser) parseFunctionParams() ([]*Identifier, bool) {
	params := []*Identifier{}

	if p.peekTokenIs(RPAREN) {
		p.advance()
		return params, true
	}

	if !p.expectPeek(IDENT) {
		return nil, false
	}
	params = append(params, &Identifier{Tok: p.curTok, Name: p.curTok.Lexeme})

	for p.peekTokenIs(COMMA) {
		p.advance()
		if p.peekTokenIs(RPAREN) {
			break
		}
		if !p.expectPeek(IDENT) {
			return nil, false
		}
		params = append(params, &Identifier{Tok: p.curTok, Name: p.curTok.Lexeme})
	}

	if !p.expectPeek(RPAREN) {
		return nil, false
	}

	return params, true
}

// parseCallExpression is the infix rule for '(' immediately following an
// expression: the callee is the already-parsed left side.
func (p *Parser) parseCallExpression(callee Expression) Expression {
	tok := p.curTok

	args, ok := p.parseCallArgs()
	if !ok {
		return nil
	}

	return &CallExpression{Tok: tok, Callee: callee, Args: args}
}

// parseCallArgs parses full expressions up to ')', same shape as the
// parameter list (trailing comma tolerated).
func (p *Parser) parseCallArgs() ([]Expression, bool) {
	args := []Expression{}

	if p.peekTokenIs(RPAREN) {
		p.advance()
		return args, true
	}

	p.advance()
	arg := p.parseExpression(precLowest)
	if arg == nil {
		return nil, false
	}
	args = append(args, arg)

	for p.peekTokenIs(COMMA) {
		p.advance()
		if p.peekTokenIs(RPAREN) {
			break
		}
		p.advance()
		arg := p.parseExpression(precLowest)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.expectPeek(RPAREN) {
		return nil, false
	}

	return args, true
}
