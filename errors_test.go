package mico

import (
	"errors"
	"strings"
	"testing"
)

func Test_Errors_ErrorString(t *testing.T) {
	cases := []struct {
		e    *Error
		want string
	}{
		{&Error{Kind: DiagParse, Msg: "boom", Line: 2, Col: 7}, "PARSE ERROR at 2:7: boom"},
		{&Error{Kind: DiagIncomplete, Msg: "boom", Line: 1, Col: 1}, "PARSE ERROR at 1:1: boom"},
		{&Error{Kind: DiagRuntime, Msg: "boom", Line: 3, Col: 4}, "RUNTIME ERROR at 3:4: boom"},
	}
	for _, c := range cases {
		if got := c.e.Error(); got != c.want {
			t.Fatalf("want %q, got %q", c.want, got)
		}
	}
}

func Test_Errors_IsIncomplete(t *testing.T) {
	if !IsIncomplete(&Error{Kind: DiagIncomplete}) {
		t.Fatal("want IsIncomplete true for DiagIncomplete")
	}
	if IsIncomplete(&Error{Kind: DiagParse}) {
		t.Fatal("want IsIncomplete false for DiagParse")
	}
	if IsIncomplete(errors.New("plain")) {
		t.Fatal("want IsIncomplete false for a plain error")
	}
}

func Test_Errors_CaretSnippet(t *testing.T) {
	src := "let x = 5;\nlet y = (1 + 2;\ny;"
	p := New(NewLexer(src))
	p.ParseProgram()

	diags := p.Diagnostics()
	if len(diags) == 0 {
		t.Fatal("want a diagnostic, got none")
	}

	out := WrapErrorWithSource(diags[0], src).Error()

	for _, want := range []string{
		"PARSE ERROR at 2:15:",
		"   1 | let x = 5;",
		"   2 | let y = (1 + 2;",
		"     |               ^",
		"   3 | y;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snippet missing %q:\n%s", want, out)
		}
	}
}

func Test_Errors_WrapWithName(t *testing.T) {
	_, err := NewInterpreter().EvalSource("5 / 0")
	if err == nil {
		t.Fatal("want an error, got nil")
	}
	out := err.Error()
	if !strings.Contains(out, "RUNTIME ERROR in <main> at 1:3: division by zero") {
		t.Fatalf("unexpected header in %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("want a caret in %q", out)
	}
}

func Test_Errors_Wrap_PassesThroughPlainErrors(t *testing.T) {
	plain := errors.New("disk on fire")
	if got := WrapErrorWithSource(plain, "let x = 1;"); got != plain {
		t.Fatalf("want the original error back, got %v", got)
	}
}

// Out-of-range coordinates must not break rendering.
func Test_Errors_Snippet_ClampsCoordinates(t *testing.T) {
	e := &Error{Kind: DiagParse, Msg: "boom", Line: 99, Col: 99}
	out := WrapErrorWithSource(e, "x;").Error()
	if !strings.Contains(out, "   1 | x;") {
		t.Fatalf("want the last line in the snippet, got:\n%s", out)
	}

	e = &Error{Kind: DiagParse, Msg: "boom", Line: 0, Col: 0}
	out = WrapErrorWithSource(e, "").Error()
	if !strings.Contains(out, "^") {
		t.Fatalf("want a caret even on empty source, got:\n%s", out)
	}
}
