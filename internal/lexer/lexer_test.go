package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `var x: 0..2; initial x = 0; transition x' = x + 1 or x' = x;`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{VAR, "var"},
		{IDENT, "x"},
		{COLON, ":"},
		{INT, "0"},
		{DOTDOT, ".."},
		{INT, "2"},
		{SEMI, ";"},
		{INITIAL, "initial"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INT, "0"},
		{SEMI, ";"},
		{TRANSITION, "transition"},
		{IDENT, "x"},
		{TICK, "'"},
		{ASSIGN, "="},
		{IDENT, "x"},
		{PLUS, "+"},
		{INT, "1"},
		{OR, "or"},
		{IDENT, "x"},
		{TICK, "'"},
		{ASSIGN, "="},
		{IDENT, "x"},
		{SEMI, ";"},
		{EOF, ""},
	}

	l := New(input, "test.tat")
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want.typ || tok.Literal != want.literal {
			t.Fatalf("token %d: got {%v %q}, want {%v %q}", i, tok.Type, tok.Literal, want.typ, want.literal)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	input := "// a comment\nvar x: Bool;"
	l := New(input, "test.tat")
	tok := l.NextToken()
	if tok.Type != VAR {
		t.Fatalf("expected comment to be skipped, got %v", tok.Type)
	}
}

func TestPositionTracksLines(t *testing.T) {
	l := New("var\nx", "test.tat")
	tok := l.NextToken()
	if tok.Pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Pos.Line)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Pos.Line)
	}
}
