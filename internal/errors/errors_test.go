package errors

import (
	"strings"
	"testing"

	"github.com/davidd12/tatamgo/internal/lexer"
)

func TestParseErrorFormatsCaret(t *testing.T) {
	src := "var x : boolean;\ncst y := tru;\n"
	e := NewParseError(lexer.Position{Line: 2, Column: 10}, "model.tat", "unexpected token", "tru", []string{"true", "false"})
	out := e.Format(src, false)
	if !strings.Contains(out, "cst y := tru;") {
		t.Fatalf("expected source line in output, got: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got: %s", out)
	}
	if !strings.Contains(out, `found "tru"`) {
		t.Fatalf("expected offending token in message, got: %s", out)
	}
}

func TestDuplicateErrorReferencesBothSites(t *testing.T) {
	first := lexer.Position{Line: 1, Column: 1}
	second := lexer.Position{Line: 5, Column: 1}
	e := NewDuplicateError("x", first, second, "model.tat")
	if e.Kind() != KindDuplicate {
		t.Fatalf("expected KindDuplicate, got %v", e.Kind())
	}
	if !strings.Contains(e.Error(), "line 1") {
		t.Fatalf("expected first declaration line referenced, got: %s", e.Error())
	}
}

func TestResolveErrorCategory(t *testing.T) {
	e := NewResolveError("type", "Color", lexer.Position{Line: 3, Column: 4}, "model.tat")
	if !strings.Contains(e.Error(), "unresolved type \"Color\"") {
		t.Fatalf("unexpected message: %s", e.Error())
	}
}

func TestWarningsAccumulate(t *testing.T) {
	var w Warnings
	if !w.Empty() {
		t.Fatalf("expected new Warnings to be empty")
	}
	w.Add("declaration x is unbounded and will be skipped", lexer.Position{Line: 1, Column: 1})
	if w.Empty() {
		t.Fatalf("expected Warnings to be non-empty after Add")
	}
	if len(w.Items()) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(w.Items()))
	}
}
