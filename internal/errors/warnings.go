package errors

import "github.com/davidd12/tatamgo/internal/lexer"

// Warning is a non-critical diagnostic: the model remains usable but a
// pass found something worth flagging, e.g. a variable declaration of an
// unbounded type under a path search.
type Warning struct {
	Message string
	Pos     lexer.Position
}

func (w Warning) String() string {
	return w.Message
}

// Warnings collects non-critical diagnostics produced while loading or
// checking a model, so they can be reported together instead of being
// printed inline as they are discovered.
type Warnings struct {
	items []Warning
}

func (w *Warnings) Add(message string, pos lexer.Position) {
	w.items = append(w.items, Warning{Message: message, Pos: pos})
}

func (w *Warnings) Items() []Warning {
	return w.items
}

func (w *Warnings) Empty() bool {
	return len(w.items) == 0
}
