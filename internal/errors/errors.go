// Package errors implements the closed set of diagnostics a model can
// raise while being loaded, resolved, and checked, formatted with source
// context and a caret pointing at the offending column. It is grounded
// on the teacher repository's CompilerError.Format (the
// caret-pointing layout) generalized from a single flat error struct
// into one struct per failure kind, matching DavidD12/tatam's closed
// Error enum (src/error/error.rs).
package errors

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/lexer"
)

// Kind tags which of the closed set of diagnostics a ModelError carries.
type Kind int

const (
	KindFile Kind = iota
	KindParse
	KindInterval
	KindDuplicate
	KindResolve
	KindType
	KindTime
	KindBounded
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindParse:
		return "parse"
	case KindInterval:
		return "interval"
	case KindDuplicate:
		return "duplicate"
	case KindResolve:
		return "resolve"
	case KindType:
		return "type"
	case KindTime:
		return "time"
	case KindBounded:
		return "bounded"
	default:
		return "error"
	}
}

// ModelError is the interface every diagnostic in the closed taxonomy
// satisfies, letting cmd/tatam format any of them uniformly.
type ModelError interface {
	error
	Kind() Kind
	Position() lexer.Position
	Format(source string, color bool) string
}

type baseError struct {
	message string
	pos     lexer.Position
	file    string
}

func (b baseError) Position() lexer.Position { return b.pos }

func (b baseError) format(kind Kind, source string, color bool) string {
	var sb strings.Builder
	if b.file != "" {
		fmt.Fprintf(&sb, "%s error in %s:%d:%d\n", kind, b.file, b.pos.Line, b.pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s error at line %d:%d\n", kind, b.pos.Line, b.pos.Column)
	}

	if line := sourceLine(source, b.pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", b.pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+b.pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(b.message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FileError reports that the named model file could not be read.
type FileError struct {
	baseError
	Filename string
}

func NewFileError(filename, message string) *FileError {
	return &FileError{baseError: baseError{message: message, file: filename}, Filename: filename}
}

func (e *FileError) Kind() Kind   { return KindFile }
func (e *FileError) Error() string { return e.Format("", false) }
func (e *FileError) Format(source string, color bool) string {
	return fmt.Sprintf("cannot read %s: %s", e.Filename, e.message)
}

// ParseError reports a lexical or grammatical failure, with the set of
// tokens the parser would have accepted at that point.
type ParseError struct {
	baseError
	Token    string
	Expected []string
}

func NewParseError(pos lexer.Position, file, message, token string, expected []string) *ParseError {
	return &ParseError{baseError: baseError{message: message, pos: pos, file: file}, Token: token, Expected: expected}
}

func (e *ParseError) Kind() Kind { return KindParse }
func (e *ParseError) Error() string { return e.Format("", false) }
func (e *ParseError) Format(source string, color bool) string {
	msg := e.message
	if e.Token != "" {
		msg = fmt.Sprintf("%s (found %q)", msg, e.Token)
	}
	if len(e.Expected) > 0 {
		msg = fmt.Sprintf("%s, expected one of: %s", msg, strings.Join(e.Expected, ", "))
	}
	b := e.baseError
	b.message = msg
	return b.format(KindParse, source, color)
}

// IntervalError reports a named interval whose declared min exceeds max.
type IntervalError struct {
	baseError
	Name string
}

func NewIntervalError(name string, pos lexer.Position, file string) *IntervalError {
	return &IntervalError{
		baseError: baseError{message: fmt.Sprintf("interval %q has min greater than max", name), pos: pos, file: file},
		Name:      name,
	}
}

func (e *IntervalError) Kind() Kind   { return KindInterval }
func (e *IntervalError) Error() string { return e.Format("", false) }
func (e *IntervalError) Format(source string, color bool) string { return e.baseError.format(KindInterval, source, color) }

// DuplicateError reports a name declared more than once in the same
// namespace; First/Second are the two declaration sites.
type DuplicateError struct {
	baseError
	Name   string
	First  lexer.Position
	Second lexer.Position
}

func NewDuplicateError(name string, first, second lexer.Position, file string) *DuplicateError {
	return &DuplicateError{
		baseError: baseError{
			message: fmt.Sprintf("%q is already declared at line %d", name, first.Line),
			pos:     second,
			file:    file,
		},
		Name:   name,
		First:  first,
		Second: second,
	}
}

func (e *DuplicateError) Kind() Kind   { return KindDuplicate }
func (e *DuplicateError) Error() string { return e.Format("", false) }
func (e *DuplicateError) Format(source string, color bool) string { return e.baseError.format(KindDuplicate, source, color) }

// ResolveError reports a name reference that does not resolve to any
// declared entity of the expected category ("type", "variable",
// "function", ...).
type ResolveError struct {
	baseError
	Category string
	Name     string
}

func NewResolveError(category, name string, pos lexer.Position, file string) *ResolveError {
	return &ResolveError{
		baseError: baseError{message: fmt.Sprintf("unresolved %s %q", category, name), pos: pos, file: file},
		Category:  category,
		Name:      name,
	}
}

func (e *ResolveError) Kind() Kind   { return KindResolve }
func (e *ResolveError) Error() string { return e.Format("", false) }
func (e *ResolveError) Format(source string, color bool) string { return e.baseError.format(KindResolve, source, color) }

// TypeError reports an expression whose inferred type does not match any
// of the types the surrounding context expects of it.
type TypeError struct {
	baseError
	ExprText string
	Got      string
	Expected []string
}

func NewTypeError(exprText, got string, expected []string, pos lexer.Position, file string) *TypeError {
	msg := fmt.Sprintf("%s has type %s, expected one of: %s", exprText, got, strings.Join(expected, ", "))
	return &TypeError{baseError: baseError{message: msg, pos: pos, file: file}, ExprText: exprText, Got: got, Expected: expected}
}

func (e *TypeError) Kind() Kind   { return KindType }
func (e *TypeError) Error() string { return e.Format("", false) }
func (e *TypeError) Format(source string, color bool) string { return e.baseError.format(KindType, source, color) }

// TimeError reports a temporal-operator misuse: Following nested inside
// another Following, an LTL operator or a function application; Following
// used in an initial, invariant, definition, function body or search
// objective/bound; or a State expression written in the model.
type TimeError struct {
	baseError
	Name     string
	ExprText string
}

func NewTimeError(message, name, exprText string, pos lexer.Position, file string) *TimeError {
	return &TimeError{baseError: baseError{message: message, pos: pos, file: file}, Name: name, ExprText: exprText}
}

func (e *TimeError) Kind() Kind   { return KindTime }
func (e *TimeError) Error() string { return e.Format("", false) }
func (e *TimeError) Format(source string, color bool) string { return e.baseError.format(KindTime, source, color) }

// BoundedError reports a quantifier or sum/prod parameter whose declared
// type has no finite inhabitant set, so it cannot be expanded.
type BoundedError struct {
	baseError
	Name string
}

func NewBoundedError(name string, pos lexer.Position, file string) *BoundedError {
	return &BoundedError{
		baseError: baseError{message: fmt.Sprintf("parameter %q is not of a bounded type", name), pos: pos, file: file},
		Name:      name,
	}
}

func (e *BoundedError) Kind() Kind   { return KindBounded }
func (e *BoundedError) Error() string { return e.Format("", false) }
func (e *BoundedError) Format(source string, color bool) string { return e.baseError.format(KindBounded, source, color) }
