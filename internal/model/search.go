package model

import (
	"fmt"
	"strings"

	"github.com/davidd12/tatamgo/internal/expr"
)

// PathKind distinguishes a path that stops at the initial state from one
// that carries forward under (a combination of) the four path modes.
type PathKind int

const (
	PathInitial PathKind = iota
	PathForward
)

// PathType is the search's path shape: either "initial" (only the start
// state matters) or a combination of forward modes, grounded on
// DavidD12/tatam's src/search/path_type.rs PathType::Path flag set.
type PathType struct {
	Kind       PathKind
	Infinite   bool
	Truncated  bool
	Finite     bool
	Complete   bool
}

var Truncated = PathType{Kind: PathForward, Truncated: true}
var Infinite = PathType{Kind: PathForward, Infinite: true}
var Finite = PathType{Kind: PathForward, Finite: true}
var Complete = PathType{Kind: PathForward, Complete: true}

// InitialOnlyPath is the path-type preset for a search that only checks
// the initial state, named to avoid colliding with the Initial entity
// type in model.go.
var InitialOnlyPath = PathType{Kind: PathInitial}

func (p PathType) String() string {
	if p.Kind == PathInitial {
		return "initial"
	}
	var parts []string
	if p.Infinite {
		parts = append(parts, "infinite")
	}
	if p.Truncated {
		parts = append(parts, "truncated")
	}
	if p.Finite {
		parts = append(parts, "finite")
	}
	if p.Complete {
		parts = append(parts, "complete")
	}
	return strings.Join(parts, " + ")
}

// TransitionNumber bounds the depth range a search will explore: min is
// the smallest unroll depth worth trying, max (when set) stops the depth
// loop from growing past it.
type TransitionNumber struct {
	Min int
	Max int // -1 means unbounded
}

func (t TransitionNumber) String() string {
	if t.Max < 0 {
		return fmt.Sprintf("[%d..]", t.Min)
	}
	return fmt.Sprintf("[%d..%d]", t.Min, t.Max)
}

// Optimization configures a "search ... optimize" run: minimize or
// maximize objective subject to it staying within bound, re-solving with
// a strictly improving cut after every satisfying assignment found. See
// internal/search.runOptimize.
type Optimization struct {
	Minimize  bool
	Objective expr.Expr
	Bound     *expr.Expr // nil when the model declares no "bound" clause
}

// SearchKind distinguishes a plain satisfiability search from an
// optimization search.
type SearchKind int

const (
	Solve SearchKind = iota
	Optimize
)

// Search is the model's top-level goal: which path shapes to try, over
// which depth range, and whether to stop at the first solution (Solve) or
// keep improving (Optimize). Grounded on DavidD12/tatam's
// src/search/search.rs.
type Search struct {
	Transitions  TransitionNumber
	PathType     PathType
	SearchType   SearchKind
	Optimization *Optimization
	MaxDepth     int // retained for the zero-value New() case; superseded by Transitions.Max once parsed
}
