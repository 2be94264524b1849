// Package semantic implements the analysis pipeline that turns a freshly
// parsed, name-unresolved model.Model into one ready for SMT encoding:
// interval validation, name-uniqueness checking, type-name resolution,
// identifier resolution, type checking, Following/State restriction
// checking, bounded-quantifier checking, constant propagation, and LTL
// flattening. It is grounded on two teacher sources: the teacher
// repository's Pass/PassManager shape (a Name()/Run() interface run in sequence
// by a manager) for the overall architecture, and DavidD12/tatam's
// src/expr/{resolve_expr,resolve_type,typing,time,flatten}.rs for each
// pass's walk-the-expression-tree semantics.
package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/model"
)

// Context carries the model under analysis plus the diagnostics
// accumulated by every pass that has run so far. A pass collects every
// error it finds; once a pass has recorded an error, PassManager runs no
// later pass.
type Context struct {
	Model    *model.Model
	File     string
	Errors   []errors.ModelError
	Warnings errors.Warnings
}

func NewContext(m *model.Model, file string) *Context {
	return &Context{Model: m, File: file}
}

func (c *Context) addError(e errors.ModelError) {
	c.Errors = append(c.Errors, e)
}

func (c *Context) HasErrors() bool {
	return len(c.Errors) > 0
}
