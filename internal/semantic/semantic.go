package semantic

import (
	"github.com/davidd12/tatamgo/internal/errors"
	"github.com/davidd12/tatamgo/internal/model"
)

// Analyze runs the standard nine-pass pipeline against m, attributing
// diagnostics to file, and returns the accumulated errors and warnings.
// m is mutated in place: types are grounded, names are resolved,
// constants are folded, and LTL subformulas are flattened into
// auxiliary variables.
func Analyze(m *model.Model, file string) ([]errors.ModelError, errors.Warnings) {
	ctx := NewContext(m, file)
	NewPassManager(StandardPasses()...).RunAll(ctx)
	return ctx.Errors, ctx.Warnings
}
