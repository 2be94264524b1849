package semantic

import "github.com/davidd12/tatamgo/internal/errors"

// IntervalPass checks that every named interval's bounds are sane
// (min <= max), grounded on DavidD12/tatam's Error::Interval variant.
type IntervalPass struct{}

func (p *IntervalPass) Name() string { return "interval" }

func (p *IntervalPass) Run(ctx *Context) {
	for _, iv := range ctx.Model.Intervals {
		if iv.Min > iv.Max {
			ctx.addError(errors.NewIntervalError(iv.Name, iv.Pos, ctx.File))
		}
	}
}
