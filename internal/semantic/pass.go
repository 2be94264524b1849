package semantic

// Pass is one stage of the analysis pipeline: it inspects and may
// rewrite ctx.Model in place, recording any diagnostics on ctx.
type Pass interface {
	Name() string
	Run(ctx *Context)
}

// PassManager runs a fixed sequence of passes, grounded on the teacher
// repository's Pass/PassManager pattern. It stops after the first pass
// that records an error, so a later pass never runs against a model an
// earlier pass rejected; every error found within that pass is reported.
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) AddPass(p Pass) {
	pm.passes = append(pm.passes, p)
}

func (pm *PassManager) RunAll(ctx *Context) {
	for _, p := range pm.passes {
		p.Run(ctx)
		if ctx.HasErrors() {
			return
		}
	}
}

// StandardPasses returns the nine-pass pipeline a freshly parsed model
// goes through before it is ready for SMT encoding, in dependency
// order: intervals must be valid before anything references them,
// names must be unique before resolution can pick one unambiguously,
// type names must resolve before type checking can run, and so on.
func StandardPasses() []Pass {
	return []Pass{
		&IntervalPass{},
		&UniquenessPass{},
		&TypeNamePass{},
		&ResolvePass{},
		&TypeCheckPass{},
		&TimeCheckPass{},
		&BoundedParamPass{},
		&PropagatePass{},
		&FlattenPass{},
	}
}
