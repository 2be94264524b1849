package semantic

// PropagatePass folds constant subexpressions and eliminates resolved
// CombineAll-bound quantifiers over their type's inhabitants, by
// running the already-implemented Expr.Propagate over every top-level
// expression and writing the result back into the model. It runs after
// type resolution (Propagate needs concrete types to narrow interval
// arithmetic and expand quantifiers) and before FlattenPass (which only
// needs to deal with the already-simplified LTL skeleton).
type PropagatePass struct{}

func (p *PropagatePass) Name() string { return "propagate" }

func (p *PropagatePass) Run(ctx *Context) {
	m := ctx.Model
	for i := range m.Definitions {
		m.Definitions[i].Expr = m.Definitions[i].Expr.Propagate(m)
	}
	for i := range m.FunDefs {
		m.FunDefs[i].Expr = m.FunDefs[i].Expr.Propagate(m)
	}
	for i := range m.Initials {
		m.Initials[i].Expr = m.Initials[i].Expr.Propagate(m)
	}
	for i := range m.Invariants {
		m.Invariants[i].Expr = m.Invariants[i].Expr.Propagate(m)
	}
	for i := range m.Transitions {
		m.Transitions[i].Expr = m.Transitions[i].Expr.Propagate(m)
	}
	if m.Property != nil {
		propagated := m.Property.Propagate(m)
		m.Property = &propagated
	}
	if opt := m.Search.Optimization; opt != nil {
		opt.Objective = opt.Objective.Propagate(m)
		if opt.Bound != nil {
			propagated := opt.Bound.Propagate(m)
			opt.Bound = &propagated
		}
	}
}
