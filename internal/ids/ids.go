// Package ids defines the stable integer handles that cross-reference
// entities owned by the model registry. Handles are never recycled: an
// expression that mentions a declared name carries one of these values,
// never a pointer into the registry, so the registry remains the single
// owner of every entity (see model.Model).
package ids

// EnumerateHandle identifies an Enumerate entity.
type EnumerateHandle int

// EnumerateElementHandle identifies one element of an Enumerate. The
// composite handle (enum, index) lets an element be resolved back to its
// parent without a back-pointer living on the element itself.
type EnumerateElementHandle struct {
	Enum  EnumerateHandle
	Index int
}

// IntervalHandle identifies a named Interval entity.
type IntervalHandle int

// DeclarationHandle identifies a constant or variable Declaration.
type DeclarationHandle int

// DefinitionHandle identifies a substitutable macro Definition.
type DefinitionHandle int

// FunDecHandle identifies a constant or variable function declaration.
type FunDecHandle int

// FunDefHandle identifies a function definition (name + body).
type FunDefHandle int

// InitialHandle identifies an Initial predicate.
type InitialHandle int

// InvariantHandle identifies an Invariant predicate.
type InvariantHandle int

// TransitionHandle identifies a Transition relation.
type TransitionHandle int

// LTLVariableHandle identifies an auto-generated LTL variable.
type LTLVariableHandle int

// Invalid is returned by lookups that found nothing. Every registry append
// starts counting at 0, so -1 never names a real entity.
const Invalid = -1
