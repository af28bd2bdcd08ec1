// Package fallback expresses "first available value wins" rules as named,
// ordered policies so the order itself can be inspected and tested.
package fallback

import "github.com/aarondl/opt/omitnull"

// Step is one candidate source of a policy.
type Step[In, T any] struct {
	Name string
	Pick func(In) (T, bool)
}

// Policy is an ordered list of steps evaluated first-match-wins.
type Policy[In, T any] struct {
	name  string
	steps []Step[In, T]
}

// NewPolicy builds a policy; steps are tried in the given order.
func NewPolicy[In, T any](name string, steps ...Step[In, T]) Policy[In, T] {
	return Policy[In, T]{name: name, steps: steps}
}

// Name identifies the policy in logs and test output.
func (p Policy[In, T]) Name() string {
	return p.name
}

// Order lists step names in evaluation order.
func (p Policy[In, T]) Order() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Trace resolves the policy and reports which step supplied the value.
func (p Policy[In, T]) Trace(in In) (T, string, bool) {
	for _, s := range p.steps {
		if v, ok := s.Pick(in); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// Resolve returns the first available value.
func (p Policy[In, T]) Resolve(in In) (T, bool) {
	v, _, ok := p.Trace(in)
	return v, ok
}

// ResolveOr returns the first available value or def.
func (p Policy[In, T]) ResolveOr(in In, def T) T {
	if v, ok := p.Resolve(in); ok {
		return v
	}
	return def
}

// Field is available when the optional field holds a value; null and unset both skip.
func Field[In, T any](name string, get func(In) omitnull.Val[T]) Step[In, T] {
	return Step[In, T]{Name: name, Pick: func(in In) (T, bool) {
		return get(in).Get()
	}}
}

// NonZero is available when the value differs from its zero value,
// matching the "a || b" idiom for strings and counters.
func NonZero[In any, T comparable](name string, get func(In) T) Step[In, T] {
	return Step[In, T]{Name: name, Pick: func(in In) (T, bool) {
		v := get(in)
		var zero T
		return v, v != zero
	}}
}

// Pointer is available when the pointer is non-nil.
func Pointer[In, T any](name string, get func(In) *T) Step[In, T] {
	return Step[In, T]{Name: name, Pick: func(in In) (T, bool) {
		p := get(in)
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	}}
}

// Const is always available.
func Const[In, T any](name string, v T) Step[In, T] {
	return Step[In, T]{Name: name, Pick: func(In) (T, bool) {
		return v, true
	}}
}

// FirstNonZero returns the first non-zero value, or the zero value.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
