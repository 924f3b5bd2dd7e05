package parsco

import (
	"fmt"
	"reflect"
)

// Boxed parses a T and returns it on the heap. It is the static
// counterpart of the pointer fallback in For.
func Boxed[T any](p Parser[T]) Parser[*T] {
	return Map(p, func(v T) *T { return &v })
}

// Candidate produces the parser for one alternative of a variant.
type Candidate[V any] func() Parser[V]

// Case is the candidate that parses C under grammar G and converts it to
// the variant type V. C must be assignable to V (typically V is an
// interface that C implements); Case panics otherwise.
func Case[G, V, C any]() Candidate[V] {
	vt, ct := reflect.TypeFor[V](), reflect.TypeFor[C]()
	if !ct.AssignableTo(vt) {
		panic(fmt.Sprintf("parsco: variant case %s is not assignable to %s", ct, vt))
	}
	return func() Parser[V] {
		return Map(For[G, C](), func(c C) V {
			if v, ok := any(c).(V); ok {
				return v
			}
			// nil interfaces and assignable unnamed types
			var v V
			reflect.ValueOf(&v).Elem().Set(reflect.ValueOf(&c).Elem())
			return v
		})
	}
}

// Variant tries each candidate in declaration order and returns the
// first that matches. When none match it fails with KindNoMatch; the
// per-candidate errors are not kept.
func Variant[V any](cands ...Candidate[V]) Parser[V] {
	return func(s *State) (V, error) {
		ps := make([]Parser[V], len(cands))
		for i, c := range cands {
			ps[i] = c()
		}
		return First(ps...)(s)
	}
}

// RegisterVariant registers V under grammar G as the ordered union of
// cands.
func RegisterVariant[G, V any](cands ...Candidate[V]) {
	Register[G, V](func() Parser[V] {
		return Variant(cands...)
	})
}
