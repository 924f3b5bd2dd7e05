package parsco

import "strings"

// Every combinator in this file drives its parsers strictly left to
// right and stops at the first failure. Grammars rely on the order:
// consumption, farthest tracking and semantic actions are all
// order-dependent.

// Tuple2 holds the results of Seq2.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 holds the results of Seq3.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Seq runs ps in order and returns all of their results.
func Seq[T any](ps ...Parser[T]) Parser[[]T] {
	return func(s *State) ([]T, error) {
		res := make([]T, 0, len(ps))
		for _, p := range ps {
			v, err := p(s)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
		return res, nil
	}
}

// Seq2 runs a then b and returns both results.
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Tuple2[A, B]] {
	return Invoke2(func(x A, y B) Tuple2[A, B] {
		return Tuple2[A, B]{First: x, Second: y}
	}, a, b)
}

// Seq3 runs a, b and c in order and returns all three results.
func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Tuple3[A, B, C]] {
	return Invoke3(func(x A, y B, z C) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{First: x, Second: y, Third: z}
	}, a, b, c)
}

// Skip runs ps in order and discards their results.
func Skip(ps ...Discarder) Parser[struct{}] {
	return func(s *State) (struct{}, error) {
		for _, p := range ps {
			if err := p.discard(s); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	}
}

// SeqFirst runs first and then rest, returning first's result.
func SeqFirst[T any](first Parser[T], rest ...Discarder) Parser[T] {
	return func(s *State) (T, error) {
		v, err := first(s)
		if err != nil {
			return v, err
		}
		if _, err := Skip(rest...)(s); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// SeqLast runs prefix and then last, returning last's result. Use Skip
// to build a prefix out of several parsers.
func SeqLast[T any](prefix Discarder, last Parser[T]) Parser[T] {
	return func(s *State) (T, error) {
		if err := prefix.discard(s); err != nil {
			var zero T
			return zero, err
		}
		return last(s)
	}
}

// Left runs a then b and keeps a's result.
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return SeqFirst(a, b)
}

// Right runs a then b and keeps b's result.
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return SeqLast(a, b)
}

// Cat runs string parsers in order and concatenates their results.
func Cat(ps ...Parser[string]) Parser[string] {
	return func(s *State) (string, error) {
		var b strings.Builder
		for _, p := range ps {
			v, err := p(s)
			if err != nil {
				return "", err
			}
			b.WriteString(v)
		}
		return b.String(), nil
	}
}

// Invoke2 runs a and b in order and passes their results to f. With a
// constructor function it builds a value from its parsed fields.
func Invoke2[A, B, R any](f func(A, B) R, a Parser[A], b Parser[B]) Parser[R] {
	return func(s *State) (R, error) {
		var zero R
		x, err := a(s)
		if err != nil {
			return zero, err
		}
		y, err := b(s)
		if err != nil {
			return zero, err
		}
		return f(x, y), nil
	}
}

// Invoke3 is Invoke2 for three parsers.
func Invoke3[A, B, C, R any](f func(A, B, C) R, a Parser[A], b Parser[B], c Parser[C]) Parser[R] {
	return func(s *State) (R, error) {
		var zero R
		x, err := a(s)
		if err != nil {
			return zero, err
		}
		y, err := b(s)
		if err != nil {
			return zero, err
		}
		z, err := c(s)
		if err != nil {
			return zero, err
		}
		return f(x, y, z), nil
	}
}

// Invoke4 is Invoke2 for four parsers.
func Invoke4[A, B, C, D, R any](f func(A, B, C, D) R, a Parser[A], b Parser[B], c Parser[C], d Parser[D]) Parser[R] {
	return func(s *State) (R, error) {
		var zero R
		w, err := a(s)
		if err != nil {
			return zero, err
		}
		x, err := b(s)
		if err != nil {
			return zero, err
		}
		y, err := c(s)
		if err != nil {
			return zero, err
		}
		z, err := d(s)
		if err != nil {
			return zero, err
		}
		return f(w, x, y, z), nil
	}
}
