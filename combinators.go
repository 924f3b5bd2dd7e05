package parsco

import "go.uber.org/zap"

// Many parses zero or more p. Each attempt goes through Try, so the first
// failing attempt is refunded and ends the repetition; Many never fails.
//
// An element parser that can succeed without consuming input makes Many
// loop forever. Grammars must not do that.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s *State) ([]T, error) {
		res, _ := many(p, s)
		return res, nil
	}
}

// many returns the collected results and the error of the attempt that
// ended the repetition.
func many[T any](p Parser[T], s *State) ([]T, error) {
	var res []T
	for {
		r, _ := Try(p)(s)
		if !r.Ok() {
			return res, r.Err()
		}
		res = append(res, r.Value())
	}
}

// Many1 parses one or more p. It fails iff the first attempt fails.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(s *State) ([]T, error) {
		res, stop := many(p, s)
		if len(res) == 0 {
			return nil, stop
		}
		return res, nil
	}
}

// ManyString is Many over a byte parser, collected into a string.
func ManyString(p Parser[byte]) Parser[string] {
	return Map(Many(p), bytesToString)
}

// Many1String is Many1 over a byte parser, collected into a string.
func Many1String(p Parser[byte]) Parser[string] {
	return Map(Many1(p), bytesToString)
}

func bytesToString(b []byte) string { return string(b) }

// ManyExhaust parses p repeatedly until the input is exhausted. When
// input remains after the repetition stops, p is driven once more at the
// stopping point so that its failure, rather than a generic end-of-input
// complaint, locates the problem.
func ManyExhaust[T any](p Parser[T]) Parser[[]T] {
	return func(s *State) ([]T, error) {
		res, _ := Many(p)(s)
		if r, _ := Try(EOF())(s); r.Ok() {
			return res, nil
		}
		if _, err := p(s); err != nil {
			return nil, err
		}
		return nil, s.failAt(s.pos, KindIncomplete, "failed to parse all characters in input stream")
	}
}

// First tries each parser in order and returns the first success. All
// failures are refunded; if none succeeds First fails without keeping
// the individual branch messages.
func First[T any](ps ...Parser[T]) Parser[T] {
	return func(s *State) (T, error) {
		for _, p := range ps {
			if r, _ := Try(p)(s); r.Ok() {
				return r.Value(), nil
			}
		}
		var zero T
		return zero, newError(KindNoMatch, s.pos, "none of the alternatives matched")
	}
}

// Or is First with two alternatives.
func Or[T any](a, b Parser[T]) Parser[T] {
	return First(a, b)
}

// Map runs p and applies f to its result.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(s *State) (B, error) {
		a, err := p(s)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Bind runs p and then the parser f builds from its result.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(s *State) (B, error) {
		a, err := p(s)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(s)
	}
}

// TryMap runs p and applies f; an error from f becomes a semantic
// failure at the cursor.
func TryMap[A, B any](p Parser[A], f func(A) (B, error)) Parser[B] {
	return func(s *State) (B, error) {
		var zero B
		a, err := p(s)
		if err != nil {
			return zero, err
		}
		b, err := f(a)
		if err != nil {
			return zero, s.Fail(err.Error())
		}
		return b, nil
	}
}

// Exhaust runs p and then requires end of input.
func Exhaust[T any](p Parser[T]) Parser[T] {
	return func(s *State) (T, error) {
		v, err := p(s)
		if err != nil {
			return v, err
		}
		if _, err := EOF()(s); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Diagnose runs main. If main succeeds but input remains, expected (the
// parser that should have matched next) is driven purely to produce a
// well-located error. Diagnose fails in that case even if expected
// succeeds.
func Diagnose[T any](main Parser[T], expected Discarder) Parser[T] {
	return func(s *State) (T, error) {
		var zero T
		v, err := main(s)
		if err != nil {
			return zero, err
		}
		if r, _ := Try(EOF())(s); r.Ok() {
			return v, nil
		}
		if err := expected.discard(s); err != nil {
			return zero, err
		}
		return zero, s.failAt(s.pos, KindIncomplete,
			"parsing partially succeeded but was not able to consume all input.")
	}
}

// OnError runs p through Try and replaces its error message with msg.
// The farthest failure recorded by p is left as is.
func OnError[T any](p Parser[T], msg string) Parser[T] {
	return func(s *State) (T, error) {
		r, _ := Try(p)(s)
		if !r.Ok() {
			var zero T
			return zero, newError(KindSemantic, s.pos, msg)
		}
		return r.Value(), nil
	}
}

// Bracketed runs l, p and r in order and returns p's result.
func Bracketed[T any](l Discarder, p Parser[T], r Discarder) Parser[T] {
	return func(s *State) (T, error) {
		var zero T
		if err := l.discard(s); err != nil {
			return zero, err
		}
		v, err := p(s)
		if err != nil {
			return zero, err
		}
		if err := r.discard(s); err != nil {
			return zero, err
		}
		return v, nil
	}
}

// BracketedBy runs p between the characters l and r.
func BracketedBy[T any](l byte, p Parser[T], r byte) Parser[T] {
	return Bracketed(Char(l), p, Char(r))
}

// Named wraps p with debug tracing on the session logger. It has no
// effect on the parse.
func Named[T any](name string, p Parser[T]) Parser[T] {
	return func(s *State) (T, error) {
		if !s.logger.Core().Enabled(zap.DebugLevel) {
			return p(s)
		}
		start := s.pos
		depth := s.depth
		s.logger.Debug("enter",
			zap.String("parser", name),
			zap.Int("depth", depth),
			zap.Int("offset", start))
		s.depth++
		v, err := p(s)
		s.depth--
		if err != nil {
			s.logger.Debug("fail",
				zap.String("parser", name),
				zap.Int("depth", depth),
				zap.Int("offset", start),
				zap.Int("farthest", s.farthest),
				zap.Error(err))
			return v, err
		}
		s.logger.Debug("match",
			zap.String("parser", name),
			zap.Int("depth", depth),
			zap.Int("offset", start),
			zap.Int("consumed", s.pos-start))
		return v, nil
	}
}
