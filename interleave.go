package parsco

// InterleaveLast parses `p sep p sep ... p sep` and returns the p
// results. When sepRequired is false the separator after each element
// is optional, so a trailing p without a separator is accepted too.
func InterleaveLast[T any](p Parser[T], sep Discarder, sepRequired bool) Parser[[]T] {
	if sepRequired {
		return Many(SeqFirst(p, sep))
	}
	return Many(SeqFirst(p, optional(sep)))
}

// InterleaveFirst parses `sep p sep p ... sep p` and returns the p
// results. When sepRequired is false the separator before each element
// is optional.
func InterleaveFirst[T any](p Parser[T], sep Discarder, sepRequired bool) Parser[[]T] {
	if sepRequired {
		return Many(SeqLast(sep, p))
	}
	return Many(SeqLast(optional(sep), p))
}

// Interleave parses `p sep p sep ... p`, the usual shape of a delimited
// list, and returns the p results. With separators required it is
// InterleaveLast followed by one final p, so a trailing separator is an
// error and at least one element must be present.
func Interleave[T any](p Parser[T], sep Discarder, sepRequired bool) Parser[[]T] {
	return func(s *State) ([]T, error) {
		res, _ := InterleaveLast(p, sep, sepRequired)(s)
		if !sepRequired {
			return res, nil
		}
		last, err := p(s)
		if err != nil {
			return nil, err
		}
		return append(res, last), nil
	}
}

// optional turns a Discarder into a parser that never fails.
func optional(d Discarder) Parser[struct{}] {
	var p Parser[struct{}] = func(s *State) (struct{}, error) {
		return struct{}{}, d.discard(s)
	}
	return TryIgnore(p)
}
