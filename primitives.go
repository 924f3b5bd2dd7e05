package parsco

import "strings"

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlpha(c byte) bool { return isLower(c) || isUpper(c) }

func isAlphanum(c byte) bool { return isDigit(c) || isAlpha(c) }

func isBlank(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// AnyChar consumes one byte. It fails only at end of input.
func AnyChar() Parser[byte] {
	return func(s *State) (byte, error) {
		if s.AtEOF() {
			return 0, s.failAt(s.pos, KindExpected, "unexpected end of input")
		}
		c := s.input[s.pos]
		s.pos++
		return c, nil
	}
}

// Char consumes exactly c.
func Char(c byte) Parser[byte] {
	return func(s *State) (byte, error) {
		if s.AtEOF() || s.input[s.pos] != c {
			return 0, s.failAtf(s.pos, KindExpected, "expected %q", c)
		}
		s.pos++
		return c, nil
	}
}

// Literal consumes exactly lit, comparing byte for byte. On a mismatch
// the failure is recorded at the first differing byte and nothing is
// consumed.
func Literal(lit string) Parser[string] {
	return func(s *State) (string, error) {
		rest := s.Remaining()
		for i := 0; i < len(lit); i++ {
			if i >= len(rest) || rest[i] != lit[i] {
				return "", s.failAtf(s.pos+i, KindExpected, "expected %q", lit)
			}
		}
		s.pos += len(lit)
		return lit, nil
	}
}

// Pred consumes one byte for which f returns true.
func Pred(f func(byte) bool) Parser[byte] {
	return predNamed("character", f)
}

func predNamed(what string, f func(byte) bool) Parser[byte] {
	return func(s *State) (byte, error) {
		if s.AtEOF() {
			return 0, s.failAtf(s.pos, KindExpected, "expected %s, got end of input", what)
		}
		c := s.input[s.pos]
		if !f(c) {
			return 0, s.failAtf(s.pos, KindExpected, "expected %s", what)
		}
		s.pos++
		return c, nil
	}
}

// Digit consumes one of [0-9].
func Digit() Parser[byte] { return predNamed("digit", isDigit) }

// Lower consumes one of [a-z].
func Lower() Parser[byte] { return predNamed("lowercase letter", isLower) }

// Upper consumes one of [A-Z].
func Upper() Parser[byte] { return predNamed("uppercase letter", isUpper) }

// Alpha consumes one ASCII letter.
func Alpha() Parser[byte] { return predNamed("letter", isAlpha) }

// Alphanum consumes one ASCII letter or digit.
func Alphanum() Parser[byte] { return predNamed("letter or digit", isAlphanum) }

// Space consumes one ' '.
func Space() Parser[byte] { return Char(' ') }

// Tab consumes one '\t'.
func Tab() Parser[byte] { return Char('\t') }

// CRLF consumes either '\r' or '\n'.
func CRLF() Parser[byte] { return OneOf("\r\n") }

// Blank consumes one space, tab, CR or LF.
func Blank() Parser[byte] { return predNamed("blank", isBlank) }

// OneOf consumes one byte contained in set.
func OneOf(set string) Parser[byte] {
	return predNamed("one of "+quoteSet(set), func(c byte) bool {
		return strings.IndexByte(set, c) >= 0
	})
}

// NotOf consumes one byte not contained in set.
func NotOf(set string) Parser[byte] {
	return predNamed("none of "+quoteSet(set), func(c byte) bool {
		return strings.IndexByte(set, c) < 0
	})
}

func quoteSet(set string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < len(set); i++ {
		switch c := set[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// EOF succeeds iff no input remains. It probes with Try(AnyChar()): if a
// character can be read the input is not exhausted and EOF fails.
func EOF() Parser[struct{}] {
	return func(s *State) (struct{}, error) {
		start := s.pos
		r, _ := Try(AnyChar())(s)
		if r.Ok() {
			return struct{}{}, s.failAt(start, KindIncomplete, "failed to parse all characters in input stream")
		}
		return struct{}{}, nil
	}
}
