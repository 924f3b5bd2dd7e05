package parsco

// The scanners in this file work directly on the buffer instead of being
// composed from single-character primitives. They are the hot path of
// most grammars (whitespace, names, string literals).

// scanFunc inspects the remaining input and reports the value to return,
// how many bytes were consumed and whether the scan matched. On a
// mismatch consumed is the offset, relative to the cursor, where the
// scan gave up.
type scanFunc func(in string) (val string, consumed int, ok bool)

func scanner(what string, scan scanFunc) Parser[string] {
	return func(s *State) (string, error) {
		val, n, ok := scan(s.Remaining())
		if !ok {
			return "", s.failAtf(s.pos+n, KindExpected, "expected %s", what)
		}
		s.pos += n
		return val, nil
	}
}

func isIdentifierStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isIdentifierChar(c byte) bool {
	return isAlphanum(c) || c == '_'
}

func scanBlanks(in string) (string, int, bool) {
	pos := 0
	for pos < len(in) && isBlank(in[pos]) {
		pos++
	}
	return in[:pos], pos, true
}

func scanIdentifier(in string) (string, int, bool) {
	if len(in) == 0 || !isIdentifierStart(in[0]) {
		return "", 0, false
	}
	pos := 1
	for pos < len(in) && isIdentifierChar(in[pos]) {
		pos++
	}
	return in[:pos], pos, true
}

// scanQuoted scans a string delimited by quote. A backslash escapes the
// following byte, so an escaped quote does not terminate the string. The
// returned value is the raw text between the quotes.
func scanQuoted(quote byte) scanFunc {
	return func(in string) (string, int, bool) {
		if len(in) == 0 || in[0] != quote {
			return "", 0, false
		}
		pos := 1
		for {
			if pos >= len(in) {
				// end of input before the closing quote
				return "", len(in), false
			}
			switch in[pos] {
			case '\\':
				pos += 2
			case quote:
				return in[1:pos], pos + 1, true
			default:
				pos++
			}
		}
	}
}

// Blanks consumes a possibly empty run of spaces, tabs, CRs and LFs. It
// never fails.
func Blanks() Parser[string] {
	return scanner("blanks", scanBlanks)
}

// Identifier consumes [A-Za-z_][A-Za-z0-9_]*.
func Identifier() Parser[string] {
	return scanner("identifier", scanIdentifier)
}

// DoubleQuoted consumes "..." and returns the text between the quotes.
func DoubleQuoted() Parser[string] {
	return scanner("double-quoted string", scanQuoted('"'))
}

// SingleQuoted consumes '...' and returns the text between the quotes.
func SingleQuoted() Parser[string] {
	return scanner("single-quoted string", scanQuoted('\''))
}

// QuotedString accepts either a double- or a single-quoted string.
func QuotedString() Parser[string] {
	return First(DoubleQuoted(), SingleQuoted())
}
