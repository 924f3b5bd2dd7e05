// Package hello validates the "hello world" grammar:
//
//   - leading and trailing blanks are allowed;
//   - the words "hello" and "world" appear in that order, with the
//     first letters either both lowercase or both uppercase and the
//     remaining letters lowercase;
//   - the words are separated by spaces, or by a comma directly after
//     the first word optionally followed by blanks;
//   - "world" may be followed immediately by an even number of '!'.
//
// Input after the trailing blanks is not examined.
package hello

import (
	"github.com/gnolang/parsco"
)

// Greeting is the value produced by a successful parse.
const Greeting = "Hello, World!"

// Parser returns the parser for the grammar.
func Parser() parsco.Parser[string] {
	sep := parsco.First(
		parsco.Right(parsco.Char(','), parsco.Blanks()),
		parsco.Many1String(parsco.Space()),
	)
	return func(s *parsco.State) (string, error) {
		_, _ = parsco.Blanks()(s)
		h, err := parsco.OneOf("hH")(s)
		if err != nil {
			return "", err
		}
		if _, err := parsco.Literal("ello")(s); err != nil {
			return "", err
		}
		if _, err := sep(s); err != nil {
			return "", err
		}
		world := "World"
		if h == 'h' {
			world = "world"
		}
		if _, err := parsco.Literal(world)(s); err != nil {
			return "", err
		}
		excls, _ := parsco.ManyString(parsco.Char('!'))(s)
		if len(excls)%2 != 0 {
			return "", s.Fail("must have even # of !s")
		}
		_, _ = parsco.Blanks()(s)
		return Greeting, nil
	}
}

// Parse validates input.
func Parse(filename, input string, opts ...parsco.Option) (string, error) {
	return parsco.Run(filename, input, Parser(), opts...)
}
