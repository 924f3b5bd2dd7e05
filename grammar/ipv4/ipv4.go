// Package ipv4 parses dotted-quad IPv4 addresses with an optional
// subnet mask, e.g. 10.0.0.1 or 192.168.0.0/16.
package ipv4

import (
	"fmt"

	"github.com/gnolang/parsco"
)

// Grammar is the dispatch tag of this grammar.
type Grammar struct{}

// Address is an IPv4 address. Mask is nil when no /bits suffix was given.
type Address struct {
	N1, N2, N3, N4 int
	Mask           *int
}

func (a Address) String() string {
	s := fmt.Sprintf("%d.%d.%d.%d", a.N1, a.N2, a.N3, a.N4)
	if a.Mask != nil {
		s += fmt.Sprintf("/%d", *a.Mask)
	}
	return s
}

func init() {
	parsco.Register[Grammar, Address](AddressParser)
}

// Parse parses an address that must make up the whole input.
func Parse(filename, input string, opts ...parsco.Option) (Address, error) {
	return parsco.ParseString[Grammar, Address](filename, input, opts...)
}

// ParseList parses blank-separated addresses, typically one per line,
// up to the end of input.
func ParseList(filename, input string, opts ...parsco.Option) ([]Address, error) {
	p := parsco.Right(parsco.Blanks(), parsco.ManyExhaust(parsco.Left(AddressParser(), parsco.Blanks())))
	return parsco.Run(filename, input, p, opts...)
}

func octet() parsco.Parser[int] {
	return func(s *parsco.State) (int, error) {
		n, err := parsco.Int()(s)
		if err != nil {
			return 0, err
		}
		if n < 0 || n > 255 {
			return 0, s.Fail("ip values must be <= 255")
		}
		return n, nil
	}
}

func mask(s *parsco.State) (*int, error) {
	slash, _ := parsco.Try(parsco.Char('/'))(s)
	if !slash.Ok() {
		return nil, nil
	}
	n, err := parsco.Int()(s)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > 32 {
		return nil, s.Fail("subnet mask must be <= 32")
	}
	return &n, nil
}

// AddressParser parses an address without requiring end of input.
func AddressParser() parsco.Parser[Address] {
	dot := parsco.Char('.')
	return func(s *parsco.State) (Address, error) {
		var (
			a   Address
			err error
		)
		for i, dst := range []*int{&a.N1, &a.N2, &a.N3, &a.N4} {
			if i > 0 {
				if _, err = dot(s); err != nil {
					return Address{}, err
				}
			}
			if *dst, err = octet()(s); err != nil {
				return Address{}, err
			}
		}
		if a.Mask, err = mask(s); err != nil {
			return Address{}, err
		}
		return a, nil
	}
}
