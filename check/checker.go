package check

import (
	"sort"

	"github.com/gnolang/parsco/grammar/hello"
	"github.com/gnolang/parsco/grammar/ipv4"
	"github.com/gnolang/parsco/grammar/json"
)

// Checker validates one source file against a grammar. Parse failures
// are returned as *parsco.Diagnostic.
type Checker interface {
	Name() string
	Check(filename string, src []byte) error
}

type checkerFunc struct {
	name string
	fn   func(filename, src string) error
}

func (c checkerFunc) Name() string { return c.name }

func (c checkerFunc) Check(filename string, src []byte) error {
	return c.fn(filename, string(src))
}

// NewChecker adapts a parse function into a Checker.
func NewChecker(name string, fn func(filename, src string) error) Checker {
	return checkerFunc{name: name, fn: fn}
}

// Catalog maps grammar names to checkers.
type Catalog map[string]Checker

// DefaultCatalog holds a checker for every built-in grammar.
func DefaultCatalog() Catalog {
	c := Catalog{}
	c.Add(NewChecker("json", func(filename, src string) error {
		_, err := json.Parse(filename, src)
		return err
	}))
	c.Add(NewChecker("ipv4", func(filename, src string) error {
		_, err := ipv4.ParseList(filename, src)
		return err
	}))
	c.Add(NewChecker("hello", func(filename, src string) error {
		_, err := hello.Parse(filename, src)
		return err
	}))
	return c
}

// Add registers ch under its name, replacing any previous checker.
func (c Catalog) Add(ch Checker) {
	c[ch.Name()] = ch
}

// Names returns the registered grammar names, sorted.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
