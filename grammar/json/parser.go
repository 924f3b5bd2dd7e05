package json

import (
	"github.com/gnolang/parsco"
)

// Grammar is the dispatch tag of this grammar.
type Grammar struct{}

func init() {
	parsco.Register[Grammar, Number](number)
	parsco.Register[Grammar, String](str)
	parsco.Register[Grammar, Boolean](boolean)
	parsco.Register[Grammar, KeyVal](keyVal)
	parsco.Register[Grammar, Table](table)
	parsco.Register[Grammar, List](list)
	parsco.Register[Grammar, Doc](doc)
	parsco.RegisterVariant[Grammar, Value](
		parsco.Case[Grammar, Value, Number](),
		parsco.Case[Grammar, Value, String](),
		parsco.Case[Grammar, Value, Boolean](),
		parsco.Case[Grammar, Value, *Table](),
		parsco.Case[Grammar, Value, *List](),
	)
}

// Parse parses a whole document. Errors are *parsco.Diagnostic.
func Parse(filename, input string, opts ...parsco.Option) (*Doc, error) {
	d, err := parsco.ParseString[Grammar, Doc](filename, input, opts...)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func blank[T any](p parsco.Parser[T]) parsco.Parser[T] {
	return parsco.Right(parsco.Blanks(), p)
}

func token(c byte) parsco.Parser[byte] {
	return blank(parsco.Char(c))
}

// members parses `T , T , ...`. An empty sequence is accepted; a
// trailing comma is not.
func members[T any](l, r byte) parsco.Parser[[]T] {
	elems := parsco.Interleave(blank(parsco.For[Grammar, T]()), token(','), true)
	return parsco.Bracketed(token(l), parsco.Map(parsco.Maybe(elems), func(p *[]T) []T {
		if p == nil {
			return nil
		}
		return *p
	}), token(r))
}

// number prefers the floating point form so that "1.5" is not read as
// the integer 1 followed by garbage.
func number() parsco.Parser[Number] {
	return parsco.Named("number", parsco.First(
		parsco.Map(parsco.Double(), func(f float64) Number { return Number{Float: f, IsFloat: true} }),
		parsco.Map(parsco.Int(), func(n int) Number { return Number{Int: n} }),
	))
}

func str() parsco.Parser[String] {
	return parsco.Named("string", parsco.Map(parsco.QuotedString(), func(s string) String { return String(s) }))
}

func boolean() parsco.Parser[Boolean] {
	return parsco.Named("boolean", parsco.First(
		parsco.Right(parsco.Literal("true"), parsco.Ret(Boolean(true))),
		parsco.Right(parsco.Literal("false"), parsco.Ret(Boolean(false))),
	))
}

func keyVal() parsco.Parser[KeyVal] {
	return parsco.Named("key-value", parsco.Invoke2(
		func(k string, v Value) KeyVal { return KeyVal{Key: k, Value: v} },
		blank(parsco.QuotedString()),
		parsco.Right(token(':'), blank(parsco.For[Grammar, Value]())),
	))
}

func table() parsco.Parser[Table] {
	return parsco.Named("table", parsco.Map(members[KeyVal]('{', '}'), func(kvs []KeyVal) Table {
		return Table{Members: kvs}
	}))
}

func list() parsco.Parser[List] {
	return parsco.Named("list", parsco.Map(members[Value]('[', ']'), func(vs []Value) List {
		return List{Members: vs}
	}))
}

func doc() parsco.Parser[Doc] {
	return parsco.Left(
		parsco.Map(parsco.For[Grammar, Table](), func(t Table) Doc { return Doc{Table: t} }),
		parsco.Blanks(),
	)
}
