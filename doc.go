/*
Package parsco is a parser combinator engine for in-memory text.

# Overview

A grammar is assembled from small parsers. A Parser[T] is an ordinary
function over a parse session (*State) that either yields a T, leaving the
cursor after what it consumed, or fails with an error. Grammar code is
written as straight-line Go:

	func parseAddress(s *parsco.State) (Address, error) {
		n1, err := octet()(s)
		if err != nil {
			return Address{}, err
		}
		if _, err := parsco.Char('.')(s); err != nil {
			return Address{}, err
		}
		...
	}

A failure propagates immediately; there is no implicit backtracking.

# Backtracking

Backtracking is opt-in through Try, which never fails: it returns a Result
holding either the value or the error, and on failure puts the cursor back
where it was. Many, First, OnError, Diagnose and the interleaving
combinators are all built on Try.

# Diagnostics

Every failing primitive records its offset in the session. The largest of
these, the farthest failure, is kept even when the failure happens inside
an attempt that Try later discards. Run reports a failed parse at that
offset as

	<filename>:error:<line>:<col> <message>

which points at the deepest place the input was understood up to, rather
than at the start of the outermost alternative that gave up.

# Grammars and dispatch

Grammars are identified by a tag type and attach parsers for their types
with Register. For[G, T]() resolves the parser for T in grammar G when it
is driven, so recursive productions can refer to each other freely. A
pointer type *T resolves to the parser for T with its result boxed, and
RegisterVariant declares an interface type as an ordered union of
candidate types:

	parsco.RegisterVariant[JSON, Value](
		parsco.Case[JSON, Value, Number](),
		parsco.Case[JSON, Value, Boolean](),
		parsco.Case[JSON, Value, *List](),
	)

# Hazards

Many and its relatives loop forever on an element parser that succeeds
without consuming input.
*/
package parsco
