package parsco

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Position is a 1-based line and column in the input.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf converts a byte offset into a line and column by counting
// line breaks before it. Offsets past the end are clamped to the end.
func PositionOf(input string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	prefix := input[:offset]
	line := strings.Count(prefix, "\n") + 1
	col := offset - (strings.LastIndexByte(prefix, '\n') + 1) + 1
	return Position{Offset: offset, Line: line, Column: col}
}

// Diagnostic is the error returned by Run. Its position is that of the
// farthest failure recorded during the parse, which is usually more
// specific than where the returned error was raised.
type Diagnostic struct {
	Filename string
	Position
	Msg string
	Err error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:error:%d:%d %s", d.Filename, d.Line, d.Column, d.Msg)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Run drives p once over input. filename is only used in the message of
// the returned *Diagnostic.
func Run[T any](filename, input string, p Parser[T], opts ...Option) (T, error) {
	s := NewState(input, opts...)
	v, err := p(s)
	if err != nil {
		pos := PositionOf(input, s.farthest)
		s.logger.Debug("parse failed",
			zap.String("file", filename),
			zap.Int("line", pos.Line),
			zap.Int("column", pos.Column),
			zap.Int("farthest", s.farthest),
			zap.Error(err))
		var zero T
		return zero, &Diagnostic{
			Filename: filename,
			Position: pos,
			Msg:      err.Error(),
			Err:      err,
		}
	}
	s.logger.Debug("parse succeeded",
		zap.String("file", filename),
		zap.Int("consumed", s.pos),
		zap.Int("size", len(input)),
		zap.Int("farthest", s.farthest))
	return v, nil
}

// ParseString parses a T of grammar G that must account for the whole
// input.
func ParseString[G, T any](filename, input string, opts ...Option) (T, error) {
	return Run(filename, input, Exhaust(For[G, T]()), opts...)
}
