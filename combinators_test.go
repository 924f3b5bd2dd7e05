package parsco

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTryRestoresCursor(t *testing.T) {
	t.Parallel()

	s := NewState("abx")
	r, err := Try(Literal("abc"))(s)
	require.NoError(t, err)
	assert.False(t, r.Ok())
	assert.Equal(t, 0, s.Pos())
	// the failure inside the attempt is still recorded
	assert.Equal(t, 2, s.Farthest())

	r, err = Try(Literal("ab"))(s)
	require.NoError(t, err)
	assert.True(t, r.Ok())
	assert.Equal(t, "ab", r.Value())
	assert.Equal(t, 2, s.Pos())
}

func TestFarthestIsMonotonic(t *testing.T) {
	t.Parallel()

	s := NewState("abcdef")
	_, _ = Try(Literal("abcX"))(s)
	assert.Equal(t, 3, s.Farthest())
	_, _ = Try(Literal("aX"))(s)
	assert.Equal(t, 3, s.Farthest())
	_, _ = Try(Literal("abcdeX"))(s)
	assert.Equal(t, 5, s.Farthest())
}

func TestMaybe(t *testing.T) {
	t.Parallel()

	s := NewState("-5")
	v, err := Maybe(Char('-'))(s)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, byte('-'), *v)

	v, err = Maybe(Char('-'))(s)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, s.Pos())
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	v, err := Unwrap(Ok(3))(NewState(""))
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = Unwrap(Err[int](errors.New("boom")))(NewState(""))
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, ErrSemantic)
}

func TestMany(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		many1   bool
		want    string
		wantPos int
		wantErr bool
	}{
		{name: "many none", input: "abc", want: "", wantPos: 0},
		{name: "many empty input", input: "", want: "", wantPos: 0},
		{name: "many some", input: "123abc", want: "123", wantPos: 3},
		{name: "many all", input: "42", want: "42", wantPos: 2},
		{name: "many1 none", input: "abc", many1: true, wantErr: true},
		{name: "many1 one", input: "1a", many1: true, want: "1", wantPos: 1},
		{name: "many1 some", input: "987", many1: true, want: "987", wantPos: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ManyString(Digit())
			if tt.many1 {
				p = Many1String(Digit())
			}
			s := NewState(tt.input)
			got, err := p(s)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "expected digit", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPos, s.Pos())
		})
	}
}

func TestManyAndMany1Agree(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		start int
	}{
		{name: "no match", input: "abc"},
		{name: "empty input", input: ""},
		{name: "prefix", input: "123abc"},
		{name: "whole input", input: "4567"},
		{name: "from the middle", input: "ab12c", start: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s0 := NewState(tt.input)
			s0.pos = tt.start
			many, err := Many(Digit())(s0)
			require.NoError(t, err)

			s1 := NewState(tt.input)
			s1.pos = tt.start
			many1, err := Many1(Digit())(s1)
			if len(many) == 0 {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, many, many1)
			assert.Equal(t, s0.Pos(), s1.Pos())
		})
	}
}

func TestManyDrivesFirstAttemptOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	var p Parser[byte] = func(s *State) (byte, error) {
		calls++
		return Char('x')(s)
	}
	_, err := Many1(p)(NewState("y"))
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestManyExhaust(t *testing.T) {
	t.Parallel()

	got, err := ManyExhaust(Digit())(NewState("123"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123"), got)

	got, err = ManyExhaust(Digit())(NewState(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	s := NewState("12a")
	_, err = ManyExhaust(Digit())(s)
	require.Error(t, err)
	assert.Equal(t, "expected digit", err.Error())
	assert.Equal(t, 2, s.Farthest())
}

func TestFirstIsLeftBiased(t *testing.T) {
	t.Parallel()

	s := NewState("abc")
	got, err := First(Literal("a"), Literal("ab"), Literal("abc"))(s)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	assert.Equal(t, 1, s.Pos())

	s = NewState("abc")
	got, err = First(Literal("x"), Literal("ab"))(s)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)

	s = NewState("abc")
	_, err = First(Literal("x"), Literal("ay"))(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 0, s.Pos())
	assert.Equal(t, 1, s.Farthest())

	got, err = Or(Literal("q"), Literal("a"))(NewState("a"))
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestMapBindTryMap(t *testing.T) {
	t.Parallel()

	n, err := Map(Many1String(Digit()), func(s string) int { return len(s) })(NewState("1234"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// the first digit says how many letters follow
	counted := Bind(Digit(), func(d byte) Parser[[]byte] {
		ps := make([]Parser[byte], int(d-'0'))
		for i := range ps {
			ps[i] = Alpha()
		}
		return Seq(ps...)
	})
	s := NewState("3abcd")
	letters, err := counted(s)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), letters)
	assert.Equal(t, 4, s.Pos())

	even := TryMap(Int(), func(n int) (int, error) {
		if n%2 != 0 {
			return 0, fmt.Errorf("%d is odd", n)
		}
		return n, nil
	})
	v, err := even(NewState("10"))
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	s = NewState("7")
	_, err = even(s)
	require.Error(t, err)
	assert.Equal(t, "7 is odd", err.Error())
	assert.ErrorIs(t, err, ErrSemantic)
	assert.Equal(t, 1, s.Farthest())
}

func TestExhaust(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		wantErr  error
		farthest int
	}{
		{input: "abc"},
		{input: "abcd", wantErr: ErrIncomplete, farthest: 3},
		{input: "ab", wantErr: ErrExpected, farthest: 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			s := NewState(tt.input)
			got, err := Exhaust(Literal("abc"))(s)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.farthest, s.Farthest())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "abc", got)
		})
	}
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	// a comma-separated list followed by garbage: the expected element
	// parser locates the error inside the garbage
	elem := Left(Many1String(Digit()), Char(','))
	p := Diagnose(ManyString(Digit()), elem)

	v, err := p(NewState("123"))
	require.NoError(t, err)
	assert.Equal(t, "123", v)

	s := NewState("12x")
	_, err = p(s)
	require.Error(t, err)
	assert.Equal(t, "expected digit", err.Error())
	assert.Equal(t, 2, s.Farthest())

	// expected matches but input is still left over
	s = NewState("1,")
	_, err = Diagnose(Ret(0), elem)(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, "parsing partially succeeded but was not able to consume all input.", err.Error())
}

func TestOnError(t *testing.T) {
	t.Parallel()

	s := NewState("abx")
	_, err := OnError(Literal("abc"), "keyword abc missing")(s)
	require.Error(t, err)
	assert.Equal(t, "keyword abc missing", err.Error())
	assert.Equal(t, 0, s.Pos())
	assert.Equal(t, 2, s.Farthest())

	v, err := OnError(Literal("ab"), "unused")(s)
	require.NoError(t, err)
	assert.Equal(t, "ab", v)
}

func TestBracketed(t *testing.T) {
	t.Parallel()

	v, err := BracketedBy('(', Int(), ')')(NewState("(42)"))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	s := NewState("(42")
	_, err = BracketedBy('(', Int(), ')')(s)
	require.Error(t, err)
	assert.Equal(t, "expected ')'", err.Error())
	assert.Equal(t, 3, s.Farthest())

	v, err = Bracketed(Literal("<<"), Int(), Literal(">>"))(NewState("<<-7>>"))
	require.NoError(t, err)
	assert.Equal(t, -7, v)
}

func TestNamedTracing(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	s := NewState("ab", WithLogger(logger))
	_, err := Named("pair", Seq(Named("a", Char('a')), Named("c", Char('c'))))(s)
	require.Error(t, err)

	var (
		msgs   []string
		depths []int64
	)
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
		depths = append(depths, e.ContextMap()["depth"].(int64))
	}
	assert.Equal(t, []string{"enter", "enter", "match", "enter", "fail", "fail"}, msgs)
	assert.Equal(t, []int64{0, 1, 1, 1, 1, 0}, depths)
	assert.Equal(t, "pair", logs.All()[0].ContextMap()["parser"])
	assert.Equal(t, 1, logs.FilterMessage("fail").FilterField(zap.String("parser", "c")).Len())
	assert.Equal(t, 0, s.depth)
}

func TestNamedWithoutDebugIsTransparent(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	s := NewState("a", WithLogger(zap.New(core)))
	v, err := Named("a", Char('a'))(s)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), v)
	assert.Zero(t, logs.Len())
}
