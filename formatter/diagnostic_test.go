package formatter

import (
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/parsco"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func diagnose(t *testing.T, filename, src string, p parsco.Parser[string]) *parsco.Diagnostic {
	t.Helper()
	_, err := parsco.Run(filename, src, p)
	require.Error(t, err)
	var d *parsco.Diagnostic
	require.True(t, errors.As(err, &d))
	return d
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	src := "12a"
	d := diagnose(t, "nums.txt", src, parsco.Exhaust(parsco.Many1String(parsco.Digit())))

	expected := `error: incomplete
 --> nums.txt:1:3
  |
1 | 12a
  |   ^ failed to parse all characters in input stream

`
	assert.Equal(t, expected, FormatDiagnostic(d, src))
}

func TestFormatDiagnosticMultiline(t *testing.T) {
	t.Parallel()

	src := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n\tkey x"
	p := parsco.Right(
		parsco.Many(parsco.Left(parsco.Alpha(), parsco.Char('\n'))),
		parsco.Cat(parsco.Right(parsco.Tab(), parsco.Literal("key")), parsco.Right(parsco.Space(), parsco.Literal("="))),
	)
	d := diagnose(t, "cfg", src, p)
	require.Equal(t, 11, d.Line)

	expected := `error: expected
  --> cfg:11:6
   |
11 |         key x
   |             ^ expected "="

`
	assert.Equal(t, expected, FormatDiagnostic(d, src))
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error: boom\n\n", FormatError(errors.New("boom"), ""))

	d := diagnose(t, "x", "", parsco.Literal("a"))
	assert.Equal(t, FormatDiagnostic(d, ""), FormatError(d, ""))
}

func TestExpandTabs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want string
	}{
		{line: "abc", want: "abc"},
		{line: "\tx", want: "        x"},
		{line: "ab\tx", want: "ab      x"},
		{line: "\t\tx", want: "                x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, expandTabs(tt.line))
	}

	assert.Equal(t, 0, calculateVisualColumn("\tx", 1))
	assert.Equal(t, 8, calculateVisualColumn("\tx", 2))
	assert.Equal(t, 3, calculateVisualColumn("abc", 10))
}
