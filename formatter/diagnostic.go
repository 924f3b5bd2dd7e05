package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnolang/parsco"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

var kindNames = map[parsco.Kind]string{
	parsco.KindExpected:     "expected",
	parsco.KindSemantic:     "semantic",
	parsco.KindIncomplete:   "incomplete",
	parsco.KindNoMatch:      "no-match",
	parsco.KindUnregistered: "unregistered",
}

const diagnosticTemplate = `{{header .Kind .Filename .Line .Column .Width}}
{{gutter .Padding}}
{{snippet .Source .Line .Width}}
{{caret .Message .Source .Column .Padding}}
`

var tmpl = template.Must(template.New("diagnostic").Funcs(template.FuncMap{
	"header":  header,
	"gutter":  gutter,
	"snippet": snippet,
	"caret":   caret,
}).Parse(diagnosticTemplate))

type diagnosticData struct {
	Kind     string
	Filename string
	Line     int
	Column   int
	Width    int
	Padding  string
	Source   string
	Message  string
}

// FormatDiagnostic renders d against the source it was produced from:
// a header naming the failure kind and location, the offending line and
// a caret under the failing column.
func FormatDiagnostic(d *parsco.Diagnostic, src string) string {
	width := len(fmt.Sprintf("%d", d.Line))
	data := diagnosticData{
		Kind:     kindName(d.Err),
		Filename: d.Filename,
		Line:     d.Line,
		Column:   d.Column,
		Width:    width,
		Padding:  strings.Repeat(" ", width+1),
		Source:   sourceLine(src, d.Line),
		Message:  d.Msg,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("error formatting diagnostic: %v", err)
	}
	buf.WriteByte('\n')
	return buf.String()
}

// FormatError renders err with FormatDiagnostic if it carries a
// *parsco.Diagnostic, and as a plain error line otherwise.
func FormatError(err error, src string) string {
	var d *parsco.Diagnostic
	if errors.As(err, &d) {
		return FormatDiagnostic(d, src)
	}
	return errorStyle.Sprint("error: ") + messageStyle.Sprintf("%v\n\n", err)
}

func kindName(err error) string {
	if k, ok := parsco.KindOf(err); ok {
		return kindNames[k]
	}
	return "parse"
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}

func header(kind, filename string, line, column, width int) string {
	return errorStyle.Sprint("error: ") + kindStyle.Sprint(kind) + "\n" +
		lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)) +
		fileStyle.Sprintf("%s:%d:%d", filename, line, column)
}

func gutter(padding string) string {
	return lineStyle.Sprintf("%s|", padding)
}

func snippet(source string, line, width int) string {
	return lineStyle.Sprintf("%*d | ", width, line) + expandTabs(source)
}

func caret(message, source string, column int, padding string) string {
	return lineStyle.Sprintf("%s| ", padding) +
		strings.Repeat(" ", calculateVisualColumn(source, column)) +
		messageStyle.Sprintf("^ %s", message)
}

func expandTabs(line string) string {
	var expanded strings.Builder
	col := 0
	for _, ch := range line {
		if ch == '\t' {
			n := tabWidth - (col % tabWidth)
			expanded.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		expanded.WriteRune(ch)
		col++
	}
	return expanded.String()
}

// calculateVisualColumn returns the display width of line before the
// 1-based byte column.
func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
