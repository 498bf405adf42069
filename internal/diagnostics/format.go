package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"mint.build/mint/internal/source"
)

var (
	colorFatal   = color.New(color.FgRed, color.Bold)
	colorError   = color.New(color.FgRed)
	colorWarning = color.New(color.FgYellow)
	colorInfo    = color.New(color.FgCyan)
	colorStatus  = color.New(color.FgGreen)
	colorDebug   = color.New(color.FgWhite, color.Faint)
	colorCaret   = color.New(color.FgGreen, color.Bold)
)

func colorFor(sev Severity) *color.Color {
	switch sev {
	case FATAL:
		return colorFatal
	case ERROR:
		return colorError
	case WARNING:
		return colorWarning
	case INFO:
		return colorInfo
	case STATUS:
		return colorStatus
	default:
		return colorDebug
	}
}

// Format renders one diagnostic as `path:line:col: severity: message`
// (`path:line:col [CODE]: severity: message` when code is non-empty),
// followed by the offending source line and a caret underline, matching
// §7's message format. ANSI colour is applied via fatih/color, which
// itself detects whether the destination is a TTY and degrades to plain
// text otherwise (color.NoColor).
func Format(sev Severity, code string, buf *source.Buffer, pos source.Pos, msg string) string {
	var b strings.Builder

	header := pos.String()
	if code != "" {
		header = fmt.Sprintf("%s [%s]", header, code)
	}
	fmt.Fprintf(&b, "%s: %s: %s\n", header, colorFor(sev).Sprint(sev.String()), msg)

	if buf != nil && pos.Line > 0 {
		line := buf.Line(pos.Line)
		if line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
			b.WriteString(caretUnderline(line, pos.Column))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// caretUnderline builds a line of spaces up to column, then a caret,
// accounting for double-width runes (e.g. CJK characters) using
// golang.org/x/text/width so the caret still lines up under the offending
// character in a monospace terminal.
func caretUnderline(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if runeWidth(r) == 2 {
			b.WriteString("  ")
		} else {
			b.WriteByte(' ')
		}
		col++
	}
	return colorCaret.Sprint(b.String() + "^")
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
