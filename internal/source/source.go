// Package source holds the text of a Mint module file and maps byte offsets
// to line/column positions.
package source

import "fmt"

// Buffer is the text of one source file plus a line-break table built
// incrementally as the lexer scans it, so any offset can be mapped back to
// a (line, column) pair without rescanning from the start.
type Buffer struct {
	Name  string
	Text  []byte
	lines []int // byte offset of the start of each line; lines[0] == 0
}

// NewBuffer creates a Buffer over the given bytes.
func NewBuffer(name string, text []byte) *Buffer {
	return &Buffer{Name: name, Text: text, lines: []int{0}}
}

// NoteNewline records that a '\n' byte was just consumed at offset off.
// The lexer calls this as it scans so the table stays in sync with the
// read cursor; it is idempotent for a given offset.
func (b *Buffer) NoteNewline(off int) {
	last := b.lines[len(b.lines)-1]
	if off+1 > last {
		b.lines = append(b.lines, off+1)
	}
}

// Position converts a byte offset into a 1-based (line, column) pair.
func (b *Buffer) Position(offset int) Pos {
	lo, hi := 0, len(b.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo + 1
	col := offset - b.lines[lo] + 1
	return Pos{File: b.Name, Offset: offset, Line: line, Column: col}
}

// Line returns the raw text of a 1-based line number, without its newline.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	start := b.lines[n-1]
	end := len(b.Text)
	if n < len(b.lines) {
		end = b.lines[n] - 1
	}
	if start > end || start > len(b.Text) {
		return ""
	}
	if end > len(b.Text) {
		end = len(b.Text)
	}
	return string(b.Text[start:end])
}

// Pos is a single point in a source buffer.
type Pos struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether this position was ever set.
func (p Pos) IsValid() bool { return p.Line > 0 }

// Span is a half-open byte range [Start, End) within a single buffer.
type Span struct {
	Buf   *Buffer
	Start Pos
	End   Pos
}

func (s Span) String() string { return s.Start.String() }
