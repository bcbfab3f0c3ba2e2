// Package textbuf implements the line buffer the highlighter consumes:
// sequential access to lines of text, each with an opaque integer slot for
// its stored highlight exit state.
package textbuf

import (
	"bufio"
	"io"
	"strings"
)

// Buffer stores the lines of one document. It implements the highlighter's
// LineSource interface. Lines keep their trailing "\n", except possibly
// the last.
type Buffer struct {
	lines  []string
	states []int
}

// New returns a buffer holding the given text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.setText(text)
	return b
}

// ReadFrom replaces the buffer's content with the text read from r.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var sb strings.Builder
	n, err := io.Copy(&sb, bufio.NewReader(r))
	if err != nil {
		return n, err
	}
	b.setText(sb.String())
	return n, nil
}

func (b *Buffer) setText(text string) {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	b.lines = lines
	b.states = make([]int, len(lines))
	for i := range b.states {
		b.states[i] = -1
	}
}

// SliceLines returns the lines in the interval [i, j[, clamped at the end
// of the buffer. Callers should not modify the returned slice.
func (b *Buffer) SliceLines(i, j int) []string {
	if j > len(b.lines) {
		j = len(b.lines)
	}
	if i > j {
		i = j
	}
	return b.lines[i:j]
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i.
func (b *Buffer) Line(i int) string { return b.lines[i] }

// SetLine replaces line i and invalidates its stored state and that of
// every following line. It returns i, the first line needing
// re-highlighting.
func (b *Buffer) SetLine(i int, text string) int {
	b.lines[i] = text
	b.clearStates(i)
	return i
}

// InsertLine inserts a line before line i.
func (b *Buffer) InsertLine(i int, text string) int {
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
	b.states = append(b.states, -1)
	copy(b.states[i+1:], b.states[i:])
	b.clearStates(i)
	return i
}

// DeleteLine removes line i.
func (b *Buffer) DeleteLine(i int) int {
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	b.states = append(b.states[:i], b.states[i+1:]...)
	b.clearStates(i)
	return i
}

func (b *Buffer) clearStates(from int) {
	for i := from; i < len(b.states); i++ {
		b.states[i] = -1
	}
}

// State returns the stored highlight state slot of line i; a line that
// has not been highlighted since its last change reads as -1.
func (b *Buffer) State(i int) int { return b.states[i] }

// SetState stores the highlight state slot of line i.
func (b *Buffer) SetState(i, state int) { b.states[i] = state }
