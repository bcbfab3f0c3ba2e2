package highlight

import (
	"sort"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// A Fold is a collapsible range of lines, inclusive on both ends.
type Fold struct {
	Name     string
	From, To int
}

// FoldRegions pairs begin/end region markers across blocks: a fold spans
// from the line of a begin marker to the line of the matching end marker
// with the same name. Unbalanced begins or ends simply produce no fold.
// events[i] holds the region events of line i in scan order.
func FoldRegions(events [][]RegionEvent) []Fold {
	type open struct {
		name string
		line int
	}
	var stack []open
	var folds []Fold
	for line, evs := range events {
		for _, ev := range evs {
			if ev.Begin {
				stack = append(stack, open{name: ev.Name, line: line})
				continue
			}
			if n := len(stack); n > 0 && stack[n-1].name == ev.Name {
				folds = append(folds, Fold{Name: ev.Name, From: stack[n-1].line, To: line})
				stack = stack[:n-1]
			}
		}
	}
	sort.Slice(folds, func(i, j int) bool {
		if folds[i].From != folds[j].From {
			return folds[i].From < folds[j].From
		}
		return folds[i].To > folds[j].To
	})
	return folds
}

// IndentFolds derives folds from indentation, for grammars that declare no
// region markers: a line starts a fold when the nearest following
// non-empty line is indented deeper, and the fold extends while
// indentation stays deeper. Blank lines take no part in the comparison.
func IndentFolds(lines []string, ts TabSettings) []Fold {
	indents := make([]int, len(lines))
	for i, line := range lines {
		indents[i] = indentWidth(line, ts)
	}
	var folds []Fold
	for i := range lines {
		if indents[i] < 0 {
			continue
		}
		j := nextNonEmpty(indents, i)
		if j < 0 || indents[j] <= indents[i] {
			continue
		}
		// Extend over every following line still deeper than line i,
		// stepping over blanks but not past the last deeper line.
		to := j
		for k := j + 1; k < len(lines); k++ {
			if indents[k] < 0 {
				continue
			}
			if indents[k] <= indents[i] {
				break
			}
			to = k
		}
		folds = append(folds, Fold{Name: "indent", From: i, To: to})
	}
	return folds
}

// nextNonEmpty returns the index of the nearest following line with any
// content, or -1.
func nextNonEmpty(indents []int, i int) int {
	for j := i + 1; j < len(indents); j++ {
		if indents[j] >= 0 {
			return j
		}
	}
	return -1
}

// indentWidth measures the display width of a line's leading whitespace,
// or -1 for a blank line. Tabs advance to the next tab stop; other
// whitespace counts its rendered width.
func indentWidth(line string, ts TabSettings) int {
	tw := ts.TabWidth
	if tw <= 0 {
		tw = DefaultTabWidth
	}
	w := 0
	for _, r := range line {
		switch {
		case r == '\t':
			w = (w/tw + 1) * tw
		case unicode.IsSpace(r):
			w += runewidth.RuneWidth(r)
		default:
			return w
		}
	}
	return -1
}
