package highlight

import (
	"sort"
	"strings"

	"github.com/dpinela/relight/grammar"
)

// LineSource is the interface used to fetch lines to be highlighted.
// It is implemented by *textbuf.Buffer.
type LineSource interface {
	SliceLines(i, j int) []string
}

// StateStore is optionally implemented by a LineSource carrying a stored
// per-line state slot, like *textbuf.Buffer. The document writes each
// line's exit state bits into its slot as it highlights.
type StateStore interface {
	SetState(i, state int)
}

// A StyledRegion is a region of text that should be rendered with the
// associated style. The indexes reference the lines fetched from the
// document's LineSource.
type StyledRegion struct {
	Line       int
	Start, End int // Measured in bytes
	*Style
}

// A Document incrementally highlights the lines of one text buffer. It
// caches each line's exit state and computed regions; after an edit,
// Invalidate drops the caches from the edited line down and the next
// Regions call recomputes only from there, resuming from the last valid
// exit state.
type Document struct {
	h   *Highlighter
	src LineSource

	// states contains the exit state of each processed line; the entry
	// state of the first line is implicitly the zero BlockState.
	// len(states) equals the number of lines - starting at the top - that
	// currently have highlights computed.
	states  []BlockState
	events  [][]RegionEvent
	regions []StyledRegion
}

// NewDocument returns a Document highlighting src with h. The styles in
// the returned regions point at h's configured formats; reconfiguring a
// format restyles already-computed regions automatically.
func NewDocument(h *Highlighter, src LineSource) *Document {
	return &Document{h: h, src: src}
}

// Invalidate notifies the document that the source text starting at line
// ty has changed.
func (d *Document) Invalidate(ty int) {
	if ty < len(d.states) {
		d.states = d.states[:ty]
		d.events = d.events[:ty]
	}
	d.regions = d.regions[:regionIndexForLine(d.regions, ty)]
}

// InvalidateAll discards every computed line, forcing the next pass to
// re-derive the whole document from Default. The intern tables are kept;
// they are cleared only when the grammar itself is replaced.
func (d *Document) InvalidateAll() { d.Invalidate(0) }

// Regions returns all highlighted regions belonging to lines in the
// interval [startY, endY[. It may also return additional regions past the
// end of that interval. Callers should not modify the returned slice.
func (d *Document) Regions(startY, endY int) []StyledRegion {
	d.process(endY)
	return d.regions[regionIndexForLine(d.regions, startY):]
}

// State returns the exit state of line i, or the zero state if that line
// has not been processed.
func (d *Document) State(i int) BlockState {
	if i < 0 || i >= len(d.states) {
		return BlockState{}
	}
	return d.states[i]
}

// Folds returns the folds of the first endY lines: region folds when the
// grammar declares region markers, indentation folds otherwise.
func (d *Document) Folds(endY int) []Fold {
	d.process(endY)
	if g := d.h.Grammar(); g != nil && g.HasRegions() {
		return FoldRegions(d.events)
	}
	return IndentFolds(trimLines(d.src.SliceLines(0, endY)), d.h.TabSettings())
}

func (d *Document) process(endY int) {
	if endY <= len(d.states) {
		return
	}
	startY := len(d.states)
	prev := BlockState{}
	if startY > 0 {
		prev = d.states[startY-1]
	}
	store, _ := d.src.(StateStore)
	for j, line := range trimLines(d.src.SliceLines(startY, endY)) {
		res := d.h.HighlightBlock(prev, line)
		ty := startY + j
		for _, sp := range res.Spans {
			if sp.Format == grammar.Normal {
				continue
			}
			d.regions = appendRegion(d.regions, StyledRegion{
				Line: ty, Start: sp.Start, End: sp.End, Style: d.h.Format(sp.Format),
			})
		}
		d.states = append(d.states, res.State)
		d.events = append(d.events, res.Regions)
		if store != nil {
			store.SetState(ty, res.State.Bits())
		}
		prev = res.State
	}
}

// trimLines strips the trailing line break the buffer keeps on each line;
// the engine treats a block as not including its terminator.
func trimLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSuffix(line, "\n")
	}
	return out
}

// appendRegion appends r to out, coalescing it with the last region in out
// if they're adjacent. It returns the extended slice, just like append.
func appendRegion(out []StyledRegion, r StyledRegion) []StyledRegion {
	if r.Start == r.End {
		return out
	}
	if n := len(out); n != 0 && out[n-1].Line == r.Line && out[n-1].End == r.Start && out[n-1].Style == r.Style {
		out[n-1].End = r.End
		return out
	}
	return append(out, r)
}

// regionIndexForLine returns the index of the first region in rs whose
// line >= ty, or len(rs) if no such region exists.
func regionIndexForLine(rs []StyledRegion, ty int) int {
	return sort.Search(len(rs), func(j int) bool { return rs[j].Line >= ty })
}
