package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/dpinela/relight/grammar"
	"github.com/dpinela/relight/textbuf"
)

// maxRuleDepth bounds child-rule recursion and zero-progress context
// transitions (fallthrough chains, end-of-line switch cascades). Exceeding
// it is treated as "no further matches", never as an error.
const maxRuleDepth = 64

// A Span is a run of text within one block rendered with a single format.
type Span struct {
	Start, End int // Measured in bytes
	Format     grammar.Format
}

// A RegionEvent records a folding region marker crossed while scanning a
// block. The folding computer pairs events up across blocks.
type RegionEvent struct {
	Begin  bool
	Name   string
	Offset int
}

// scan holds the mutable state of one block's left-to-right pass.
type scan struct {
	g     *grammar.Grammar
	text  string
	stack contextStack

	offset       int
	spans        []Span
	regions      []RegionEvent
	willContinue bool
}

func (sc *scan) run() {
	for sc.offset < len(sc.text) {
		sc.step()
	}
	if !sc.willContinue {
		sc.applyLineEnd()
	}
}

// step advances the scan past exactly one match or one unmatched character,
// applying any context transitions on the way.
func (sc *scan) step() {
	for tries := 0; tries <= maxRuleDepth; tries++ {
		top := sc.stack.top()
		rule, n, caps := sc.firstMatch(top.ctx.Rules, sc.offset, 0)
		if rule == nil {
			if top.ctx.Fallthrough && !top.ctx.FallthroughSwitch.IsStay() {
				sc.apply(top.ctx.FallthroughSwitch, nil)
				continue
			}
			// No rule claims this character; it inherits the context's
			// default format. The scan steps over a whole combining
			// sequence, so rules never fire in the middle of one.
			size := textbuf.NextCharBoundary(sc.text[sc.offset:])
			sc.emit(sc.offset, sc.offset+size, sc.attrOf(grammar.Inherit, top.ctx))
			sc.offset += size
			return
		}
		if rule.Fallthrough {
			sc.noteRegions(rule, sc.offset)
			sc.apply(rule.Switch, caps)
			continue
		}
		start := sc.offset
		end := start + n
		sc.noteRegions(rule, start)
		sc.emit(start, end, sc.attrOf(rule.Attr, top.ctx))
		if rule.Kind == grammar.LineContinue && end == len(sc.text) {
			sc.willContinue = true
		}
		// Child rules extend the match from its remainder before the
		// parent context resumes scanning.
		end = sc.runChildren(rule.Children, end, 1)
		sc.apply(rule.Switch, caps)
		sc.offset = end
		return
	}
	// A transition cycle without progress; give the rest of the block the
	// current default format and stop.
	sc.emit(sc.offset, len(sc.text), sc.attrOf(grammar.Inherit, sc.stack.top().ctx))
	sc.offset = len(sc.text)
}

// firstMatch tries rules in declaration order and returns the first that
// matches at offset, with its consumed length and regex captures.
func (sc *scan) firstMatch(rules []grammar.Rule, offset, depth int) (*grammar.Rule, int, []string) {
	if depth > maxRuleDepth {
		return nil, 0, nil
	}
	for i := range rules {
		r := &rules[i]
		n, caps, ok := sc.matchRule(r, offset)
		if ok {
			return r, n, caps
		}
	}
	return nil, 0, nil
}

func (sc *scan) matchRule(r *grammar.Rule, offset int) (int, []string, bool) {
	text := sc.text
	switch r.Kind {
	case grammar.DetectChar:
		c, size := utf8.DecodeRuneInString(text[offset:])
		if c == r.Ch {
			return size, nil, true
		}
	case grammar.Detect2Chars:
		c, size := utf8.DecodeRuneInString(text[offset:])
		if c != r.Ch {
			break
		}
		c2, size2 := utf8.DecodeRuneInString(text[offset+size:])
		if c2 == r.Ch2 {
			return size + size2, nil, true
		}
	case grammar.AnyChar:
		c, size := utf8.DecodeRuneInString(text[offset:])
		if c != utf8.RuneError && strings.ContainsRune(r.Pattern, c) {
			return size, nil, true
		}
	case grammar.StringDetect:
		if r.Pattern != "" && strings.HasPrefix(text[offset:], r.Pattern) {
			return len(r.Pattern), nil, true
		}
	case grammar.RegExpr:
		re := r.Regexp()
		if re == nil {
			break
		}
		m := re.FindStringSubmatchIndex(text[offset:])
		if m == nil || m[1] == 0 {
			// Zero-length matches would stall the scan.
			break
		}
		var caps []string
		if len(m) > 2 {
			caps = make([]string, 0, len(m)/2-1)
			for i := 2; i < len(m); i += 2 {
				if m[i] < 0 {
					caps = append(caps, "")
				} else {
					caps = append(caps, text[offset+m[i]:offset+m[i+1]])
				}
			}
		}
		return m[1], caps, true
	case grammar.KeywordList:
		if n := sc.g.MatchKeyword(r.List, text, offset); n > 0 {
			return n, nil, true
		}
	case grammar.LineContinue:
		c, size := utf8.DecodeRuneInString(text[offset:])
		if c == r.Ch && offset+size == len(text) {
			return size, nil, true
		}
	}
	return 0, nil, false
}

// runChildren evaluates child rules against the remainder of a parent
// match, returning the new end of the consumed span. Recursion past
// maxRuleDepth yields no further matches.
func (sc *scan) runChildren(children []grammar.Rule, end, depth int) int {
	if len(children) == 0 || end >= len(sc.text) || depth > maxRuleDepth {
		return end
	}
	rule, n, caps := sc.firstMatch(children, end, depth)
	if rule == nil {
		return end
	}
	sc.noteRegions(rule, end)
	sc.emit(end, end+n, sc.attrOf(rule.Attr, sc.stack.top().ctx))
	if rule.Kind == grammar.LineContinue && end+n == len(sc.text) {
		sc.willContinue = true
	}
	newEnd := sc.runChildren(rule.Children, end+n, depth+1)
	sc.apply(rule.Switch, caps)
	return newEnd
}

// apply performs one context switch: pop (clamping at the base context),
// then push, instantiating the target with captures when it is dynamic.
func (sc *scan) apply(sw grammar.Switch, captures []string) {
	for n := sw.PopCount(); n > 0 && len(sc.stack) > 1; n-- {
		sc.stack = sc.stack[:len(sc.stack)-1]
	}
	target, ok := sw.Target()
	if !ok {
		return
	}
	if sw.Dynamic() {
		inst := sc.g.Instantiate(target, captures)
		if inst == nil {
			return
		}
		if captures == nil {
			captures = []string{}
		}
		sc.stack = append(sc.stack, stackEntry{id: target, ctx: inst, captures: captures})
		return
	}
	ctx := sc.g.Context(target)
	if ctx == nil {
		return
	}
	sc.stack = append(sc.stack, stackEntry{id: target, ctx: ctx})
}

// applyLineEnd runs end-of-line transitions at the end of the block. A pop
// can expose a context with its own end-of-line behavior, so this iterates,
// bounded like every other transition chain.
func (sc *scan) applyLineEnd() {
	for i := 0; i < maxRuleDepth; i++ {
		sw := sc.stack.top().ctx.LineEnd
		if sw.IsStay() {
			return
		}
		before, top := len(sc.stack), sc.stack.top().ctx
		sc.apply(sw, nil)
		if len(sc.stack) == before && sc.stack.top().ctx == top {
			// Clamped pop or self-push; no progress is possible.
			return
		}
	}
}

func (sc *scan) attrOf(attr grammar.Format, ctx *grammar.Context) grammar.Format {
	if attr == grammar.Inherit {
		attr = ctx.Attr
	}
	if attr == grammar.Inherit {
		attr = grammar.Normal
	}
	return attr
}

func (sc *scan) noteRegions(r *grammar.Rule, offset int) {
	if r.BeginRegion != "" {
		sc.regions = append(sc.regions, RegionEvent{Begin: true, Name: r.BeginRegion, Offset: offset})
	}
	if r.EndRegion != "" {
		sc.regions = append(sc.regions, RegionEvent{Begin: false, Name: r.EndRegion, Offset: offset})
	}
}

// emit appends a span, coalescing it with the previous one when adjacent
// and identically formatted.
func (sc *scan) emit(start, end int, f grammar.Format) {
	if start >= end {
		return
	}
	if n := len(sc.spans); n > 0 && sc.spans[n-1].End == start && sc.spans[n-1].Format == f {
		sc.spans[n-1].End = end
		return
	}
	sc.spans = append(sc.spans, Span{Start: start, End: end, Format: f})
}

// whitespaceSpans reports the runs of blank characters in text; they are
// rendered with the VisualWhitespace format on top of the semantic spans.
func whitespaceSpans(text string) []Span {
	var out []Span
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' || text[i] == '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Span{Start: start, End: i, Format: grammar.VisualWhitespace})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Span{Start: start, End: len(text), Format: grammar.VisualWhitespace})
	}
	return out
}
