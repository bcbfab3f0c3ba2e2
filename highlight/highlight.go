// Package highlight assigns semantic text formats to the blocks of a
// document using a context-stack grammar, resuming each block from the
// stored exit state of the one before it so that edits only re-highlight
// the region that changed.
//
// The per-block entry point is Highlighter.HighlightBlock, a pure function
// of the previous block's exit state and the block's text (plus the
// immutable grammar and the highlighter's append-only intern tables).
// Document layers the incremental bookkeeping on top of it.
package highlight

import (
	"github.com/dpinela/relight/grammar"
)

// TabSettings carries the tab width used by indentation-based folding.
type TabSettings struct {
	TabWidth int
}

// DefaultTabWidth is used when no tab settings are configured.
const DefaultTabWidth = 8

// A Highlighter drives the highlighting of one document. It owns the
// document's intern tables; the grammar it points at is immutable and may
// be shared between highlighters running on different goroutines, but a
// Highlighter itself is not safe for concurrent use.
type Highlighter struct {
	g    *grammar.Grammar
	root grammar.ContextID
	tabs TabSettings

	formats [grammar.NumFormats + 1]*Style

	sess *session
	err  error
}

// New returns a Highlighter for the given grammar. A malformed grammar
// does not fail: the error is recorded once, Err reports it, and every
// block is thereafter emitted with default formatting and Default state.
func New(g *grammar.Grammar) *Highlighter {
	h := &Highlighter{g: g, tabs: TabSettings{TabWidth: DefaultTabWidth}, sess: newSession()}
	for i := range h.formats {
		h.formats[i] = &Style{}
	}
	if g == nil {
		h.err = errNoGrammar
		return h
	}
	h.root = g.Default
	if err := g.Compile(); err != nil {
		h.err = err
	}
	return h
}

type definitionError string

func (e definitionError) Error() string { return string(e) }

const errNoGrammar = definitionError("highlight: no grammar installed")

// Err returns the definition error that broke the highlighter at grammar
// load time, if any.
func (h *Highlighter) Err() error { return h.err }

// ConfigureFormat registers the display style for one format identifier.
// The pointer previously returned by Format keeps pointing at the current
// style, so regions styled before the call pick up the change.
func (h *Highlighter) ConfigureFormat(f grammar.Format, s Style) {
	if f > grammar.Inherit && int(f) < len(h.formats) {
		*h.formats[f] = s
	}
}

// Format returns the stable style pointer for a format identifier.
func (h *Highlighter) Format(f grammar.Format) *Style {
	if f <= grammar.Inherit || int(f) >= len(h.formats) {
		return h.formats[grammar.Normal]
	}
	return h.formats[f]
}

// SetDefaultContext installs the grammar root: the context at the bottom
// of every stack. It clears the intern tables, since states produced under
// the previous root are no longer meaningful.
func (h *Highlighter) SetDefaultContext(id grammar.ContextID) {
	h.root = id
	h.sess = newSession()
	if h.g != nil && h.g.Context(id) == nil {
		h.err = definitionError("highlight: default context out of range")
	}
}

// SetTabSettings configures the tab width; it affects folding only.
func (h *Highlighter) SetTabSettings(ts TabSettings) {
	if ts.TabWidth <= 0 {
		ts.TabWidth = DefaultTabWidth
	}
	h.tabs = ts
}

// TabSettings returns the current tab settings.
func (h *Highlighter) TabSettings() TabSettings { return h.tabs }

// Grammar returns the grammar the highlighter runs.
func (h *Highlighter) Grammar() *grammar.Grammar { return h.g }

// Stats counts the recoverable degradations seen so far; they affect
// formatting quality only.
type Stats struct {
	DecodeErrors     int // stored states that no longer resolved to a known sequence
	Inconsistencies  int // continuation assumptions that had to be discarded
	PersistentStates int // distinct interned context sequences
}

func (h *Highlighter) Stats() Stats {
	return Stats{
		DecodeErrors:     h.sess.decodeErrors,
		Inconsistencies:  h.sess.inconsistencies,
		PersistentStates: h.sess.next - statePersistentStart,
	}
}

// BlockState is the exit state of one block: the packed integer stored in
// the text buffer's state slot, plus - for continuation states only - the
// carried-over live stack the next block resumes with. The zero BlockState
// is the state before the first block: Default, region depth zero.
type BlockState struct {
	bits int
	cont contextStack
}

// Bits returns the packed integer for external storage.
func (b BlockState) Bits() int { return b.bits }

// StateFromBits rebuilds a BlockState from an externally stored integer.
// Integers that were never produced by this highlighter decode as Default;
// continuation states rebuilt this way have lost their carried stack and
// are re-derived from Default when used, recorded as an inconsistency.
func StateFromBits(bits int) BlockState {
	if bits < 0 {
		bits = 0
	}
	return BlockState{bits: bits}
}

// Observable reports the observable-state field of the block state.
func (b BlockState) Observable() int { return observableState(b.bits) }

// RegionDepth reports the folding-depth field of the block state.
func (b BlockState) RegionDepth() int { return regionDepth(b.bits) }

// IsDefault reports whether the state is the default one.
func (b BlockState) IsDefault() bool { return observableState(b.bits) == stateDefault }

// Result is the outcome of highlighting one block.
type Result struct {
	// Spans cover every consumed character of the block in order; text no
	// rule claimed carries its context's default format.
	Spans []Span
	// Whitespace marks the runs of blanks, for visual-whitespace rendering.
	Whitespace []Span
	// Regions lists the folding region markers crossed, in scan order.
	Regions []RegionEvent
	// State is the block's exit state, the next block's entry state.
	State BlockState
}

// HighlightBlock processes one block: it resumes the context stack from
// prev, scans text against the grammar, and returns the formatted spans
// together with the block's new exit state. Blocks must be processed in
// document order; each block's entry state is the previous block's exit
// state. It never fails: every degradation falls back to default
// formatting.
func (h *Highlighter) HighlightBlock(prev BlockState, text string) Result {
	if h.err != nil {
		res := Result{State: BlockState{}}
		if len(text) > 0 {
			res.Spans = []Span{{Start: 0, End: len(text), Format: grammar.Normal}}
		}
		return res
	}
	stack, entered := h.entryStack(prev)
	sc := &scan{g: h.g, text: text, stack: stack}
	sc.run()

	depth := regionDepth(prev.bits)
	for _, ev := range sc.regions {
		if ev.Begin {
			depth++
		} else if depth > 0 {
			depth--
		}
	}

	var obs int
	var cont contextStack
	switch {
	case sc.willContinue:
		// Continuation is not part of the persistent taxonomy; the live
		// stack itself is carried to the next block.
		obs = stateWillContinue
		cont = sc.stack
	case len(sc.stack) == 1:
		obs = stateDefault
	case entered == stateWillContinue || entered == stateContinued:
		obs = stateContinued
		cont = sc.stack
	default:
		obs = h.sess.intern(sc.stack)
	}
	return Result{
		Spans:      sc.spans,
		Whitespace: whitespaceSpans(text),
		Regions:    sc.regions,
		State:      BlockState{bits: packState(obs, depth), cont: cont},
	}
}

// entryStack reconstructs the context stack a block starts with from the
// previous block's exit state, along with the observable state actually
// honored (a discarded continuation or an undecodable persistent state
// falls back to Default).
func (h *Highlighter) entryStack(prev BlockState) (contextStack, int) {
	obs := observableState(prev.bits)
	switch obs {
	case stateDefault:
		return h.freshStack(), stateDefault
	case stateWillContinue, stateContinued:
		if prev.cont == nil {
			// The continuation cannot be resumed; recover from Default.
			h.sess.inconsistencies++
			return h.freshStack(), stateDefault
		}
		return prev.cont.clone(), obs
	default:
		st, ok := h.sess.lookup(obs)
		if !ok {
			h.sess.decodeErrors++
			return h.freshStack(), stateDefault
		}
		return h.rebuild(st), obs
	}
}

func (h *Highlighter) freshStack() contextStack {
	return contextStack{{id: h.root, ctx: h.g.Context(h.root)}}
}

// rebuild re-materializes a stack fetched from the intern table,
// re-instantiating dynamic contexts from their recorded captures so the
// reconstructed stack matches the original exactly.
func (h *Highlighter) rebuild(st contextStack) contextStack {
	for i := range st {
		if st[i].captures != nil {
			st[i].ctx = h.g.Instantiate(st[i].id, st[i].captures)
		}
	}
	return st
}
