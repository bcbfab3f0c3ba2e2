package highlight

import (
	"math"
	"strings"

	"github.com/dpinela/relight/grammar"
)

// A block's stored state packs two fields into one non-negative integer.
// The observable state occupies the low observableBits bits:
//   - Default [0]: stack is just the default context, nothing pending.
//   - WillContinue [1]: the block ended on a line-continuation match; the
//     next block resumes with the same stack, skipping default-context
//     initialization.
//   - Continued [2]: the block follows a WillContinue block.
//   - Persistent [>= 3]: one value per distinct canonical context sequence
//     of depth > 1, assigned the first time the sequence is seen.
// The region depth used for code folding occupies the remaining bits.
const (
	stateDefault = iota
	stateWillContinue
	stateContinued
	statePersistentStart

	observableBits = 12
	observableMask = 1<<observableBits - 1

	maxRegionDepth = math.MaxInt >> observableBits
)

func packState(observable, regionDepth int) int {
	if regionDepth < 0 {
		regionDepth = 0
	} else if regionDepth > maxRegionDepth {
		regionDepth = maxRegionDepth
	}
	return regionDepth<<observableBits | observable&observableMask
}

// observableState extracts the observable field from a stored state.
// Anything unstorable (a negative slot, as for a never-highlighted block)
// reads as Default.
func observableState(bits int) int {
	if bits < 0 {
		return stateDefault
	}
	return bits & observableMask
}

// regionDepth extracts the folding depth field from a stored state.
func regionDepth(bits int) int {
	if bits < 0 {
		return 0
	}
	return bits >> observableBits
}

// A stackEntry is one level of the live context stack. For dynamic
// activations ctx points at a private specialization and captures holds the
// values substituted into it; for static contexts ctx points into the
// grammar arena and captures is nil.
type stackEntry struct {
	id       grammar.ContextID
	ctx      *grammar.Context
	captures []string
}

type contextStack []stackEntry

func (s contextStack) top() *stackEntry { return &s[len(s)-1] }

// key returns the canonical identity of the whole stack, used for
// interning. Two stacks with the same contexts and the same dynamic
// captures get the same key.
func (s contextStack) key() string {
	var b strings.Builder
	for i, e := range s {
		if i > 0 {
			b.WriteString(grammar.SequenceKeySeparator)
		}
		b.WriteString(grammar.IdentityKey(e.ctx.Name, e.captures))
	}
	return b.String()
}

func (s contextStack) clone() contextStack {
	c := make(contextStack, len(s))
	copy(c, s)
	return c
}

// A session holds the per-document interning state: the append-only
// mapping between canonical context sequences and persistent observable
// states, in both directions. It is owned by exactly one Highlighter and is
// replaced wholesale on a grammar reload; entries are never evicted while
// it lives, so stale sequences from deleted text stay behind harmlessly.
type session struct {
	persistent map[string]int         // canonical sequence -> persistent state
	stacks     map[int]contextStack   // persistent state -> reconstructible stack
	next       int

	decodeErrors    int
	inconsistencies int
}

func newSession() *session {
	return &session{
		persistent: make(map[string]int),
		stacks:     make(map[int]contextStack),
		next:       statePersistentStart,
	}
}

// intern returns the persistent state for the stack's canonical sequence,
// assigning the next free one on first sight. The stored stack keeps the
// context ids and capture values needed to rebuild dynamic activations
// exactly.
func (s *session) intern(st contextStack) int {
	k := st.key()
	if obs, ok := s.persistent[k]; ok {
		return obs
	}
	obs := s.next
	s.next++
	s.persistent[k] = obs
	s.stacks[obs] = st.clone()
	return obs
}

// lookup returns a copy of the stack interned under obs.
func (s *session) lookup(obs int) (contextStack, bool) {
	st, ok := s.stacks[obs]
	if !ok {
		return nil, false
	}
	return st.clone(), true
}
