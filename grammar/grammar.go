// Package grammar defines the immutable context and rule tables that drive
// the highlight engine.
//
// A Grammar is a flat arena of Contexts indexed by ContextID; contexts refer
// to each other only through those indices, so a grammar with mutually
// recursive contexts has no ownership cycles. Once Compile has succeeded a
// Grammar is read-only and may be shared by any number of highlighters on
// any number of goroutines.
package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// ContextID indexes a Grammar's context arena.
type ContextID int

// NoContext is the absence of a transition target.
const NoContext ContextID = -1

// A Context is one state of the highlighting automaton: an ordered rule
// list, a default format for text no rule claims, and transitions taken at
// end of line or when no rule matches.
type Context struct {
	Name  string
	Attr  Format // format for unmatched text; Inherit means Normal
	Rules []Rule

	// LineEnd is applied when scanning reaches the end of a block without a
	// pending line continuation.
	LineEnd Switch

	// If Fallthrough is set and no rule matches, FallthroughSwitch is
	// applied and matching restarts in the new top context instead of
	// consuming a character.
	Fallthrough       bool
	FallthroughSwitch Switch
}

// A Switch describes how a rule or context transition changes the context
// stack: pop zero or more levels, then optionally push one context. The
// zero Switch stays put.
type Switch struct {
	pop     int
	target  ContextID // stored +1 so the zero value means "no push"
	dynamic bool
}

// Stay returns the no-op transition.
func Stay() Switch { return Switch{} }

// Pop returns a transition popping n levels off the context stack. Popping
// past the bottom context clamps at depth 1.
func Pop(n int) Switch { return Switch{pop: n} }

// Push returns a transition pushing c onto the context stack.
func Push(c ContextID) Switch { return Switch{target: c + 1} }

// PushDynamic is like Push, but instantiates c with the captures of the
// match that triggered the transition before pushing it.
func PushDynamic(c ContextID) Switch { return Switch{target: c + 1, dynamic: true} }

// SwitchTo returns a transition popping n levels and then pushing c.
func SwitchTo(n int, c ContextID) Switch { return Switch{pop: n, target: c + 1} }

// PopCount returns the number of levels the transition pops.
func (s Switch) PopCount() int { return s.pop }

// Target returns the context the transition pushes, if any.
func (s Switch) Target() (ContextID, bool) { return s.target - 1, s.target != 0 }

// Dynamic reports whether the pushed context is instantiated with captures.
func (s Switch) Dynamic() bool { return s.dynamic }

// IsStay reports whether the transition changes nothing.
func (s Switch) IsStay() bool { return s.pop == 0 && s.target == 0 }

// A Grammar is the complete rule table for one language.
type Grammar struct {
	Name     string
	Contexts []Context
	Default  ContextID // the base of every context stack

	// Keywords holds the named word lists referenced by keyword rules.
	Keywords map[string][]string

	sets       map[string]map[string]struct{}
	hasRegions bool
	compiled   bool
}

// Context returns the context with the given id. It returns nil for ids
// outside the arena.
func (g *Grammar) Context(id ContextID) *Context {
	if id < 0 || int(id) >= len(g.Contexts) {
		return nil
	}
	return &g.Contexts[id]
}

// KeywordSet returns the compiled lookup set for the named keyword list.
func (g *Grammar) KeywordSet(name string) map[string]struct{} { return g.sets[name] }

// HasRegions reports whether any rule in the grammar carries a region
// marker. Grammars without region markers fold by indentation instead.
func (g *Grammar) HasRegions() bool { return g.hasRegions }

// Compile validates the grammar and compiles its regular expressions.
// A non-nil error means the grammar is malformed and must not be used;
// highlighters treat that as a definition error and render plain text.
// Compile is idempotent.
func (g *Grammar) Compile() error {
	if g.compiled {
		return nil
	}
	if len(g.Contexts) == 0 {
		return fmt.Errorf("grammar %s: no contexts", g.Name)
	}
	if g.Context(g.Default) == nil {
		return fmt.Errorf("grammar %s: default context %d out of range", g.Name, g.Default)
	}
	g.sets = make(map[string]map[string]struct{}, len(g.Keywords))
	for name, words := range g.Keywords {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		g.sets[name] = set
	}
	for i := range g.Contexts {
		c := &g.Contexts[i]
		if err := g.checkSwitch(c.LineEnd); err != nil {
			return fmt.Errorf("grammar %s: context %s: line end: %w", g.Name, c.Name, err)
		}
		if err := g.checkSwitch(c.FallthroughSwitch); err != nil {
			return fmt.Errorf("grammar %s: context %s: fallthrough: %w", g.Name, c.Name, err)
		}
		if err := g.compileRules(c.Rules, c.Name); err != nil {
			return err
		}
	}
	g.compiled = true
	return nil
}

func (g *Grammar) compileRules(rules []Rule, ctxName string) error {
	for i := range rules {
		r := &rules[i]
		if err := g.compileRule(r); err != nil {
			return fmt.Errorf("grammar %s: context %s, rule %d: %w", g.Name, ctxName, i, err)
		}
		if err := g.compileRules(r.Children, ctxName); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grammar) compileRule(r *Rule) error {
	if err := g.checkSwitch(r.Switch); err != nil {
		return err
	}
	if r.BeginRegion != "" || r.EndRegion != "" {
		g.hasRegions = true
	}
	switch r.Kind {
	case DetectChar:
		if r.Ch == 0 {
			return fmt.Errorf("DetectChar without a character")
		}
	case Detect2Chars:
		if r.Ch == 0 || r.Ch2 == 0 {
			return fmt.Errorf("Detect2Chars without two characters")
		}
	case AnyChar, StringDetect:
		if r.Pattern == "" {
			return fmt.Errorf("%v without a pattern", r.Kind)
		}
	case RegExpr:
		if r.Pattern == "" {
			return fmt.Errorf("RegExpr without a pattern")
		}
		if r.Dynamic {
			// Compiled per activation, after capture substitution; reject
			// patterns that are malformed no matter what gets substituted.
			if _, err := regexp.Compile(substitute(r.Pattern, nil, true)); err != nil {
				return err
			}
			break
		}
		re, err := compileAnchored(r.Pattern)
		if err != nil {
			return err
		}
		r.re = re
	case KeywordList:
		if _, ok := g.Keywords[r.List]; !ok {
			return fmt.Errorf("unknown keyword list %q", r.List)
		}
	case LineContinue:
		if r.Ch == 0 {
			r.Ch = '\\'
		}
	default:
		return fmt.Errorf("unknown rule kind %d", r.Kind)
	}
	return nil
}

func (g *Grammar) checkSwitch(s Switch) error {
	t, ok := s.Target()
	if !ok {
		return nil
	}
	if g.Context(t) == nil {
		return fmt.Errorf("switch target %d out of range", t)
	}
	return nil
}

// compileAnchored compiles pattern so that it can only match at the scan
// position.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?:" + pattern + ")")
}

// SequenceKeySeparator separates stack elements within a canonical context
// sequence key; the capture separator splits a context name from its
// substituted capture values.
const (
	SequenceKeySeparator = "\x1e"
	captureKeySeparator  = "\x1f"
)

// IdentityKey returns the canonical identity of one stack element: the
// context name alone for static contexts, or the name plus the substituted
// capture values for dynamic activations.
func IdentityKey(name string, captures []string) string {
	if len(captures) == 0 {
		return name
	}
	return name + captureKeySeparator + strings.Join(captures, captureKeySeparator)
}
