package grammar

import (
	"regexp"
	"strings"
)

// Instantiate builds a private specialization of the context template id,
// substituting the given captures into the patterns of its dynamic rules.
// The returned context is owned solely by the caller; it is never entered
// into the arena or shared.
//
// Substituted text is always matched literally: inside a RegExpr pattern the
// captures are inserted regexp-quoted. A dynamic pattern whose substituted
// form fails to compile yields a rule that never matches; instantiation
// itself cannot fail.
func (g *Grammar) Instantiate(id ContextID, captures []string) *Context {
	base := g.Context(id)
	if base == nil {
		return nil
	}
	inst := *base
	inst.Rules = substituteRules(base.Rules, captures)
	return &inst
}

func substituteRules(rules []Rule, captures []string) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	for i := range out {
		r := &out[i]
		if len(r.Children) > 0 {
			r.Children = substituteRules(r.Children, captures)
		}
		if !r.Dynamic {
			continue
		}
		switch r.Kind {
		case DetectChar, Detect2Chars:
			s := substitute(string(r.Ch), captures, false)
			if s != "" {
				r.Ch = []rune(s)[0]
			}
		case AnyChar, StringDetect:
			r.Pattern = substitute(r.Pattern, captures, false)
		case RegExpr:
			r.Pattern = substitute(r.Pattern, captures, true)
			r.re, _ = compileAnchored(r.Pattern)
		}
	}
	return out
}

// substitute replaces %1..%9 in pattern with the corresponding captures;
// %0 and placeholders beyond the capture count become empty. %% yields a
// literal percent sign.
func substitute(pattern string, captures []string, quote bool) string {
	if !strings.ContainsRune(pattern, '%') {
		return pattern
	}
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		next := pattern[i+1]
		switch {
		case next == '%':
			b.WriteByte('%')
			i++
		case next >= '1' && next <= '9':
			if n := int(next - '1'); n < len(captures) {
				if quote {
					b.WriteString(regexp.QuoteMeta(captures[n]))
				} else {
					b.WriteString(captures[n])
				}
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
