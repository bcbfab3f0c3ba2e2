package grammar

import "regexp"

// RuleKind enumerates the pattern kinds a rule can carry. The set is closed:
// it is fixed by the grammar format.
type RuleKind int8

const (
	// DetectChar matches the single character Ch.
	DetectChar RuleKind = iota
	// Detect2Chars matches Ch immediately followed by Ch2.
	Detect2Chars
	// AnyChar matches any one character contained in Pattern.
	AnyChar
	// StringDetect matches Pattern as an exact literal.
	StringDetect
	// RegExpr matches Pattern as a regular expression anchored at the scan
	// position.
	RegExpr
	// KeywordList matches a whole word contained in the keyword list named
	// by List.
	KeywordList
	// LineContinue matches Ch (by default a backslash) only as the last
	// character of a block, marking the block as continuing on the next one.
	LineContinue
)

func (k RuleKind) String() string {
	switch k {
	case DetectChar:
		return "DetectChar"
	case Detect2Chars:
		return "Detect2Chars"
	case AnyChar:
		return "AnyChar"
	case StringDetect:
		return "StringDetect"
	case RegExpr:
		return "RegExpr"
	case KeywordList:
		return "KeywordList"
	case LineContinue:
		return "LineContinue"
	}
	return "InvalidRuleKind"
}

// A Rule is one pattern plus action within a context. Rules are tried in
// declaration order; the first match wins.
type Rule struct {
	Kind    RuleKind
	Ch, Ch2 rune   // DetectChar, Detect2Chars, LineContinue
	Pattern string // AnyChar (the set), StringDetect (the literal), RegExpr (the source)
	List    string // KeywordList

	// Attr is the format applied to the matched text; Inherit uses the
	// enclosing context's default.
	Attr Format

	// Switch is applied to the context stack after the rule matches.
	Switch Switch

	// Dynamic marks a pattern containing %1..%9 placeholders, filled in from
	// the captures of the match that activated the enclosing dynamic context.
	Dynamic bool

	// Fallthrough applies Switch without consuming the match; scanning
	// continues in the new top context.
	Fallthrough bool

	// Region markers for code folding: a fold spans from a BeginRegion match
	// to the matching EndRegion match with the same name.
	BeginRegion, EndRegion string

	// Children are evaluated against the remainder of this rule's match and
	// may extend it.
	Children []Rule

	re *regexp.Regexp
}

// Regexp returns the compiled pattern of a RegExpr rule. Static rules get
// theirs at grammar compile time, dynamic ones when their context is
// instantiated; before that, and for dynamic patterns whose substituted
// form fails to compile, it is nil.
func (r *Rule) Regexp() *regexp.Regexp { return r.re }
