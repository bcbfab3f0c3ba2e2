package grammar

import "strings"

// Builtin grammars for a handful of languages. They are deliberately
// coarse; the point is lexical classification, not parsing.

// ForExtension returns a compiled builtin grammar appropriate for a file
// with the given filename extension (as returned by filepath.Ext), or nil
// if there is none.
func ForExtension(ext string) *Grammar {
	switch strings.ToLower(ext) {
	case ".c", ".h", ".cpp", ".hpp", ".cc":
		return C()
	case ".go":
		return Go()
	case ".json":
		return JSON()
	case ".ini", ".conf", ".desktop":
		return INI()
	}
	return nil
}

// ByName returns a compiled builtin grammar by language name, or nil.
func ByName(name string) *Grammar {
	switch strings.ToLower(name) {
	case "c", "c++", "cpp":
		return C()
	case "go":
		return Go()
	case "json":
		return JSON()
	case "ini":
		return INI()
	}
	return nil
}

var cKeywords = []string{
	"break", "case", "continue", "default", "do", "else", "enum", "extern",
	"for", "goto", "if", "inline", "register", "return", "sizeof", "static",
	"struct", "switch", "typedef", "union", "while",
}

var cTypes = []string{
	"bool", "char", "const", "double", "float", "int", "long", "short",
	"signed", "size_t", "unsigned", "void", "volatile",
}

var alertWords = []string{"TODO", "FIXME", "NOTE", "XXX"}

// C returns a compiled grammar for C-family sources.
func C() *Grammar {
	const (
		ctxNormal ContextID = iota
		ctxLineComment
		ctxBlockComment
		ctxString
		ctxChar
		ctxPreproc
	)
	g := &Grammar{
		Name:    "c",
		Default: ctxNormal,
		Keywords: map[string][]string{
			"keywords": cKeywords,
			"types":    cTypes,
			"alerts":   alertWords,
		},
		Contexts: []Context{
			ctxNormal: {
				Name: "Normal",
				Rules: []Rule{
					{Kind: KeywordList, List: "keywords", Attr: Keyword},
					{Kind: KeywordList, List: "types", Attr: DataType},
					{Kind: Detect2Chars, Ch: '/', Ch2: '/', Attr: Comment, Switch: Push(ctxLineComment)},
					{Kind: Detect2Chars, Ch: '/', Ch2: '*', Attr: Comment, Switch: Push(ctxBlockComment), BeginRegion: "comment"},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Push(ctxString)},
					{Kind: DetectChar, Ch: '\'', Attr: Char, Switch: Push(ctxChar)},
					{Kind: DetectChar, Ch: '#', Attr: Others, Switch: Push(ctxPreproc)},
					{Kind: DetectChar, Ch: '{', BeginRegion: "brace"},
					{Kind: DetectChar, Ch: '}', EndRegion: "brace"},
					{Kind: RegExpr, Pattern: `[0-9]+\.[0-9]*(?:[eE][-+]?[0-9]+)?[fF]?`, Attr: Float},
					{Kind: RegExpr, Pattern: `0[xX][0-9a-fA-F]+[uUlL]*`, Attr: BaseN},
					{Kind: RegExpr, Pattern: `[0-9]+[uUlL]*`, Attr: Decimal},
				},
			},
			ctxLineComment: {
				Name: "LineComment",
				Attr: Comment,
				Rules: []Rule{
					{Kind: KeywordList, List: "alerts", Attr: Alert},
				},
				LineEnd: Pop(1),
			},
			ctxBlockComment: {
				Name: "BlockComment",
				Attr: Comment,
				Rules: []Rule{
					{Kind: KeywordList, List: "alerts", Attr: Alert},
					{Kind: Detect2Chars, Ch: '*', Ch2: '/', Attr: Comment, Switch: Pop(1), EndRegion: "comment"},
				},
			},
			ctxString: {
				Name: "String",
				Attr: String,
				Rules: []Rule{
					{Kind: RegExpr, Pattern: `\\.`, Attr: String},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Pop(1)},
					{Kind: LineContinue},
				},
				LineEnd: Pop(1),
			},
			ctxChar: {
				Name: "Char",
				Attr: Char,
				Rules: []Rule{
					{Kind: RegExpr, Pattern: `\\.`, Attr: Char},
					{Kind: DetectChar, Ch: '\'', Attr: Char, Switch: Pop(1)},
				},
				LineEnd: Pop(1),
			},
			ctxPreproc: {
				Name: "Preproc",
				Attr: Others,
				Rules: []Rule{
					{Kind: LineContinue},
					{Kind: Detect2Chars, Ch: '/', Ch2: '*', Attr: Comment, Switch: Push(ctxBlockComment), BeginRegion: "comment"},
					{Kind: Detect2Chars, Ch: '/', Ch2: '/', Attr: Comment, Switch: Push(ctxLineComment)},
				},
				LineEnd: Pop(1),
			},
		},
	}
	mustCompile(g)
	return g
}

var goKeywords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var",
}

var goTypes = []string{
	"any", "bool", "byte", "complex64", "complex128", "error", "float32",
	"float64", "int", "int8", "int16", "int32", "int64", "rune", "string",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
}

// Go returns a compiled grammar for Go sources. Raw string literals span
// blocks, which makes this the simplest builtin exercising persistent
// states without comments.
func Go() *Grammar {
	const (
		ctxNormal ContextID = iota
		ctxLineComment
		ctxBlockComment
		ctxString
		ctxRawString
		ctxRune
	)
	g := &Grammar{
		Name:    "go",
		Default: ctxNormal,
		Keywords: map[string][]string{
			"keywords": goKeywords,
			"types":    goTypes,
			"alerts":   alertWords,
		},
		Contexts: []Context{
			ctxNormal: {
				Name: "Normal",
				Rules: []Rule{
					{Kind: KeywordList, List: "keywords", Attr: Keyword},
					{Kind: KeywordList, List: "types", Attr: DataType},
					{Kind: Detect2Chars, Ch: '/', Ch2: '/', Attr: Comment, Switch: Push(ctxLineComment)},
					{Kind: Detect2Chars, Ch: '/', Ch2: '*', Attr: Comment, Switch: Push(ctxBlockComment), BeginRegion: "comment"},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Push(ctxString)},
					{Kind: DetectChar, Ch: '`', Attr: String, Switch: Push(ctxRawString)},
					{Kind: DetectChar, Ch: '\'', Attr: Char, Switch: Push(ctxRune)},
					{Kind: DetectChar, Ch: '{', BeginRegion: "brace"},
					{Kind: DetectChar, Ch: '}', EndRegion: "brace"},
					{Kind: RegExpr, Pattern: `[0-9]+\.[0-9]*(?:[eE][-+]?[0-9]+)?i?`, Attr: Float},
					{Kind: StringDetect, Pattern: "0x", Attr: Decimal, Children: []Rule{
						{Kind: RegExpr, Pattern: `[0-9a-fA-F_]+`, Attr: BaseN},
					}},
					{Kind: RegExpr, Pattern: `[0-9][0-9_]*`, Attr: Decimal},
				},
			},
			ctxLineComment: {
				Name: "LineComment",
				Attr: Comment,
				Rules: []Rule{
					{Kind: KeywordList, List: "alerts", Attr: Alert},
				},
				LineEnd: Pop(1),
			},
			ctxBlockComment: {
				Name: "BlockComment",
				Attr: Comment,
				Rules: []Rule{
					{Kind: KeywordList, List: "alerts", Attr: Alert},
					{Kind: Detect2Chars, Ch: '*', Ch2: '/', Attr: Comment, Switch: Pop(1), EndRegion: "comment"},
				},
			},
			ctxString: {
				Name: "String",
				Attr: String,
				Rules: []Rule{
					{Kind: RegExpr, Pattern: `\\.`, Attr: String},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Pop(1)},
				},
				LineEnd: Pop(1),
			},
			ctxRawString: {
				Name: "RawString",
				Attr: String,
				Rules: []Rule{
					{Kind: DetectChar, Ch: '`', Attr: String, Switch: Pop(1)},
				},
			},
			ctxRune: {
				Name: "Rune",
				Attr: Char,
				Rules: []Rule{
					{Kind: RegExpr, Pattern: `\\.`, Attr: Char},
					{Kind: DetectChar, Ch: '\'', Attr: Char, Switch: Pop(1)},
				},
				LineEnd: Pop(1),
			},
		},
	}
	mustCompile(g)
	return g
}

// JSON returns a compiled grammar for JSON documents.
func JSON() *Grammar {
	const (
		ctxNormal ContextID = iota
		ctxString
	)
	g := &Grammar{
		Name:    "json",
		Default: ctxNormal,
		Keywords: map[string][]string{
			"constants": {"true", "false", "null"},
		},
		Contexts: []Context{
			ctxNormal: {
				Name: "Normal",
				Rules: []Rule{
					{Kind: KeywordList, List: "constants", Attr: Keyword},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Push(ctxString)},
					{Kind: DetectChar, Ch: '{', BeginRegion: "object"},
					{Kind: DetectChar, Ch: '}', EndRegion: "object"},
					{Kind: DetectChar, Ch: '[', BeginRegion: "array"},
					{Kind: DetectChar, Ch: ']', EndRegion: "array"},
					{Kind: RegExpr, Pattern: `-?[0-9]+\.[0-9]+(?:[eE][-+]?[0-9]+)?`, Attr: Float},
					{Kind: RegExpr, Pattern: `-?[0-9]+`, Attr: Decimal},
				},
			},
			ctxString: {
				Name: "String",
				Attr: String,
				Rules: []Rule{
					{Kind: RegExpr, Pattern: `\\.`, Attr: String},
					{Kind: DetectChar, Ch: '"', Attr: String, Switch: Pop(1)},
				},
				LineEnd: Pop(1),
			},
		},
	}
	mustCompile(g)
	return g
}

// INI returns a compiled grammar for INI-style configuration files. It is
// the only builtin without region markers, so folding for it is
// indentation based.
func INI() *Grammar {
	const (
		ctxNormal ContextID = iota
		ctxSection
		ctxValue
		ctxComment
	)
	g := &Grammar{
		Name:    "ini",
		Default: ctxNormal,
		Contexts: []Context{
			ctxNormal: {
				Name: "Normal",
				Rules: []Rule{
					{Kind: AnyChar, Pattern: ";#", Attr: Comment, Switch: Push(ctxComment)},
					{Kind: DetectChar, Ch: '[', Attr: Function, Switch: Push(ctxSection)},
					{Kind: DetectChar, Ch: '=', Attr: Others, Switch: Push(ctxValue)},
				},
			},
			ctxSection: {
				Name: "Section",
				Attr: Function,
				Rules: []Rule{
					{Kind: DetectChar, Ch: ']', Attr: Function, Switch: Pop(1)},
				},
				LineEnd: Pop(1),
			},
			ctxValue: {
				Name:    "Value",
				Attr:    String,
				LineEnd: Pop(1),
				Rules: []Rule{
					{Kind: LineContinue},
					{Kind: AnyChar, Pattern: ";#", Attr: Comment, Switch: SwitchTo(1, ctxComment)},
				},
			},
			ctxComment: {
				Name: "Comment",
				Attr: Comment,
				Rules: []Rule{
					{Kind: KeywordList, List: "alerts", Attr: Alert},
				},
				LineEnd: Pop(1),
			},
		},
		Keywords: map[string][]string{"alerts": alertWords},
	}
	mustCompile(g)
	return g
}

// Builtin grammars are part of this package's test surface; a compile
// failure here is a programming error, not input data.
func mustCompile(g *Grammar) {
	if err := g.Compile(); err != nil {
		panic(err)
	}
}
