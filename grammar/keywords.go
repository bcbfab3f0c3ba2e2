package grammar

// Keywords are matched as whole words: a word is a maximal run of ASCII
// letters, digits and underscores, and anything else (or the block
// boundary) delimits it.

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// MatchKeyword returns the length of the keyword from the named list that
// starts at offset in text, or 0 if none does.
func (g *Grammar) MatchKeyword(list, text string, offset int) int {
	set := g.sets[list]
	if set == nil {
		return 0
	}
	if offset > 0 && isWordByte(text[offset-1]) {
		return 0
	}
	end := offset
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	if end == offset {
		return 0
	}
	if _, ok := set[text[offset:end]]; !ok {
		return 0
	}
	return end - offset
}
