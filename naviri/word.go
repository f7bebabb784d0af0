package naviri

import (
	"strings"
	"unicode/utf8"
)

// ExtractWord returns the word of line found at rune column col.
//
// Words end at spaces and parentheses, so "foo(bar, baz)" yields "foo", "bar"
// and "baz". Trailing punctuation and a surrounding markup pair (_x_, *x*,
// +x+) are removed. Clicks on whitespace, and on rules made of hyphens,
// yield nothing.
func ExtractWord(line string, col int) (Token, bool) {
	// sentinel spaces keep every scan below in bounds.
	padded := []rune(" " + line + "  ")
	pos := col + 1
	if col < 0 || pos >= len(padded) || padded[pos] == ' ' {
		return Token{}, false
	}

	a := pos
	for !isWordStop(padded[a-1], false) {
		a--
	}
	z := pos
	for !isWordStop(padded[z+1], true) {
		z++
	}
	word := string(padded[a : z+1])

	if n := len(word); n > 0 && strings.ContainsRune(",.:;", rune(word[n-1])) {
		word = word[:n-1]
	}

	if isMarkupWrapped(word) {
		word = word[1 : len(word)-1]
		a++
	}
	a-- // undo the leading sentinel

	trimmed := strings.TrimLeft(word, " \t")
	a += utf8.RuneCountInString(word) - utf8.RuneCountInString(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t")

	if trimmed == "" || strings.Trim(trimmed, "-") == "" {
		return Token{}, false
	}

	return Token{Text: trimmed, Start: a, Length: utf8.RuneCountInString(trimmed)}, true
}

func isWordStop(r rune, right bool) bool {
	switch r {
	case ' ', '(':
		return true
	case ')':
		return right
	}
	return false
}

// isMarkupWrapped reports whether word is wrapped in one of ri's inline
// markup delimiters, the same one on both ends.
func isMarkupWrapped(word string) bool {
	if len(word) < 2 {
		return false
	}
	first := word[0]
	if first != '_' && first != '*' && first != '+' {
		return false
	}
	return word[len(word)-1] == first
}
