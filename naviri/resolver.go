package naviri

import (
	"strings"
	"unicode"
)

// Section headers ri prints before method lists.
const (
	headerInstanceMethods = "Instance methods:"
	headerClassMethods    = "Class methods:"
	headerIncludes        = "Includes:"
)

// ResolveTopic turns a word clicked in doc into a fully qualified topic.
//
// The section the cursor is in decides the qualification: words under
// "Instance methods:" become currentTopic#word, words under "Class methods:"
// become currentTopic::word, and lower-case words under "Includes:" are
// qualified with the nearest class name before the cursor. Anything else is
// taken as a topic already.
func ResolveTopic(tok Token, doc Document, cursor int, currentTopic string) string {
	word := tok.Text

	switch SectionHeader(doc, cursor) {
	case headerInstanceMethods:
		return currentTopic + "#" + word
	case headerClassMethods:
		return currentTopic + "::" + word
	case headerIncludes:
		if startsUpper(word) {
			return word
		}
		if class, ok := PrecedingClass(doc, cursor); ok {
			return class + "#" + word
		}
	}
	return word
}

// SectionHeader returns the trimmed text of the nearest line before cursor
// that follows a line break and starts with a word character.
func SectionHeader(doc Document, cursor int) string {
	cursor = clamp(cursor, 0, doc.Len())
	for i := len(doc.lineStarts) - 1; i >= 1; i-- {
		start := doc.lineStarts[i]
		// the line break itself must come before the cursor.
		if start-1 >= cursor {
			continue
		}
		if isWordRune(doc.RuneAt(start)) {
			return strings.TrimSpace(doc.Line(i))
		}
	}
	return ""
}

// PrecedingClass returns the nearest capitalized identifier starting before cursor.
func PrecedingClass(doc Document, cursor int) (string, bool) {
	cursor = clamp(cursor, 0, doc.Len())
	for p := cursor - 1; p >= 0; p-- {
		r := doc.RuneAt(p)
		if r < 'A' || r > 'Z' {
			continue
		}
		if p > 0 && isWordRune(doc.RuneAt(p-1)) {
			continue
		}
		end := p + 1
		for end < doc.Len() && isWordRune(doc.RuneAt(end)) {
			end++
		}
		return doc.Slice(p, end), true
	}
	return "", false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
