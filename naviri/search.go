package naviri

import (
	"fmt"
	"unicode"
)

// FindAll returns a search range for every case-insensitive occurrence of word in doc.
func FindAll(doc Document, word string) []StyleRange {
	needle := []rune(word)
	if len(needle) == 0 {
		return nil
	}
	var ranges []StyleRange
	for i := 0; i+len(needle) <= doc.Len(); i++ {
		if matchesAt(doc, i, needle) {
			ranges = append(ranges, StyleRange{Start: i, Length: len(needle), Tag: TagSearch})
		}
	}
	return ranges
}

func matchesAt(doc Document, offset int, needle []rune) bool {
	for j, r := range needle {
		if unicode.ToLower(doc.RuneAt(offset+j)) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}

// HighlightWord marks every occurrence of word. An empty word clears the marks.
func (s *Session) HighlightWord(word string) {
	s.searchRanges = FindAll(s.doc, word)
}

// SearchNext moves the cursor to the next occurrence of word after it,
// wrapping around to the top. The outcome is reported in the status line.
func (s *Session) SearchNext(word string) bool {
	s.HighlightWord(word)
	if len(s.searchRanges) == 0 {
		s.status = fmt.Sprintf("Cannot find %q", word)
		return false
	}

	target := s.searchRanges[0].Start
	for _, r := range s.searchRanges {
		if r.Start > s.cursor {
			target = r.Start
			break
		}
	}

	s.status = ""
	if target <= s.cursor {
		s.status = "Continuing search at top"
	}
	s.cursor = target
	return true
}

// SearchPrev moves the cursor to the previous occurrence of word before it,
// wrapping around to the bottom.
func (s *Session) SearchPrev(word string) bool {
	s.HighlightWord(word)
	if len(s.searchRanges) == 0 {
		s.status = fmt.Sprintf("Cannot find %q", word)
		return false
	}

	target := s.searchRanges[len(s.searchRanges)-1].Start
	for i := len(s.searchRanges) - 1; i >= 0; i-- {
		if s.searchRanges[i].Start < s.cursor {
			target = s.searchRanges[i].Start
			break
		}
	}

	s.status = ""
	if target >= s.cursor {
		s.status = "Continuing search at bottom"
	}
	s.cursor = target
	return true
}
