package naviri

import (
	"regexp"
	"unicode/utf8"
)

var (
	// a styled run: opening SGR, content without ESC, closing reset.
	ansiRunPattern = regexp.MustCompile(`\x1b\[([\d;]+)m([^\x1b]*)\x1b\[0?m`)
	// any single SGR sequence; used for the leftovers the run pattern cannot pair.
	ansiSGRPattern = regexp.MustCompile(`\x1b\[[\d;]*m`)
)

// ansiTags maps the SGR parameters emitted by ri's ansi formatter to tags.
var ansiTags = map[string]Tag{
	"1":    TagBold,
	"33":   TagItalic,
	"36":   TagCode,
	"4;32": TagHeader2,
	"32":   TagHeader3,
}

// Decode converts ri's ANSI output into plain text plus style ranges.
//
// Styled runs are replaced one at a time, leftmost first, so a run that only
// becomes pairable once an inner run has been unwrapped is still decoded.
// Sequences left over afterwards (usually from nesting) stay in the text and
// get a hidden range so they are not displayed.
func Decode(raw string) Document {
	text := raw
	var ranges []StyleRange

	for {
		loc := ansiRunPattern.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		params := text[loc[2]:loc[3]]
		content := text[loc[4]:loc[5]]
		start := utf8.RuneCountInString(text[:loc[0]])
		openLen := utf8.RuneCountInString(text[loc[0]:loc[4]])
		closeLen := utf8.RuneCountInString(text[loc[5]:loc[1]])
		length := utf8.RuneCountInString(content)

		text = text[:loc[0]] + content + text[loc[1]:]
		shiftRanges(ranges, start+openLen, start+openLen+length, openLen, closeLen)

		tag, known := ansiTags[params]
		if !known || length == 0 {
			continue
		}
		ranges = append(ranges, StyleRange{Start: start, Length: length, Tag: tag})
	}

	for _, loc := range ansiSGRPattern.FindAllStringIndex(text, -1) {
		ranges = append(ranges, StyleRange{
			Start:  utf8.RuneCountInString(text[:loc[0]]),
			Length: utf8.RuneCountInString(text[loc[0]:loc[1]]),
			Tag:    TagHidden,
		})
	}

	return NewDocument(text, ranges)
}

// shiftRanges moves ranges recorded before an enclosing run was unwrapped:
// content that sat in [contentStart, contentEnd) lost the opening sequence,
// and whatever followed lost the closing one too.
func shiftRanges(ranges []StyleRange, contentStart, contentEnd, openLen, closeLen int) {
	for i := range ranges {
		switch {
		case ranges[i].Start >= contentEnd:
			ranges[i].Start -= openLen + closeLen
		case ranges[i].Start >= contentStart:
			ranges[i].Start -= openLen
		}
	}
}

// Document is decoded text ready for display.
type Document struct {
	Text   string
	Ranges []StyleRange

	runes      []rune
	lineStarts []int
}

// NewDocument indexes text for offset/line conversions.
func NewDocument(text string, ranges []StyleRange) Document {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Document{Text: text, Ranges: ranges, runes: runes, lineStarts: starts}
}

// Len returns the document length in runes.
func (d Document) Len() int { return len(d.runes) }

// LineCount returns the number of lines. An empty document has one empty line.
func (d Document) LineCount() int {
	if len(d.lineStarts) == 0 {
		return 1
	}
	return len(d.lineStarts)
}

// Line returns line i without its trailing newline.
func (d Document) Line(i int) string {
	if i < 0 || i >= len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[i]
	end := len(d.runes)
	if i+1 < len(d.lineStarts) {
		end = d.lineStarts[i+1] - 1
	}
	return string(d.runes[start:end])
}

// LineLen returns the rune length of line i.
func (d Document) LineLen(i int) int {
	return utf8.RuneCountInString(d.Line(i))
}

// Position converts a rune offset to a line and column, clamping to the document.
func (d Document) Position(offset int) (line, col int) {
	if len(d.lineStarts) == 0 {
		return 0, 0
	}
	offset = clamp(offset, 0, len(d.runes))
	line = len(d.lineStarts) - 1
	for i := 1; i < len(d.lineStarts); i++ {
		if d.lineStarts[i] > offset {
			line = i - 1
			break
		}
	}
	return line, offset - d.lineStarts[line]
}

// Offset converts a line and column to a rune offset. The column is clamped to the line.
func (d Document) Offset(line, col int) int {
	if len(d.lineStarts) == 0 {
		return 0
	}
	line = clamp(line, 0, len(d.lineStarts)-1)
	col = clamp(col, 0, d.LineLen(line))
	return d.lineStarts[line] + col
}

// Slice returns the runes in [start, end) as a string.
func (d Document) Slice(start, end int) string {
	start = clamp(start, 0, len(d.runes))
	end = clamp(end, start, len(d.runes))
	return string(d.runes[start:end])
}

// RuneAt returns the rune at offset, or 0 outside the document.
func (d Document) RuneAt(offset int) rune {
	if offset < 0 || offset >= len(d.runes) {
		return 0
	}
	return d.runes[offset]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
