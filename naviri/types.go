package naviri

// Tag names a visual style applied to a span of displayed text.
type Tag string

const (
	TagBold    Tag = "bold"
	TagItalic  Tag = "italic"
	TagCode    Tag = "code"
	TagHeader2 Tag = "header2"
	TagHeader3 Tag = "header3"
	TagKeyword Tag = "keyword"
	TagSearch  Tag = "search"
	TagHidden  Tag = "hidden"
)

// StyleRange tags Length runes of the plain text starting at rune offset Start.
// Ranges may overlap; the renderer applies them in order, so later ones win.
type StyleRange struct {
	Start  int
	Length int
	Tag    Tag
}

// End returns the offset just past the range.
func (r StyleRange) End() int { return r.Start + r.Length }

// Contains reports whether offset falls inside the range.
func (r StyleRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End()
}

// Token is a word picked out of a line of documentation.
// Start and Length are rune columns within that line.
type Token struct {
	Text   string
	Start  int
	Length int
}

// HistoryEntry captures enough state to restore a topic where the user left it.
type HistoryEntry struct {
	Topic          string
	CursorOffset   int
	ScrollFraction float64
}
