package naviri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAll(t *testing.T) {
	doc := NewDocument("Foo bar foo\nFOO", nil)

	got := FindAll(doc, "foo")

	assert.Equal(t, []StyleRange{
		{Start: 0, Length: 3, Tag: TagSearch},
		{Start: 8, Length: 3, Tag: TagSearch},
		{Start: 12, Length: 3, Tag: TagSearch},
	}, got)
	assert.Empty(t, FindAll(doc, ""))
	assert.Empty(t, FindAll(doc, "baz"))
}

func searchSession() *Session {
	s := NewSession(mapFetcher{"Foo": "Foo bar foo\nFOO"}, SessionOptions{})
	load(s, "Foo")
	return s
}

func TestSession_SearchNextWraps(t *testing.T) {
	s := searchSession()

	assert.True(t, s.SearchNext("foo"))
	assert.Equal(t, 8, s.Cursor())
	assert.Equal(t, "", s.Status())

	s.SearchNext("foo")
	assert.Equal(t, 12, s.Cursor())

	s.SearchNext("foo")
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, "Continuing search at top", s.Status())
}

func TestSession_SearchPrevWraps(t *testing.T) {
	s := searchSession()

	assert.True(t, s.SearchPrev("foo"))
	assert.Equal(t, 12, s.Cursor())
	assert.Equal(t, "Continuing search at bottom", s.Status())

	s.SearchPrev("foo")
	assert.Equal(t, 8, s.Cursor())
	assert.Equal(t, "", s.Status())
}

func TestSession_SearchNotFound(t *testing.T) {
	s := searchSession()
	s.SetCursor(4)

	assert.False(t, s.SearchNext("zzz"))
	assert.Equal(t, `Cannot find "zzz"`, s.Status())
	assert.Equal(t, 4, s.Cursor())
}

func TestSession_HighlightWord(t *testing.T) {
	s := searchSession()

	s.HighlightWord("bar")
	assert.Equal(t, []StyleRange{{Start: 4, Length: 3, Tag: TagSearch}}, s.Ranges())

	s.HighlightWord("")
	assert.Empty(t, s.Ranges())
}
