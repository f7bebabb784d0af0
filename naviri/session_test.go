package naviri

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession(testDocs, SessionOptions{})
}

func TestSession_Navigate(t *testing.T) {
	s := newTestSession()
	assert.True(t, s.IsNew())

	req := s.Navigate("  a ")
	require.NotNil(t, req)
	assert.Equal(t, "Array", req.Topic, "topic is trimmed and expanded")
	assert.True(t, s.Loading())
	assert.Equal(t, `Loading "Array"...`, s.Status())

	finish(s, req)

	assert.False(t, s.Loading())
	assert.Equal(t, "Array", s.Topic())
	assert.Equal(t, arrayDoc, s.Document().Text)
	assert.Equal(t, "", s.Status())
	assert.Equal(t, 0, s.Cursor())
}

func TestSession_NavigateBlankIsIgnored(t *testing.T) {
	s := newTestSession()

	assert.Nil(t, s.Navigate("   "))
	assert.True(t, s.IsNew())
	assert.Equal(t, 0, s.History().Len())
}

func TestSession_BackRestoresPosition(t *testing.T) {
	s := newTestSession()
	load(s, "Array")

	flatten := s.Document().Offset(9, 4)
	s.SetCursor(flatten)
	s.SetScrollFraction(0.25)

	topic, ok := s.WordAtCursor()
	require.True(t, ok)
	require.Equal(t, "Array#flatten", topic)

	load(s, topic)
	assert.Equal(t, "Array#flatten", s.Topic())
	assert.Equal(t, 0, s.Cursor())
	assert.True(t, s.CanGoBack())

	finish(s, s.Back())

	assert.Equal(t, "Array", s.Topic())
	assert.Equal(t, flatten, s.Cursor())
	assert.Equal(t, 0.25, s.ScrollFraction())
	assert.True(t, s.CanGoForward())
}

func TestSession_ForwardRestoresPosition(t *testing.T) {
	s := newTestSession()
	load(s, "Array")
	load(s, "String")
	s.SetCursor(5)

	finish(s, s.Back())
	finish(s, s.Forward())

	assert.Equal(t, "String", s.Topic())
	assert.Equal(t, 5, s.Cursor())
	assert.False(t, s.CanGoForward())
}

func TestSession_BackAndForwardAtBoundaries(t *testing.T) {
	s := newTestSession()
	assert.Nil(t, s.Back())
	assert.Nil(t, s.Forward())

	load(s, "Array")
	assert.Nil(t, s.Back())
	assert.Nil(t, s.Forward())
	assert.Equal(t, "Array", s.Topic())
}

func TestSession_Reload(t *testing.T) {
	s := newTestSession()
	assert.Nil(t, s.Reload())

	load(s, "Array")
	s.SetCursor(30)
	finish(s, s.Reload())

	assert.Equal(t, "Array", s.Topic())
	assert.Equal(t, 30, s.Cursor())
	assert.Equal(t, 1, s.History().Len())
}

func TestSession_SupersededRequestIsDropped(t *testing.T) {
	s := newTestSession()

	first := s.Navigate("Array")
	second := s.Navigate("String")

	_, err := first.Run()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Complete(first, arrayDoc, nil))
	assert.True(t, s.Loading())

	finish(s, second)
	assert.Equal(t, "String", s.Topic())
	assert.Contains(t, s.Document().Text, "A String object")
}

func TestSession_FailedFetchKeepsDocument(t *testing.T) {
	s := newTestSession()
	load(s, "Array")

	load(s, "Missing")

	assert.Equal(t, arrayDoc, s.Document().Text)
	assert.Equal(t, `Failed to load "Missing": topic missing`, s.Status())
	assert.False(t, s.Loading())
}

func TestSession_Cancel(t *testing.T) {
	s := newTestSession()
	req := s.Navigate("Array")

	s.Cancel()

	assert.False(t, s.Loading())
	assert.False(t, s.Complete(req, arrayDoc, nil))
}

func TestSession_WordAtMarksKeyword(t *testing.T) {
	s := newTestSession()
	load(s, "Array")

	assert.Nil(t, s.keyword)

	topic, ok := s.WordAt(s.Document().Offset(6, 3))
	require.True(t, ok)
	assert.Equal(t, "Array::new", topic)

	require.NotNil(t, s.keyword)
	kw := *s.keyword
	assert.Equal(t, StyleRange{Start: s.Document().Offset(6, 2), Length: 3, Tag: TagKeyword}, kw)
	assert.Equal(t, kw, s.Ranges()[len(s.Ranges())-1])

	_, ok = s.WordAt(s.Document().Offset(1, 0))
	assert.False(t, ok)
}

func TestSession_WordAtUsesDisplayedTopic(t *testing.T) {
	s := newTestSession()
	load(s, "Array")

	// while String loads, Array's text is still on display
	req := s.Navigate("String")
	topic, ok := s.WordAt(s.Document().Offset(9, 4))
	require.True(t, ok)
	assert.Equal(t, "Array#flatten", topic)

	finish(s, req)
}

func TestSession_CursorMovement(t *testing.T) {
	s := newTestSession()
	load(s, "Array")
	doc := s.Document()

	s.SetCursor(-5)
	assert.Equal(t, 0, s.Cursor())
	s.SetCursor(doc.Len() + 10)
	assert.Equal(t, doc.Len(), s.Cursor())

	s.SetCursor(doc.Offset(3, 10))
	s.MoveCursorLines(-1)
	line, col := s.CursorPosition()
	assert.Equal(t, 2, line)
	assert.Equal(t, 9, col, "column clamps to the shorter line")

	s.MoveCursor(1)
	line, col = s.CursorPosition()
	assert.Equal(t, 3, line)
	assert.Equal(t, 0, col)
}

func TestSession_Scrolling(t *testing.T) {
	s := newTestSession()
	load(s, "Array")
	lines := s.Document().LineCount()
	require.Equal(t, 11, lines)

	s.SetTopLine(5)
	assert.Equal(t, 5, s.TopLine())

	assert.True(t, s.ScrollBy(100, 4))
	assert.Equal(t, lines-4, s.TopLine())
	assert.False(t, s.ScrollBy(1, 4))

	assert.True(t, s.ScrollBy(-100, 4))
	assert.Equal(t, 0, s.TopLine())

	s.SetScrollFraction(2)
	assert.Equal(t, 1.0, s.ScrollFraction())
	s.SetScrollFraction(-1)
	assert.Equal(t, 0.0, s.ScrollFraction())
}

func TestSession_ScrollToCursor(t *testing.T) {
	s := newTestSession()
	load(s, "Array")

	s.SetCursor(s.Document().Offset(9, 0))
	s.ScrollToCursor(4)
	assert.Equal(t, 6, s.TopLine())

	s.SetCursor(s.Document().Offset(2, 0))
	s.ScrollToCursor(4)
	assert.Equal(t, 2, s.TopLine())

	s.ScrollToCursor(0)
	assert.Equal(t, 2, s.TopLine())
}

func TestSession_HistoryMax(t *testing.T) {
	s := NewSession(testDocs, SessionOptions{HistoryMax: 2})
	load(s, "Array")
	load(s, "String")
	load(s, "Array#flatten")

	assert.Equal(t, 2, s.History().Len())
	finish(s, s.Back())
	assert.Equal(t, "String", s.Topic())
	assert.Nil(t, s.Back())
}
