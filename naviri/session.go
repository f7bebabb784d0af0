package naviri

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultHistorySize bounds each tab's history.
const DefaultHistorySize = 100

// Fetcher returns the raw (ANSI) documentation for a topic.
// *Cache is the production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) (string, error)
}

// Session is the UI-agnostic model behind one tab: the topic on display, its
// decoded text, the cursor and scroll position, and the tab's history.
//
// Loading a topic is split in two so the slow command never runs on the UI
// goroutine: Navigate, Back, Forward and Reload update the model at once and
// return a Request; the host runs Request.Run elsewhere and hands the result
// to Complete back on the UI goroutine. Session itself is not safe for
// concurrent use.
type Session struct {
	ctx     context.Context
	fetcher Fetcher
	history *History[HistoryEntry]

	// topic is the one most recently asked for; docTopic is the one whose
	// text is on display. They differ while a request is in flight.
	topic    string
	docTopic string
	doc      Document

	cursor int
	scroll float64

	keyword      *StyleRange
	searchRanges []StyleRange

	status  string
	pending *Request
}

// SessionOptions configures a Session.
type SessionOptions struct {
	// Context is the parent of every request's context. Defaults to context.Background().
	Context    context.Context
	HistoryMax int
}

// NewSession creates a fresh session that has not shown any topic yet.
func NewSession(fetcher Fetcher, opts SessionOptions) *Session {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	hmax := opts.HistoryMax
	if hmax <= 0 {
		hmax = DefaultHistorySize
	}
	return &Session{
		ctx:     ctx,
		fetcher: fetcher,
		history: NewHistory[HistoryEntry](hmax),
	}
}

// Request is one pending load of a topic into a Session.
type Request struct {
	Topic string

	restore *HistoryEntry
	fetcher Fetcher
	ctx     context.Context
	cancel  context.CancelFunc
}

// Run fetches the topic. It blocks and is meant to be called off the UI goroutine.
func (r *Request) Run() (string, error) {
	return r.fetcher.Fetch(r.ctx, r.Topic)
}

// Topic returns the current topic, or "" for a fresh session.
func (s *Session) Topic() string { return s.topic }

// IsNew reports whether the session has never been navigated.
func (s *Session) IsNew() bool { return s.topic == "" }

// Document returns the text on display.
func (s *Session) Document() Document { return s.doc }

// Status returns the session's status line.
func (s *Session) Status() string { return s.status }

// SetStatus replaces the status line.
func (s *Session) SetStatus(status string) { s.status = status }

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool { return s.pending != nil }

// History exposes the session's history.
func (s *Session) History() *History[HistoryEntry] { return s.history }

// CanGoBack reports whether Back would navigate.
func (s *Session) CanGoBack() bool { return !s.history.AtBeginning() }

// CanGoForward reports whether Forward would navigate.
func (s *Session) CanGoForward() bool { return !s.history.AtEnd() }

// Navigate starts loading topic, recording the current position in history first.
// It returns nil for a blank topic.
func (s *Session) Navigate(topic string) *Request {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}
	topic = FixupTopic(topic)

	s.recordDeparture()
	s.history.Add(HistoryEntry{Topic: topic})
	return s.begin(topic, nil)
}

// Back starts loading the previous topic in history. It returns nil at the beginning.
func (s *Session) Back() *Request {
	if s.history.AtBeginning() {
		return nil
	}
	s.recordDeparture()
	entry, _ := s.history.Back()
	return s.begin(entry.Topic, &entry)
}

// Forward starts loading the next topic in history. It returns nil at the end.
func (s *Session) Forward() *Request {
	if s.history.AtEnd() {
		return nil
	}
	s.recordDeparture()
	entry, _ := s.history.Forward()
	return s.begin(entry.Topic, &entry)
}

// Reload refetches the current topic, keeping the cursor and scroll position.
func (s *Session) Reload() *Request {
	if s.topic == "" {
		return nil
	}
	s.recordDeparture()
	entry, _ := s.history.Current()
	return s.begin(entry.Topic, &entry)
}

// recordDeparture saves the cursor and scroll position into the current
// history entry, so coming back restores them.
func (s *Session) recordDeparture() {
	if s.topic == "" || s.pending != nil {
		// while loading, the text on display does not belong to the current entry.
		return
	}
	s.history.Update(HistoryEntry{Topic: s.topic, CursorOffset: s.cursor, ScrollFraction: s.scroll})
}

func (s *Session) begin(topic string, restore *HistoryEntry) *Request {
	if s.pending != nil {
		slog.Debug("Superseding pending request", "topic", s.pending.Topic, "by", topic)
		s.pending.cancel()
	}

	ctx, cancel := context.WithCancel(s.ctx)
	req := &Request{Topic: topic, restore: restore, fetcher: s.fetcher, ctx: ctx, cancel: cancel}
	s.pending = req
	s.topic = topic
	s.status = fmt.Sprintf("Loading %q...", topic)
	return req
}

// Complete applies the outcome of req. It returns false, changing nothing,
// when req has been superseded by a newer request of this session.
func (s *Session) Complete(req *Request, text string, err error) bool {
	if req == nil || req != s.pending {
		return false
	}
	s.pending = nil
	req.cancel()

	if err != nil {
		s.status = fmt.Sprintf("Failed to load %q: %v", req.Topic, err)
		return true
	}

	s.doc = Decode(text)
	s.docTopic = req.Topic
	s.keyword = nil
	s.searchRanges = nil
	s.status = ""

	s.cursor, s.scroll = 0, 0
	if req.restore != nil {
		s.SetScrollFraction(req.restore.ScrollFraction)
		s.SetCursor(req.restore.CursorOffset)
	}
	return true
}

// Cancel abandons the in-flight request, if any.
func (s *Session) Cancel() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	s.pending = nil
	s.status = ""
}

// Ranges returns every style range to draw: the document's own, then search
// matches, then the keyword under the last click.
func (s *Session) Ranges() []StyleRange {
	ranges := make([]StyleRange, 0, len(s.doc.Ranges)+len(s.searchRanges)+1)
	ranges = append(ranges, s.doc.Ranges...)
	ranges = append(ranges, s.searchRanges...)
	if s.keyword != nil {
		ranges = append(ranges, *s.keyword)
	}
	return ranges
}

// WordAt resolves the word at offset into a topic and marks it as the keyword.
// ok is false when there is no word there.
func (s *Session) WordAt(offset int) (topic string, ok bool) {
	line, col := s.doc.Position(offset)
	tok, ok := ExtractWord(s.doc.Line(line), col)
	if !ok {
		return "", false
	}
	s.keyword = &StyleRange{Start: s.doc.Offset(line, tok.Start), Length: tok.Length, Tag: TagKeyword}
	return ResolveTopic(tok, s.doc, offset, s.docTopic), true
}

// WordAtCursor is WordAt for the cursor position.
func (s *Session) WordAtCursor() (string, bool) { return s.WordAt(s.cursor) }

// Cursor returns the cursor offset.
func (s *Session) Cursor() int { return s.cursor }

// SetCursor moves the cursor, clamped to the document.
func (s *Session) SetCursor(offset int) {
	s.cursor = clamp(offset, 0, s.doc.Len())
}

// CursorPosition returns the cursor's line and column.
func (s *Session) CursorPosition() (line, col int) { return s.doc.Position(s.cursor) }

// MoveCursor moves the cursor by runes.
func (s *Session) MoveCursor(delta int) { s.SetCursor(s.cursor + delta) }

// MoveCursorLines moves the cursor by lines, keeping its column where the line allows.
func (s *Session) MoveCursorLines(delta int) {
	line, col := s.doc.Position(s.cursor)
	s.cursor = s.doc.Offset(line+delta, col)
}

// ScrollFraction returns the position of the top visible line as a fraction of the document.
func (s *Session) ScrollFraction() float64 { return s.scroll }

// SetScrollFraction sets the scroll position, clamped to [0, 1].
func (s *Session) SetScrollFraction(f float64) {
	switch {
	case f < 0:
		f = 0
	case f > 1:
		f = 1
	}
	s.scroll = f
}

// TopLine returns the first visible line.
func (s *Session) TopLine() int {
	n := s.doc.LineCount()
	return clamp(int(s.scroll*float64(n)+0.5), 0, n-1)
}

// SetTopLine scrolls so that line is the first visible one.
func (s *Session) SetTopLine(line int) {
	n := s.doc.LineCount()
	line = clamp(line, 0, n-1)
	s.scroll = float64(line) / float64(n)
}

// ScrollBy scrolls by delta lines without moving past the last page.
// It returns true if the view moved.
func (s *Session) ScrollBy(delta, viewportHeight int) bool {
	top := s.TopLine()
	maxTop := s.doc.LineCount() - viewportHeight
	if maxTop < 0 {
		maxTop = 0
	}
	next := clamp(top+delta, 0, maxTop)
	if next == top {
		return false
	}
	s.SetTopLine(next)
	return true
}

// ScrollToCursor scrolls the least amount needed to show the cursor line.
func (s *Session) ScrollToCursor(viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	line, _ := s.doc.Position(s.cursor)
	top := s.TopLine()
	if line < top {
		s.SetTopLine(line)
	}
	if line >= top+viewportHeight {
		s.SetTopLine(line - viewportHeight + 1)
	}
}
