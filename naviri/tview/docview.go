package tview

import (
	nav "github.com/boolean-maybe/naviri/naviri"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const tabWidth = 8

// DocView is a TView primitive that shows the document of a session with its
// style ranges and cursor. It reports keys and mouse buttons by name and
// leaves their meaning to the owner.
type DocView struct {
	*tview.Box

	session *nav.Session
	theme   *Theme

	onKey   func(name string) bool
	onMouse func(button string, offset int) bool
}

// NewDocView creates an empty view.
func NewDocView(theme *Theme) *DocView {
	box := tview.NewBox()
	box.SetBorder(false)
	box.SetBackgroundColor(tcell.ColorDefault)

	return &DocView{
		Box:   box,
		theme: theme,
	}
}

// SetSession switches the view to another session (tab).
func (v *DocView) SetSession(s *nav.Session) *DocView {
	v.session = s
	return v
}

// Session returns the session on display.
func (v *DocView) Session() *nav.Session { return v.session }

// SetKeyHandler sets the callback for key presses. It returns true if the key was handled.
func (v *DocView) SetKeyHandler(handler func(name string) bool) *DocView {
	v.onKey = handler
	return v
}

// SetMouseHandler sets the callback for mouse clicks, given the button name
// and the document offset under the pointer.
func (v *DocView) SetMouseHandler(handler func(button string, offset int) bool) *DocView {
	v.onMouse = handler
	return v
}

// PageHeight returns the number of visible lines.
func (v *DocView) PageHeight() int {
	_, _, _, height := v.GetInnerRect()
	return height
}

// Draw renders the visible part of the document.
func (v *DocView) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 || v.session == nil {
		return
	}

	base := v.theme.Base()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			screen.SetContent(x+col, y+row, ' ', nil, base)
		}
	}

	doc := v.session.Document()
	ranges := v.session.Ranges()
	cursorLine, cursorCol := v.session.CursorPosition()
	top := v.session.TopLine()

	for row := 0; row < height; row++ {
		lineIdx := top + row
		if lineIdx >= doc.LineCount() {
			break
		}
		cursor := -1
		if lineIdx == cursorLine {
			cursor = cursorCol
		}
		v.drawLine(screen, x, y+row, width, doc, lineIdx, ranges, cursor)
	}
}

func (v *DocView) drawLine(screen tcell.Screen, x, y, width int, doc nav.Document, lineIdx int, ranges []nav.StyleRange, cursor int) {
	runes := []rune(doc.Line(lineIdx))
	lineStart := doc.Offset(lineIdx, 0)
	cells := v.theme.styleLine(ranges, lineStart, len(runes))
	layout := layoutLine(runes, cells)

	for i, r := range runes {
		if cells[i].hidden {
			continue
		}
		col, w := layout[i].col, layout[i].width
		if col+w > width {
			break
		}
		style := cells[i].style
		if i == cursor {
			style = v.theme.cursor.apply(style)
		}
		if r == '\t' {
			for c := 0; c < w; c++ {
				screen.SetContent(x+col+c, y, ' ', nil, style)
			}
			continue
		}
		screen.SetContent(x+col, y, r, nil, style)
	}

	if cursor == len(runes) {
		end := lineWidth(layout)
		if end < width {
			screen.SetContent(x+end, y, ' ', nil, v.theme.cursor.apply(v.theme.Base()))
		}
	}
}

// runeCell is where a rune lands on screen, relative to the line start.
type runeCell struct {
	col, width int
}

// layoutLine places every rune of a line on screen columns. Hidden runes
// take no room, tabs extend to the next tab stop and wide runes take two.
func layoutLine(runes []rune, cells []cell) []runeCell {
	layout := make([]runeCell, len(runes))
	col := 0
	for i, r := range runes {
		w := 0
		switch {
		case cells != nil && cells[i].hidden:
		case r == '\t':
			w = tabWidth - col%tabWidth
		default:
			w = runewidth.RuneWidth(r)
			if w == 0 {
				w = 1
			}
		}
		layout[i] = runeCell{col: col, width: w}
		col += w
	}
	return layout
}

func lineWidth(layout []runeCell) int {
	if len(layout) == 0 {
		return 0
	}
	last := layout[len(layout)-1]
	return last.col + last.width
}

// OffsetAt returns the document offset under screen position (x, y).
// Positions past the end of a line map to the line's end.
func (v *DocView) OffsetAt(x, y int) (int, bool) {
	if v.session == nil || !v.InRect(x, y) {
		return 0, false
	}
	rx, ry, _, _ := v.GetInnerRect()
	return v.offsetAt(x-rx, y-ry)
}

func (v *DocView) offsetAt(col, row int) (int, bool) {
	doc := v.session.Document()
	lineIdx := v.session.TopLine() + row
	if row < 0 || lineIdx >= doc.LineCount() {
		return 0, false
	}
	runes := []rune(doc.Line(lineIdx))
	lineStart := doc.Offset(lineIdx, 0)
	layout := layoutLine(runes, v.theme.styleLine(v.session.Ranges(), lineStart, len(runes)))
	for i, c := range layout {
		if c.width > 0 && col >= c.col && col < c.col+c.width {
			return lineStart + i, true
		}
	}
	return lineStart + len(runes), true
}

// InputHandler reports key presses to the key handler.
func (v *DocView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if v.onKey != nil {
			v.onKey(KeyName(event))
		}
	})
}

// MouseHandler reports clicks to the mouse handler and scrolls on the wheel.
func (v *DocView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if v.session == nil || !v.InRect(x, y) {
			return false, nil
		}

		var button string
		switch action {
		case tview.MouseLeftDown, tview.MouseMiddleDown, tview.MouseRightDown:
			setFocus(v)
			return true, nil
		case tview.MouseLeftClick:
			button = MouseLeft
		case tview.MouseMiddleClick:
			button = MouseMiddle
		case tview.MouseRightClick:
			button = MouseRight
		case tview.MouseScrollUp:
			v.session.ScrollBy(-3, v.PageHeight())
			return true, nil
		case tview.MouseScrollDown:
			v.session.ScrollBy(3, v.PageHeight())
			return true, nil
		default:
			return false, nil
		}

		offset, ok := v.OffsetAt(x, y)
		if !ok || v.onMouse == nil {
			return true, nil
		}
		v.onMouse(button, offset)
		return true, nil
	})
}
