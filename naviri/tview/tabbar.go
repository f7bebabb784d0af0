package tview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

const newTabLabel = " + "

// TabBar shows one button per tab plus a "+" button.
// Left click selects a tab, right click closes it.
type TabBar struct {
	*tview.Box

	titles []string
	active int

	onSelect func(i int)
	onClose  func(i int)
	onNew    func()
}

// NewTabBar creates an empty tab bar.
func NewTabBar() *TabBar {
	return &TabBar{Box: tview.NewBox()}
}

// SetTabs replaces the tab titles and the active index.
func (b *TabBar) SetTabs(titles []string, active int) *TabBar {
	b.titles = titles
	b.active = active
	return b
}

// SetHandlers sets the callbacks for selecting, closing and adding tabs.
func (b *TabBar) SetHandlers(onSelect, onClose func(i int), onNew func()) *TabBar {
	b.onSelect, b.onClose, b.onNew = onSelect, onClose, onNew
	return b
}

// tabSpan is the screen extent of one button; index -1 is the "+" button.
type tabSpan struct {
	index    int
	from, to int
	label    string
}

func layoutTabs(titles []string) []tabSpan {
	spans := make([]tabSpan, 0, len(titles)+1)
	col := 0
	for i, title := range titles {
		label := " " + title + " "
		w := runewidth.StringWidth(label)
		spans = append(spans, tabSpan{index: i, from: col, to: col + w, label: label})
		col += w + 1
	}
	spans = append(spans, tabSpan{index: -1, from: col, to: col + len(newTabLabel), label: newTabLabel})
	return spans
}

// Draw renders the tab buttons.
func (b *TabBar) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
	x, y, width, _ := b.GetInnerRect()

	for _, span := range layoutTabs(b.titles) {
		if span.from >= width {
			break
		}
		style := tcell.StyleDefault.Reverse(true)
		if span.index == b.active {
			style = tcell.StyleDefault.Bold(true).Underline(true)
		}
		col := span.from
		for _, r := range span.label {
			if col >= width {
				break
			}
			screen.SetContent(x+col, y, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
	}
}

// spanAt returns the button under column col.
func (b *TabBar) spanAt(col int) (tabSpan, bool) {
	for _, span := range layoutTabs(b.titles) {
		if col >= span.from && col < span.to {
			return span, true
		}
	}
	return tabSpan{}, false
}

// MouseHandler selects, closes or adds tabs.
func (b *TabBar) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !b.InRect(x, y) {
			return false, nil
		}
		rx, _, _, _ := b.GetInnerRect()
		span, ok := b.spanAt(x - rx)
		if !ok {
			return false, nil
		}

		switch {
		case action == tview.MouseLeftClick && span.index < 0:
			if b.onNew != nil {
				b.onNew()
			}
		case action == tview.MouseLeftClick:
			if b.onSelect != nil {
				b.onSelect(span.index)
			}
		case action == tview.MouseRightClick && span.index >= 0:
			if b.onClose != nil {
				b.onClose(span.index)
			}
		default:
			return false, nil
		}
		return true, nil
	})
}
