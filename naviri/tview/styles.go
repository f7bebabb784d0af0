package tview

import (
	"github.com/boolean-maybe/naviri/config"
	nav "github.com/boolean-maybe/naviri/naviri"
	"github.com/boolean-maybe/naviri/util"
	"github.com/gdamore/tcell/v2"
)

// tagStyle is a resolved config.TagStyle.
type tagStyle struct {
	fg, bg tcell.Color
	attrs  tcell.AttrMask
	hidden bool
}

// apply lays t over base; attributes accumulate, colors replace.
func (t tagStyle) apply(base tcell.Style) tcell.Style {
	if t.fg != tcell.ColorDefault {
		base = base.Foreground(t.fg)
	}
	if t.bg != tcell.ColorDefault {
		base = base.Background(t.bg)
	}
	if t.attrs&tcell.AttrBold != 0 {
		base = base.Bold(true)
	}
	if t.attrs&tcell.AttrItalic != 0 {
		base = base.Italic(true)
	}
	if t.attrs&tcell.AttrUnderline != 0 {
		base = base.Underline(true)
	}
	if t.attrs&tcell.AttrReverse != 0 {
		base = base.Reverse(true)
	}
	return base
}

func resolveTagStyle(s config.TagStyle) tagStyle {
	t := tagStyle{
		fg:     util.ParseColor(s.Foreground),
		bg:     util.ParseColor(s.Background),
		hidden: s.Hidden,
	}
	if s.Bold {
		t.attrs |= tcell.AttrBold
	}
	if s.Italic {
		t.attrs |= tcell.AttrItalic
	}
	if s.Underline {
		t.attrs |= tcell.AttrUnderline
	}
	if s.Reverse {
		t.attrs |= tcell.AttrReverse
	}
	return t
}

// Theme maps documentation tags to tcell styles.
type Theme struct {
	base   tcell.Style
	cursor tagStyle
	tags   map[nav.Tag]tagStyle
}

// NewTheme resolves the tags table of the settings.
func NewTheme(tags map[string]config.TagStyle) *Theme {
	th := &Theme{
		base:   resolveTagStyle(tags[config.StyleBase]).apply(tcell.StyleDefault),
		cursor: tagStyle{fg: tcell.ColorDefault, bg: tcell.ColorDefault, attrs: tcell.AttrReverse},
		tags:   make(map[nav.Tag]tagStyle, len(tags)),
	}
	if c, ok := tags[config.StyleCursor]; ok {
		th.cursor = resolveTagStyle(c)
	}
	for name, s := range tags {
		if name == config.StyleBase || name == config.StyleCursor {
			continue
		}
		th.tags[nav.Tag(name)] = resolveTagStyle(s)
	}
	return th
}

// Base returns the style of untagged text.
func (th *Theme) Base() tcell.Style { return th.base }

// cell describes how one rune of the document is drawn.
type cell struct {
	style  tcell.Style
	hidden bool
}

// styleLine resolves the style of every rune of a line that starts at offset
// lineStart and has n runes. Ranges are applied in order, so later ones win.
func (th *Theme) styleLine(ranges []nav.StyleRange, lineStart, n int) []cell {
	cells := make([]cell, n)
	for i := range cells {
		cells[i].style = th.base
	}
	lineEnd := lineStart + n
	for _, r := range ranges {
		if r.End() <= lineStart || r.Start >= lineEnd {
			continue
		}
		ts, ok := th.tags[r.Tag]
		if !ok {
			continue
		}
		from := max(r.Start, lineStart) - lineStart
		to := min(r.End(), lineEnd) - lineStart
		for i := from; i < to; i++ {
			cells[i].style = ts.apply(cells[i].style)
			if ts.hidden {
				cells[i].hidden = true
			}
		}
	}
	return cells
}
