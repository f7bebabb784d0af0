package util

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a color from the rc file to a tcell color.
// Accepted forms are "#rrggbb", an xterm-256 index such as "208", and any
// name tcell knows. Indexes stay palette colors, so the low sixteen follow
// the terminal theme. Empty and unknown colors yield tcell.ColorDefault.
func ParseColor(s string) tcell.Color {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "-" || s == "default":
		return tcell.ColorDefault
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	if code, err := strconv.Atoi(s); err == nil && code >= 0 && code <= 255 {
		return tcell.PaletteColor(code)
	}
	return tcell.GetColor(strings.ToLower(s))
}
