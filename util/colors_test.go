package util

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"", tcell.ColorDefault},
		{"default", tcell.ColorDefault},
		{"-", tcell.ColorDefault},
		{"#ffe4b5", tcell.NewRGBColor(0xff, 0xe4, 0xb5)},
		{"#nothex", tcell.ColorDefault},
		{"1", tcell.PaletteColor(1)},
		{"196", tcell.PaletteColor(196)},
		{"244", tcell.PaletteColor(244)},
		{"256", tcell.ColorDefault},
		{"red", tcell.ColorRed},
		{" Blue ", tcell.ColorBlue},
		{"not-a-color", tcell.ColorDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseColor(tt.in), "ParseColor(%q)", tt.in)
	}
}
