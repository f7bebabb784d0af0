package tview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Mouse button names usable in the key tables.
const (
	MouseLeft   = "MouseLeft"
	MouseMiddle = "MouseMiddle"
	MouseRight  = "MouseRight"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyTab:       "Tab",
	tcell.KeyBacktab:   "Backtab",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyEscape:    "Esc",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyPgUp:      "PgUp",
	tcell.KeyPgDn:      "PgDn",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyInsert:    "Insert",
	tcell.KeyDelete:    "Delete",
	tcell.KeyF1:        "F1",
	tcell.KeyF2:        "F2",
	tcell.KeyF3:        "F3",
	tcell.KeyF4:        "F4",
	tcell.KeyF5:        "F5",
	tcell.KeyF6:        "F6",
	tcell.KeyF7:        "F7",
	tcell.KeyF8:        "F8",
	tcell.KeyF9:        "F9",
	tcell.KeyF10:       "F10",
	tcell.KeyF11:       "F11",
	tcell.KeyF12:       "F12",
}

// keyNamesLower lets NormalizeKey accept names in any case.
var keyNamesLower = func() map[string]string {
	m := make(map[string]string)
	for _, name := range namedKeys {
		m[strings.ToLower(name)] = name
	}
	for _, name := range []string{MouseLeft, MouseMiddle, MouseRight} {
		m[strings.ToLower(name)] = name
	}
	m["escape"] = "Esc"
	m["return"] = "Enter"
	m["pageup"] = "PgUp"
	m["pagedown"] = "PgDn"
	m["space"] = " "
	return m
}()

// KeyName returns the normalized name of a key event, e.g. "Ctrl+W",
// "Alt+Left", "N" or "/".
func KeyName(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	key := ev.Key()
	if key == tcell.KeyBackspace2 {
		key = tcell.KeyBackspace
	}

	var base string
	ctrl := mods&tcell.ModCtrl != 0
	switch {
	case key == tcell.KeyRune:
		base = string(ev.Rune())
		if ctrl {
			base = strings.ToUpper(base)
		}
	case namedKeys[key] != "":
		base = namedKeys[key]
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		base = string(rune('A' + (key - tcell.KeyCtrlA)))
		ctrl = true
	default:
		base = fmt.Sprintf("Key%d", int(key))
	}

	return joinKeyName(ctrl, mods&tcell.ModAlt != 0, key != tcell.KeyRune && mods&tcell.ModShift != 0, base)
}

// NormalizeKey turns a key name from the rc file into the form KeyName
// reports: modifiers in Ctrl, Alt, Shift order and canonical key names.
func NormalizeKey(name string) (string, error) {
	if name == "+" {
		return name, nil
	}
	parts := strings.Split(name, "+")
	if strings.HasSuffix(name, "++") {
		// "Ctrl++" binds the plus key itself.
		parts = append(parts[:len(parts)-2], "+")
	}
	base := parts[len(parts)-1]
	var ctrl, alt, shift bool
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control", "c":
			ctrl = true
		case "alt", "meta", "m":
			alt = true
		case "shift", "s":
			shift = true
		default:
			return "", fmt.Errorf("invalid key %q: unknown modifier %q", name, mod)
		}
	}

	switch {
	case base == "":
		return "", fmt.Errorf("invalid key %q", name)
	case utf8.RuneCountInString(base) == 1:
		if ctrl {
			base = strings.ToUpper(base)
		}
		// shift is implied by the rune itself ("N").
		shift = false
	default:
		canonical, ok := keyNamesLower[strings.ToLower(base)]
		if !ok {
			return "", fmt.Errorf("invalid key %q: unknown key %q", name, base)
		}
		base = canonical
	}
	return joinKeyName(ctrl, alt, shift, base), nil
}

func joinKeyName(ctrl, alt, shift bool, base string) string {
	var b strings.Builder
	if ctrl {
		b.WriteString("Ctrl+")
	}
	if alt {
		b.WriteString("Alt+")
	}
	if shift {
		b.WriteString("Shift+")
	}
	b.WriteString(base)
	return b.String()
}
