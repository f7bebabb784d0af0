package tview

import (
	"fmt"
	"strings"

	nav "github.com/boolean-maybe/naviri/naviri"
)

const helpOverview = `ABOUT

naviri is a terminal front-end to the 'ri' command. It shows ri's
output in a view where every word is a link: click a word, or move
the cursor onto it and press Enter, to go to that topic.

Words under "Instance methods:" and "Class methods:" are qualified
with the topic on display, so clicking "flatten" on the Array page
goes to Array#flatten.

TIPS

Type s, a or h in the address field for String, Array and Hash.
Several topics may be given on the command line; each opens in its
own tab, e.g. "naviri Array.flatten sort_by".
Going back restores the cursor and scroll position, so pressing
Enter right after going back takes you forward again.
`

// helpText builds the help screen from the resolved key bindings.
func helpText(km *nav.Keymap, rcPath string) string {
	var b strings.Builder
	b.WriteString(helpOverview)

	sections := []struct {
		title  string
		widget nav.Widget
	}{
		{"EVERYWHERE", nav.WidgetGlobal},
		{"DOCUMENT", nav.WidgetDocument},
		{"ADDRESS FIELD", nav.WidgetAddress},
	}
	for _, section := range sections {
		bindings := km.Bindings(section.widget)
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n\n", section.title)
		for _, binding := range bindings {
			fmt.Fprintf(&b, "    %-14s %s\n", binding.Key, binding.Command)
		}
	}

	fmt.Fprintf(&b, `
THE RC FILE

Colors, key bindings and the ri command can be changed in

    %s

Run "naviri --dump-rc" to write the current settings there, then
edit the file. Settings you erase fall back to their defaults.

Press Esc to close this screen.
`, rcPath)
	return b.String()
}
