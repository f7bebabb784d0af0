package naviri

import (
	"fmt"
	"sort"
)

// Command identifies a user action that keys and mouse buttons can be bound to.
type Command int

const (
	CommandNone Command = iota
	CommandGo
	CommandFollow
	CommandFollowNewTab
	CommandBack
	CommandForward
	CommandReload
	CommandSearch
	CommandSearchNext
	CommandSearchPrev
	CommandNewTab
	CommandCloseTab
	CommandNextTab
	CommandPrevTab
	CommandFocusAddress
	CommandFocusDocument
	CommandCursorLeft
	CommandCursorRight
	CommandCursorUp
	CommandCursorDown
	CommandPageUp
	CommandPageDown
	CommandTop
	CommandBottom
	CommandHelp
	CommandQuit
)

var commandNames = map[Command]string{
	CommandGo:            "go",
	CommandFollow:        "follow",
	CommandFollowNewTab:  "follow-new-tab",
	CommandBack:          "back",
	CommandForward:       "forward",
	CommandReload:        "reload",
	CommandSearch:        "search",
	CommandSearchNext:    "search-next",
	CommandSearchPrev:    "search-prev",
	CommandNewTab:        "new-tab",
	CommandCloseTab:      "close-tab",
	CommandNextTab:       "next-tab",
	CommandPrevTab:       "prev-tab",
	CommandFocusAddress:  "focus-address",
	CommandFocusDocument: "focus-document",
	CommandCursorLeft:    "cursor-left",
	CommandCursorRight:   "cursor-right",
	CommandCursorUp:      "cursor-up",
	CommandCursorDown:    "cursor-down",
	CommandPageUp:        "page-up",
	CommandPageDown:      "page-down",
	CommandTop:           "top",
	CommandBottom:        "bottom",
	CommandHelp:          "help",
	CommandQuit:          "quit",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for c, name := range commandNames {
		m[name] = c
	}
	return m
}()

// String returns the name used for c in the rc file.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand looks up a command by its rc file name.
func ParseCommand(name string) (Command, error) {
	if c, ok := commandsByName[name]; ok {
		return c, nil
	}
	return CommandNone, fmt.Errorf("unknown command %q", name)
}

// Widget names the part of the interface a binding applies to.
type Widget string

const (
	WidgetGlobal   Widget = "global"
	WidgetDocument Widget = "document"
	WidgetAddress  Widget = "address"
)

// Binding ties a normalized key name to a command.
type Binding struct {
	Key     string
	Command Command
}

// Keymap is the resolved binding table, built once at startup.
type Keymap struct {
	tables map[Widget]map[string]Command
	order  map[Widget][]Binding
}

// NewKeymap resolves raw widget -> key -> command-name tables. normalize
// turns a key name into the form the host reports for key events.
func NewKeymap(raw map[string]map[string]string, normalize func(string) (string, error)) (*Keymap, error) {
	km := &Keymap{
		tables: make(map[Widget]map[string]Command),
		order:  make(map[Widget][]Binding),
	}
	for widgetName, keys := range raw {
		w := Widget(widgetName)
		switch w {
		case WidgetGlobal, WidgetDocument, WidgetAddress:
		default:
			return nil, fmt.Errorf("unknown key table %q", widgetName)
		}
		table := make(map[string]Command, len(keys))
		for key, name := range keys {
			if name == "" || name == "none" {
				continue
			}
			c, err := ParseCommand(name)
			if err != nil {
				return nil, fmt.Errorf("key %q in %s table: %w", key, widgetName, err)
			}
			norm, err := normalize(key)
			if err != nil {
				return nil, fmt.Errorf("%s table: %w", widgetName, err)
			}
			table[norm] = c
		}
		km.tables[w] = table

		bindings := make([]Binding, 0, len(table))
		for key, c := range table {
			bindings = append(bindings, Binding{Key: key, Command: c})
		}
		sort.Slice(bindings, func(i, j int) bool {
			if bindings[i].Command != bindings[j].Command {
				return bindings[i].Command < bindings[j].Command
			}
			return bindings[i].Key < bindings[j].Key
		})
		km.order[w] = bindings
	}
	return km, nil
}

// Lookup returns the command bound to key in widget.
func (km *Keymap) Lookup(w Widget, key string) (Command, bool) {
	c, ok := km.tables[w][key]
	return c, ok
}

// Bindings returns widget's bindings ordered by command, for help screens.
func (km *Keymap) Bindings(w Widget) []Binding {
	return km.order[w]
}
