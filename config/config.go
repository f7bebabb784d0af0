// Package config holds naviri's user settings: the documentation command per
// platform, the text styles and the key bindings.
//
// Settings are resolved once at startup, hard-coded defaults with the rc file
// laid over them, and are not changed afterwards.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
)

// DefaultCommandKey is the command table entry used when no platform key matches.
const DefaultCommandKey = "default"

// TopicPlaceholder is replaced by the shell-quoted topic in command templates.
const TopicPlaceholder = "%s"

// Style names that are not documentation tags.
const (
	StyleBase   = "__base__"
	StyleCursor = "__cursor__"
)

// TagStyle is how one tag is drawn. Colors are names ("red"), hex ("#ffe4b5")
// or xterm-256 indexes ("208"). Empty means inherit.
type TagStyle struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Reverse    bool   `yaml:"reverse,omitempty"`
	// Hidden tags are not drawn at all.
	Hidden bool `yaml:"hidden,omitempty"`
}

// Settings is the resolved configuration.
type Settings struct {
	// Command maps a platform substring (matched against GOOS/GOARCH) to a
	// command template. The "default" entry is the fallback.
	Command map[string]string `yaml:"command"`
	// Tags maps tag names to styles.
	Tags map[string]TagStyle `yaml:"tags"`
	// Keys maps a widget ("global", "document", "address") to key -> command tables.
	Keys map[string]map[string]string `yaml:"keys"`
	// CacheSize is how many topics are kept in memory.
	CacheSize int `yaml:"cache_size"`
	// HistorySize bounds each tab's history.
	HistorySize int `yaml:"history_size"`
}

// overrides mirrors Settings for the rc file, where every field is optional.
type overrides struct {
	Command     map[string]string            `yaml:"command"`
	Tags        map[string]TagStyle          `yaml:"tags"`
	Keys        map[string]map[string]string `yaml:"keys"`
	CacheSize   *int                         `yaml:"cache_size"`
	HistorySize *int                         `yaml:"history_size"`
}

// Defaults returns the hard-coded settings.
func Defaults() Settings {
	return Settings{
		Command: map[string]string{
			DefaultCommandKey: "ri -f ansi -T %s",
			// 2>&1 lets the user see, inside naviri, whatever errors ri prints.
			"linux":   "ri -f ansi -T %s 2>&1",
			"darwin":  "ri -f ansi -T %s 2>&1",
			"windows": "ri.bat -f ansi -T %s 2>&1",
		},
		Tags: map[string]TagStyle{
			StyleBase:   {},
			StyleCursor: {Reverse: true},
			"bold":      {Foreground: "blue", Bold: true},
			"italic":    {Foreground: "#6b8e23", Italic: true},
			"code":      {Foreground: "#1874cd"},
			"header2":   {Foreground: "black", Background: "#ffe4b5", Bold: true},
			"header3":   {Foreground: "black", Background: "#ffe4b5"},
			"keyword":   {Foreground: "red"},
			"search":    {Foreground: "black", Background: "yellow"},
			"hidden":    {Hidden: true},
		},
		Keys: map[string]map[string]string{
			"global": {
				"Ctrl+Q": "quit",
				"Ctrl+W": "close-tab",
				"Ctrl+L": "focus-address",
				"Ctrl+T": "new-tab",
				"Ctrl+N": "next-tab",
				"Ctrl+P": "prev-tab",
				"Ctrl+R": "reload",
				"F1":     "help",
			},
			"document": {
				"Enter":       "follow",
				"Alt+Enter":   "follow-new-tab",
				"Backspace":   "back",
				"Alt+Left":    "back",
				"Alt+Right":   "forward",
				"/":           "search",
				"n":           "search-next",
				"N":           "search-prev",
				"Left":        "cursor-left",
				"Right":       "cursor-right",
				"Up":          "cursor-up",
				"Down":        "cursor-down",
				"h":           "cursor-left",
				"l":           "cursor-right",
				"k":           "cursor-up",
				"j":           "cursor-down",
				"PgUp":        "page-up",
				"PgDn":        "page-down",
				"Home":        "top",
				"End":         "bottom",
				"g":           "top",
				"G":           "bottom",
				"?":           "help",
				"q":           "quit",
				"MouseLeft":   "follow",
				"MouseMiddle": "follow-new-tab",
				"MouseRight":  "back",
			},
			"address": {
				"Enter": "go",
				"Esc":   "focus-document",
			},
		},
		CacheSize:   20,
		HistorySize: 100,
	}
}

// Dir returns naviri's configuration directory.
//
// Without a home directory it falls back to the working directory, which at
// least makes the path shown in the help screen predictable.
func Dir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "naviri")
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Path returns the default rc file path.
func Path() string {
	return filepath.Join(Dir(), "naviri.yaml")
}

// Load returns the defaults overlaid with the rc file at path.
// A missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No rc file, using defaults", "path", path)
			return settings, nil
		}
		return Settings{}, fmt.Errorf("failed to read rc file: %w", err)
	}

	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Settings{}, fmt.Errorf("failed to parse rc file %s: %w", path, err)
	}

	settings.merge(o)
	slog.Info("Loaded rc file", "path", path)
	return settings, nil
}

// merge lays o over s. Entries of the rc file replace whole default entries;
// key tables are merged key by key.
func (s *Settings) merge(o overrides) {
	maps.Copy(s.Command, o.Command)
	maps.Copy(s.Tags, o.Tags)
	for widget, keys := range o.Keys {
		if s.Keys[widget] == nil {
			s.Keys[widget] = make(map[string]string, len(keys))
		}
		maps.Copy(s.Keys[widget], keys)
	}
	if o.CacheSize != nil && *o.CacheSize > 0 {
		s.CacheSize = *o.CacheSize
	}
	if o.HistorySize != nil && *o.HistorySize > 0 {
		s.HistorySize = *o.HistorySize
	}
}

// Platform identifies the running platform for command selection.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// CommandTemplate returns the command template for platform: the first
// command key, in sorted order, contained in platform, else the default.
func (s Settings) CommandTemplate(platform string) string {
	for _, key := range slices.Sorted(maps.Keys(s.Command)) {
		if key != DefaultCommandKey && strings.Contains(platform, key) {
			return s.Command[key]
		}
	}
	return s.Command[DefaultCommandKey]
}

const dumpHeader = `#
# naviri settings.
#
# command: the documentation command per platform; %s stands for the topic,
#          which is shell-quoted for you, so leave %s itself unquoted.
# tags:    colors and attributes of the text styles.
# keys:    key bindings per widget (global, document, address).
#
# You may erase any setting in this file for which you want to use
# the default value.
#
`

// Dump writes s to path, creating its directory.
func Dump(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(dumpHeader)
	buf.Write(data)
	return atomic.WriteFile(path, &buf)
}
