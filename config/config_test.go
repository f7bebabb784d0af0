package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "naviri.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Defaults(), settings)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeRC(t, `
command:
  default: qri -f ansi %s
tags:
  keyword:
    foreground: magenta
    underline: true
keys:
  document:
    x: quit
    q: none
cache_size: 50
`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qri -f ansi %s", settings.Command[DefaultCommandKey])
	assert.Equal(t, "ri -f ansi -T %s 2>&1", settings.Command["linux"], "untouched entries keep defaults")

	assert.Equal(t, TagStyle{Foreground: "magenta", Underline: true}, settings.Tags["keyword"])
	assert.Equal(t, Defaults().Tags["bold"], settings.Tags["bold"])

	assert.Equal(t, "quit", settings.Keys["document"]["x"])
	assert.Equal(t, "none", settings.Keys["document"]["q"])
	assert.Equal(t, "follow", settings.Keys["document"]["Enter"])
	assert.Equal(t, "quit", settings.Keys["global"]["Ctrl+Q"])

	assert.Equal(t, 50, settings.CacheSize)
	assert.Equal(t, 100, settings.HistorySize)
}

func TestLoad_IgnoresNonPositiveSizes(t *testing.T) {
	path := writeRC(t, "cache_size: 0\nhistory_size: -3\n")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, settings.CacheSize)
	assert.Equal(t, 100, settings.HistorySize)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeRC(t, "command: [unterminated\n")

	_, err := Load(path)

	assert.ErrorContains(t, err, "failed to parse rc file")
}

func TestCommandTemplate(t *testing.T) {
	settings := Settings{Command: map[string]string{
		DefaultCommandKey: "ri %s",
		"linux":           "ri -T %s 2>&1",
		"windows":         "ri.bat %s",
		"arm":             "arm-ri %s",
	}}

	tests := map[string]string{
		"linux/amd64":   "ri -T %s 2>&1",
		"windows/amd64": "ri.bat %s",
		"linux/arm64":   "arm-ri %s", // "arm" sorts before "linux"
		"plan9/386":     "ri %s",
	}
	for platform, want := range tests {
		assert.Equal(t, want, settings.CommandTemplate(platform), platform)
	}
}

func TestDump_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "naviri.yaml")
	settings := Defaults()
	settings.CacheSize = 42
	settings.Keys["document"]["z"] = "reload"

	require.NoError(t, Dump(path, settings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#\n# naviri settings."))
	assert.Contains(t, string(data), "leave %s itself unquoted")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "naviri.yaml", filepath.Base(Path()))
	assert.Equal(t, Dir(), filepath.Dir(Path()))
}
