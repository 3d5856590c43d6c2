package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Empty(t, cfg.Files)
	assert.Empty(t, cfg.Theme)
	assert.Empty(t, cfg.DebugLog)
	assert.True(t, cfg.ShowIcons)
	assert.True(t, cfg.WatchFiles)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{name: "nil uses default", input: nil, defaultVal: true, expected: true},
		{name: "bool", input: false, defaultVal: true, expected: false},
		{name: "int", input: 1, defaultVal: false, expected: true},
		{name: "yes", input: "Yes", defaultVal: false, expected: true},
		{name: "off", input: " off ", defaultVal: true, expected: false},
		{name: "garbage uses default", input: "maybe", defaultVal: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestParseFiles(t *testing.T) {
	input := []any{
		"/work/Ethwork/strings.xml",
		map[string]any{"dir": "/work/Intrace", "name": "strings.xml"},
		map[string]any{"dir": "/work/Qute"},
		map[string]any{"path": "/work/WebTools/strings.xml"},
		map[string]any{"name": "no-dir.xml"},
		"",
		42,
	}

	files := parseFiles(input)
	assert.Equal(t, []ResourceFile{
		{Dir: "/work/Ethwork", Name: "strings.xml"},
		{Dir: "/work/Intrace", Name: "strings.xml"},
		{Dir: "/work/Qute", Name: "strings.xml"},
		{Dir: "/work/WebTools", Name: "strings.xml"},
	}, files)

	assert.Empty(t, parseFiles("not a list"))
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `files:
  - dir: /work/Ethwork
    name: strings.xml
  - /work/Qute/strings.xml
theme: Nord
debug_log: /tmp/lazystrings.log
show_icons: false
watch_files: "no"
prefs_file: /tmp/prefs.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/Ethwork/strings.xml", "/work/Qute/strings.xml"}, cfg.ResourcePaths())
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, "/tmp/lazystrings.log", cfg.DebugLog)
	assert.Equal(t, "/tmp/prefs.json", cfg.PrefsFile)
	assert.False(t, cfg.ShowIcons)
	assert.False(t, cfg.WatchFiles)
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "lazystrings"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "lazystrings", "config.yml"), []byte("theme: dracula\n"), 0o600))

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("files: [unclosed"), 0o600))
	cfg, err := LoadConfig(bad)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyCLIOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddFiles("/old/A/strings.xml")

	err := cfg.ApplyCLIOverrides([]string{
		"ls.theme=gruvbox-dark",
		"show_icons=false",
		"ls.files=/x/A/strings.xml, /x/B/strings.xml",
		"debug_log=/tmp/debug.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "gruvbox-dark", cfg.Theme)
	assert.False(t, cfg.ShowIcons)
	assert.Equal(t, "/tmp/debug.log", cfg.DebugLog)
	assert.Equal(t, []string{"/x/A/strings.xml", "/x/B/strings.xml"}, cfg.ResourcePaths())
}

func TestApplyCLIOverridesErrors(t *testing.T) {
	tests := []string{"theme", "ls.theme=nope", "ls.unknown=1"}
	for _, override := range tests {
		t.Run(override, func(t *testing.T) {
			assert.Error(t, DefaultConfig().ApplyCLIOverrides([]string{override}))
		})
	}
}

func TestResourcePathsExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.AddFiles("~/Strings/Qute/strings.xml")
	assert.Equal(t, []string{filepath.Join(home, "Strings", "Qute", "strings.xml")}, cfg.ResourcePaths())
}

func TestNormalizeThemeName(t *testing.T) {
	assert.Equal(t, "dracula", NormalizeThemeName(" Dracula "))
	assert.Empty(t, NormalizeThemeName("unknown"))
}
