package app

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystrings/internal/app/services"
	"github.com/chmouel/lazystrings/internal/config"
)

const appStrings = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="hi">Hello</string>
    <string name="bye" translatable="false">Bye</string>
    <string name="greeting">Hello, %s!</string>
</resources>
`

const libStrings = `<resources>
    <string name="greeting">Ahoj, %s!</string>
    <string name="multi">one
two</string>
</resources>
`

type fixture struct {
	dir       string
	appPath   string
	libPath   string
	prefsPath string
	cfg       *config.AppConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:       dir,
		appPath:   writeStrings(t, dir, "app", appStrings),
		libPath:   writeStrings(t, dir, "lib", libStrings),
		prefsPath: filepath.Join(dir, "state", services.PreferencesFilename),
	}
	f.cfg = config.DefaultConfig()
	f.cfg.WatchFiles = false
	f.cfg.ShowIcons = false
	f.cfg.AddFiles(f.appPath, f.libPath)
	return f
}

func writeStrings(t *testing.T, dir, project, content string) string {
	t.Helper()
	path := filepath.Join(dir, project, "strings.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newLoadedModel builds a model and feeds it the result of its initial load.
func (f *fixture) newLoadedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(f.cfg, services.NewPreferencesService(f.prefsPath))
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	runCmd(m, m.Init())
	require.True(t, m.loaded)
	return m
}

// runCmd executes cmd and feeds the resulting message back into m.
func runCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func rowNames(m *Model) []string {
	names := make([]string, 0, len(m.table.Rows()))
	for _, row := range m.table.Rows() {
		names = append(names, row[1])
	}
	return names
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
