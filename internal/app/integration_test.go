package app

import (
	"bytes"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystrings/internal/app/services"
	"github.com/chmouel/lazystrings/internal/resource"
)

func waitForOutput(t *testing.T, tm *teatest.TestModel, want string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(want))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(20*time.Millisecond))
}

// TestEditAndSaveFlow drives the program end to end: filter, edit, save, quit.
func TestEditAndSaveFlow(t *testing.T) {
	f := newFixture(t)
	m := NewModel(f.cfg, services.NewPreferencesService(f.prefsPath))
	t.Cleanup(m.Close)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 30))
	waitForOutput(t, tm, "Loaded 5 entries")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "Edit text")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitForOutput(t, tm, "Updated hi")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitForOutput(t, tm, "Saved 2 file(s)")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.True(t, fm.quitting)
	assert.False(t, fm.Dirty())
	assert.Equal(t, "app/strings.xml", fm.fileFilter)

	saved, err := os.ReadFile(f.appPath)
	require.NoError(t, err)
	assert.Contains(t, string(saved), `<string name="hi">Hello!</string>`)
	_, err = os.Stat(f.appPath + resource.BackupSuffix)
	assert.NoError(t, err)
}

// TestDirtyQuitFlow checks that unsaved edits need a confirmation to quit.
func TestDirtyQuitFlow(t *testing.T) {
	f := newFixture(t)
	m := NewModel(f.cfg, services.NewPreferencesService(f.prefsPath))
	t.Cleanup(m.Close)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 30))
	waitForOutput(t, tm, "Loaded 5 entries")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	waitForOutput(t, tm, "Rename string")
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForOutput(t, tm, "Renamed hi to hi2")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitForOutput(t, tm, "Quit without saving?")
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.True(t, fm.Dirty())

	data, err := os.ReadFile(f.appPath)
	require.NoError(t, err)
	assert.Equal(t, appStrings, string(data))
}
