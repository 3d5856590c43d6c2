package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystrings/internal/theme"
)

type marker struct{ name string }

func markerCmd(name string) tea.Cmd {
	return func() tea.Msg { return marker{name} }
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestManagerStack(t *testing.T) {
	m := NewManager()
	assert.False(t, m.IsActive())
	assert.Equal(t, TypeNone, m.Type())
	assert.Nil(t, m.Pop())

	thm := theme.Dracula()
	confirm := NewConfirmScreen("sure?", thm)
	input := NewInputScreen("Edit", "", "x", thm)

	m.Push(confirm)
	m.Push(input)
	m.Push(nil)
	assert.Equal(t, TypeInput, m.Type())

	assert.Same(t, input, m.Pop())
	assert.Equal(t, TypeConfirm, m.Type())

	m.Replace(NewHelpScreen(80, 24, thm))
	assert.Equal(t, TypeHelp, m.Type())

	m.Clear()
	assert.False(t, m.IsActive())
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()
	confirm := NewConfirmScreen("sure?", thm)
	input := NewInputScreen("Edit", "", "x", thm)

	m.Push(confirm)
	m.Push(input)
	m.Remove(confirm)
	assert.Same(t, input, m.Current())

	m.Remove(confirm)
	assert.Same(t, input, m.Current())

	m.Remove(input)
	assert.False(t, m.IsActive())
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "none", TypeNone.String())
	assert.Equal(t, "confirm", TypeConfirm.String())
	assert.Equal(t, "input", TypeInput.String())
	assert.Equal(t, "help", TypeHelp.String())
	assert.Equal(t, "textarea", TypeTextarea.String())
	assert.Equal(t, "unknown", Type(99).String())
}

func TestConfirmScreen(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected string
	}{
		{name: "y confirms", keys: []string{"y"}, expected: "confirm"},
		{name: "n cancels", keys: []string{"n"}, expected: "cancel"},
		{name: "enter defaults to cancel", keys: []string{"enter"}, expected: "cancel"},
		{name: "tab then enter confirms", keys: []string{"tab", "enter"}, expected: "confirm"},
		{name: "esc cancels", keys: []string{"esc"}, expected: "cancel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewConfirmScreen("Discard?", theme.Dracula())
			s.OnConfirm = func() tea.Cmd { return markerCmd("confirm") }
			s.OnCancel = func() tea.Cmd { return markerCmd("cancel") }

			var next Screen = s
			var cmd tea.Cmd
			for _, k := range tt.keys {
				require.NotNil(t, next)
				next, cmd = next.Update(key(k))
			}
			assert.Nil(t, next)
			require.NotNil(t, cmd)
			assert.Equal(t, marker{tt.expected}, cmd())
		})
	}
}

func TestConfirmScreenView(t *testing.T) {
	s := NewConfirmScreen("Discard unsaved edits?", theme.Nord())
	view := s.View()
	assert.Contains(t, view, "Discard unsaved edits?")
	assert.Contains(t, view, "[Confirm]")
	assert.Contains(t, view, "[Cancel]")
}

func TestInputScreenSubmit(t *testing.T) {
	s := NewInputScreen("Edit text", "", "Hello", theme.Dracula())
	var submitted string
	s.OnSubmit = func(value string) tea.Cmd {
		submitted = value
		return nil
	}

	next, _ := s.Update(key("!"))
	require.NotNil(t, next)
	assert.Equal(t, "Hello!", s.Value())

	next, _ = next.Update(key("enter"))
	assert.Nil(t, next)
	assert.Equal(t, "Hello!", submitted)
}

func TestInputScreenValidation(t *testing.T) {
	s := NewInputScreen("Rename", "", "", theme.Dracula())
	s.Validate = func(value string) string {
		if value == "" {
			return "Name cannot be empty."
		}
		return ""
	}
	submitted := false
	s.OnSubmit = func(string) tea.Cmd {
		submitted = true
		return nil
	}

	next, _ := s.Update(key("enter"))
	assert.Same(t, s, next)
	assert.False(t, submitted)
	assert.Contains(t, s.View(), "Name cannot be empty.")
}

func TestInputScreenCancel(t *testing.T) {
	s := NewInputScreen("Edit", "", "x", theme.Dracula())
	s.OnCancel = func() tea.Cmd { return markerCmd("cancel") }

	next, cmd := s.Update(key("esc"))
	assert.Nil(t, next)
	require.NotNil(t, cmd)
	assert.Equal(t, marker{"cancel"}, cmd())
}

func TestHelpScreen(t *testing.T) {
	s := NewHelpScreen(100, 40, theme.Dracula())
	assert.Contains(t, s.View(), "Ctrl+S")

	next, _ := s.Update(key("j"))
	assert.Same(t, s, next)

	next, _ = s.Update(key("?"))
	assert.Nil(t, next)
}
