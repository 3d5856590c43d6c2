package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystrings/internal/theme"
)

func TestTextareaScreenType(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "", 120, 40, theme.Dracula())
	assert.Equal(t, TypeTextarea, s.Type())
}

func TestTextareaScreenKeepsMultilineValue(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "one\ntwo", 120, 40, theme.Dracula())
	assert.Equal(t, "one\ntwo", s.Value())
	assert.False(t, s.Changed())

	var got string
	s.OnSubmit = func(value string) tea.Cmd {
		got = value
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, next)
	assert.Equal(t, "one\ntwo", got)
}

func TestTextareaScreenEnterAddsNewline(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "hello", 120, 40, theme.Dracula())

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, next)
	assert.Equal(t, "hello\n", s.Value())
	assert.True(t, s.Changed())
}

func TestTextareaScreenValidation(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "", 120, 40, theme.Dracula())
	s.Validate = func(v string) string {
		if v == "" {
			return "required"
		}
		return ""
	}
	submitted := false
	s.OnSubmit = func(string) tea.Cmd {
		submitted = true
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.NotNil(t, next)
	assert.Equal(t, "required", s.ErrorMsg)
	assert.False(t, submitted)
}

func TestTextareaScreenCancel(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "x", 120, 40, theme.Dracula())
	cancelled := false
	s.OnCancel = func() tea.Cmd {
		cancelled = true
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Nil(t, next)
	assert.True(t, cancelled)
}

func TestTextareaScreenView(t *testing.T) {
	s := NewTextareaScreen("Edit text", "", "hello", 120, 40, theme.Dracula())
	s.Context = "hi in app/strings.xml"
	view := s.View()
	assert.Contains(t, view, "Edit text")
	assert.Contains(t, view, "hi in app/strings.xml")
	assert.Contains(t, view, "Ctrl+S apply")
}
