package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystrings/internal/theme"
)

const inputBoxWidth = 72

// InputScreen displays a modal single-line editor with optional validation.
type InputScreen struct {
	Prompt   string
	Context  string
	Input    textinput.Model
	ErrorMsg string
	Thm      *theme.Theme

	// Validate returns an error message, or "" when value is acceptable.
	Validate func(value string) string

	OnSubmit func(value string) tea.Cmd
	OnCancel func() tea.Cmd
}

// NewInputScreen creates an input screen prefilled with value.
func NewInputScreen(prompt, placeholder, value string, thm *theme.Theme) *InputScreen {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	ti.Width = inputBoxWidth - 8

	return &InputScreen{
		Prompt: prompt,
		Input:  ti,
		Thm:    thm,
	}
}

// Type returns the screen type.
func (s *InputScreen) Type() Type {
	return TypeInput
}

// Value returns the current input.
func (s *InputScreen) Value() string {
	return s.Input.Value()
}

// Update handles keyboard input for the input screen.
func (s *InputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		value := s.Input.Value()
		if s.Validate != nil {
			if errMsg := strings.TrimSpace(s.Validate(value)); errMsg != "" {
				s.ErrorMsg = errMsg
				return s, nil
			}
		}
		s.ErrorMsg = ""
		if s.OnSubmit == nil {
			return nil, nil
		}
		return nil, s.OnSubmit(value)

	case keyEsc, keyCtrlC:
		if s.OnCancel == nil {
			return nil, nil
		}
		return nil, s.OnCancel()
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the input screen.
func (s *InputScreen) View() string {
	inner := inputBoxWidth - 6

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(inputBoxWidth)
	promptStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center)
	contextStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(inner).
		Align(lipgloss.Center)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Thm.Border).
		Padding(0, 1).
		Width(inner)
	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(inner).
		Align(lipgloss.Center)

	lines := []string{promptStyle.Render(s.Prompt)}
	if s.Context != "" {
		lines = append(lines, contextStyle.Render(s.Context))
	}
	lines = append(lines, inputStyle.Render(s.Input.View()))
	if s.ErrorMsg != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(s.Thm.ErrorFg).
			Width(inner).
			Align(lipgloss.Center).
			Render(s.ErrorMsg))
	}
	lines = append(lines, footerStyle.Render("Enter to confirm • Esc to cancel"))

	return boxStyle.Render(strings.Join(lines, "\n\n"))
}
