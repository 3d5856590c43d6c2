package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazystrings/internal/theme"
)

// TextareaScreen displays a modal multiline editor. Enter inserts a newline,
// Ctrl+S submits.
type TextareaScreen struct {
	Prompt   string
	Context  string
	Input    textarea.Model
	ErrorMsg string
	Thm      *theme.Theme

	Validate func(value string) string

	OnSubmit func(value string) tea.Cmd
	OnCancel func() tea.Cmd

	initial   string
	boxWidth  int
	boxHeight int
}

// NewTextareaScreen creates a multiline editor sized relative to the terminal.
func NewTextareaScreen(prompt, placeholder, value string, maxWidth, maxHeight int, thm *theme.Theme) *TextareaScreen {
	width := 80
	height := 18
	if maxWidth > 0 {
		width = clampInt(maxWidth*3/4, 50, 110)
	}
	if maxHeight > 0 {
		height = clampInt(maxHeight*3/4, 12, 30)
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(width - 8)
	ta.SetHeight(clampInt(height-11, 3, 20))
	ta.SetValue(value)
	ta.Focus()

	focused, _ := textarea.DefaultStyles()
	focused.Base = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(thm.Border).
		Padding(0, 1)
	focused.Text = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true)
	focused.CursorLine = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.EndOfBuffer = lipgloss.NewStyle().Foreground(thm.MutedFg)
	blurred := focused
	blurred.Base = blurred.Base.BorderForeground(thm.AccentDim)
	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred

	return &TextareaScreen{
		Prompt:    prompt,
		Input:     ta,
		Thm:       thm,
		initial:   ta.Value(),
		boxWidth:  width,
		boxHeight: height,
	}
}

// Type returns the screen type.
func (s *TextareaScreen) Type() Type {
	return TypeTextarea
}

// Value returns the current text.
func (s *TextareaScreen) Value() string {
	return s.Input.Value()
}

// Changed reports whether the text differs from what the editor opened with.
// The comparison is against the editor's own rendition of the initial value,
// so tabs or carriage returns it normalises do not count as edits.
func (s *TextareaScreen) Changed() bool {
	return s.Input.Value() != s.initial
}

// Update handles keyboard input for the textarea screen.
func (s *TextareaScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyCtrlS:
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

// View renders the multiline editor.
func (s *TextareaScreen) View() string {
	inner := s.boxWidth - 6

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(s.boxWidth)
	promptStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center)
	mutedStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(inner).
		Align(lipgloss.Center)

	lines := []string{promptStyle.Render(s.Prompt)}
	if s.Context != "" {
		lines = append(lines, mutedStyle.Render(s.Context))
	}
	lines = append(lines, s.Input.View())
	if s.ErrorMsg != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(s.Thm.ErrorFg).
			Width(inner).
			Align(lipgloss.Center).
			Render(s.ErrorMsg))
	}
	lines = append(lines, mutedStyle.Render("Ctrl+S apply • Esc cancel • Enter newline"))

	return boxStyle.Render(strings.Join(lines, "\n\n"))
}

func clampInt(value, minValue, maxValue int) int {
	return min(max(value, minValue), maxValue)
}
