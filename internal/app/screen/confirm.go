package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazystrings/internal/theme"
)

// ConfirmScreen displays a modal confirmation prompt with Confirm/Cancel buttons.
type ConfirmScreen struct {
	Message        string
	SelectedButton int // 0 = Confirm, 1 = Cancel
	Thm            *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirm screen with Cancel focused.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Message:        message,
		SelectedButton: 1,
		Thm:            thm,
	}
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

// Update processes keyboard events for the confirmation dialog.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, keyShiftTab, "left", "right", "h", "l":
		s.SelectedButton = 1 - s.SelectedButton
		return s, nil
	case "y", "Y":
		return nil, s.confirm()
	case "n", "N", keyEsc, keyQ, keyCtrlC:
		return nil, s.cancel()
	case keyEnter:
		if s.SelectedButton == 0 {
			return nil, s.confirm()
		}
		return nil, s.cancel()
	}
	return s, nil
}

func (s *ConfirmScreen) confirm() tea.Cmd {
	if s.OnConfirm == nil {
		return nil
	}
	return s.OnConfirm()
}

func (s *ConfirmScreen) cancel() tea.Cmd {
	if s.OnCancel == nil {
		return nil
	}
	return s.OnCancel()
}

// View renders the confirmation box with the focused button highlighted.
func (s *ConfirmScreen) View() string {
	const width = 56

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	messageStyle := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Center).
		Foreground(s.Thm.TextFg)

	button := lipgloss.NewStyle().
		Width((width - 6) / 2).
		Align(lipgloss.Center)
	focused := button.Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
	unfocused := button.Foreground(s.Thm.MutedFg).Background(s.Thm.AccentDim)

	confirmStyle, cancelStyle := unfocused, focused
	if s.SelectedButton == 0 {
		confirmStyle, cancelStyle = focused, unfocused
	}

	return boxStyle.Render(fmt.Sprintf("%s\n\n%s  %s",
		messageStyle.Render(s.Message),
		confirmStyle.Render("[Confirm]"),
		cancelStyle.Render("[Cancel]"),
	))
}
