package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazystrings/internal/theme"
)

const helpText = `lazystrings help

**Navigation**
- j / k, Up / Down: Move between entries
- g / G: First / last entry
- ?: Toggle this help
- q: Quit (asks first when there are unsaved edits)

**Filtering**
- f / F: Next / previous file filter (All files, then each configured file)
- n: Show the selected entry's name across every file
- /: Filter by a typed name
- Esc: Clear the name filter and return to the file filter

**Editing**
- Enter / e: Edit the text of the selected entry (Enter adds a line, Ctrl+S applies)
- r: Rename the selected entry
- Entries marked translatable="false" are marked with ✗ and cannot be edited

**Files**
- Ctrl+S: Save every file (the previous version is kept as <file>.bak)
- Ctrl+R: Reload from disk (asks first when there are unsaved edits)
- c: Show or hide the source file column

Preferences (file filter, name filter, file column) are remembered between runs.`

// HelpScreen renders the key bindings in a scrollable viewport.
type HelpScreen struct {
	Viewport viewport.Model
	Thm      *theme.Theme
}

// NewHelpScreen sizes the help to fit within maxWidth x maxHeight.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme) *HelpScreen {
	width := min(80, max(30, maxWidth-4))
	height := max(5, maxHeight-6)

	vp := viewport.New(width, height)
	vp.SetContent(renderHelp(helpText, width, thm))
	return &HelpScreen{Viewport: vp, Thm: thm}
}

func renderHelp(text string, width int, thm *theme.Theme) string {
	heading := lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			lines[i] = heading.Render(strings.Trim(line, "*"))
		}
	}
	return wrap.String(strings.Join(lines, "\n"), width)
}

// Type returns the screen type.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update scrolls the help or closes it.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEsc, keyQ, "?", keyCtrlC:
		return nil, nil
	}
	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the help box.
func (s *HelpScreen) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Render(s.Viewport.View())
}
