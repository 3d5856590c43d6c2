package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/chmouel/lazystrings/internal/resource"
)

const (
	markerColumnWidth = 1
	minNameWidth      = 12
	minTextWidth      = 16
	fileColumnWidth   = 28
	cellPadding       = 2
	minTableHeight    = 3

	untranslatableMarker = "✗"
	newlineMarker        = "↵"
	ellipsis             = "…"
)

// View renders the table with a header and a footer, and any active modal
// screen on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
	if m.screens.IsActive() {
		return m.overlayPopup(base, m.screens.Current().View(), 3)
	}
	return base
}

func (m *Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1).
		Render("lazystrings")

	label := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	value := lipgloss.NewStyle().Foreground(m.theme.TextFg).Bold(true)

	parts := []string{title}
	if m.nameFilter != "" {
		parts = append(parts, label.Render("name:")+" "+value.Render(m.nameFilter))
	} else {
		file := m.fileFilter
		if m.config.ShowIcons && file != resource.AllFiles {
			file = iconWithSpace(deviconForName(file)) + file
		}
		parts = append(parts, label.Render("file:")+" "+value.Render(file))
	}
	parts = append(parts, label.Render(fmt.Sprintf("%d/%d", m.view.Len(), m.store.Len())))
	if m.store.Dirty() {
		parts = append(parts, lipgloss.NewStyle().Foreground(m.theme.WarnFg).Bold(true).Render("[modified]"))
	}

	line := strings.Join(parts, "  ")
	return lipgloss.NewStyle().Width(m.windowWidth).MaxWidth(m.windowWidth).Render(line)
}

func (m *Model) renderBody() string {
	if !m.loaded {
		return lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Height(m.tableHeight()).
			Render("Loading resource files...")
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border)
	return border.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	if m.notice.text != "" {
		return m.noticeStyle().MaxWidth(m.windowWidth).Render(m.notice.text)
	}
	hints := "f/F file • n name • enter edit • r rename • ctrl+s save • ? help • q quit"
	return lipgloss.NewStyle().
		Foreground(m.theme.MutedFg).
		MaxWidth(m.windowWidth).
		Render(hints)
}

func (m *Model) tableHeight() int {
	// header, footer and the two border rows
	return max(m.windowHeight-4, minTableHeight)
}

// resize recomputes column widths for the current window and rebuilds rows.
func (m *Model) resize() {
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(max(m.windowWidth-2, 0))
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.refreshRows()
}

func (m *Model) columns() []table.Column {
	available := m.windowWidth - 2
	count := 3
	if m.showFileColumn {
		available -= fileColumnWidth + cellPadding
		count = 4
	}
	available -= markerColumnWidth + cellPadding*(count-1)

	nameWidth := max(available/3, minNameWidth)
	textWidth := max(available-nameWidth, minTextWidth)

	cols := []table.Column{
		{Title: "", Width: markerColumnWidth},
		{Title: "Name", Width: nameWidth},
		{Title: "Text", Width: textWidth},
	}
	if m.showFileColumn {
		cols = append(cols, table.Column{Title: "File", Width: fileColumnWidth})
	}
	return cols
}

func (m *Model) refreshRows() {
	cols := m.table.Columns()
	if len(cols) < 3 {
		return
	}
	nameWidth := cols[1].Width
	textWidth := cols[2].Width
	fileWidth := 0
	if len(cols) > 3 {
		fileWidth = cols[3].Width
	}

	entries := m.view.Entries()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		marker := ""
		if !e.Translatable {
			marker = untranslatableMarker
		}
		row := table.Row{
			marker,
			truncate.StringWithTail(e.Name, uint(nameWidth), ellipsis),
			truncate.StringWithTail(displayText(e.Text), uint(textWidth), ellipsis),
		}
		if fileWidth > 0 {
			file := e.SourceFile()
			if m.config.ShowIcons {
				file = iconWithSpace(deviconForName(file)) + file
			}
			row = append(row, truncate.StringWithTail(file, uint(fileWidth), ellipsis))
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
}

// displayText keeps multi-line values on a single table row.
func displayText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", newlineMarker)
}

// overlayPopup draws popup over base starting at marginTop, keeping the parts
// of the base lines left and right of the popup.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	baseWidth := m.windowWidth
	popupWidth := lipgloss.Width(popupLines[0])
	leftPad := max((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}
		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}
	return strings.Join(baseLines, "\n")
}
