package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	appscreen "github.com/chmouel/lazystrings/internal/app/screen"
	"github.com/chmouel/lazystrings/internal/log"
	"github.com/chmouel/lazystrings/internal/resource"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.requestQuit()

	case "?":
		m.screens.Push(appscreen.NewHelpScreen(m.windowWidth, m.windowHeight, m.theme))
		return m, nil

	case "f":
		m.cycleFileFilter(1)
		return m, nil

	case "F":
		m.cycleFileFilter(-1)
		return m, nil

	case "n":
		if e := m.selectedEntry(); e != nil {
			m.nameFilter = e.Name
			m.applyFilter()
		}
		return m, nil

	case "/":
		m.showNameFilter()
		return m, nil

	case "esc":
		if m.nameFilter != "" {
			m.nameFilter = ""
			m.applyFilter()
		}
		return m, nil

	case "enter", "e":
		m.showEditText()
		return m, nil

	case "r":
		m.showRename()
		return m, nil

	case "c":
		m.showFileColumn = !m.showFileColumn
		m.resize()
		return m, nil

	case "ctrl+s":
		m.save()
		return m, nil

	case "ctrl+r":
		return m, m.requestReload()
	}

	if !m.loaded {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) requestQuit() tea.Cmd {
	if !m.store.Dirty() {
		return m.quit()
	}
	confirm := appscreen.NewConfirmScreen("You have unsaved changes.\nQuit without saving?", m.theme)
	confirm.OnConfirm = m.quit
	m.screens.Push(confirm)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.savePreferences()
	return tea.Quit
}

func (m *Model) requestReload() tea.Cmd {
	if !m.store.Dirty() {
		return loadEntriesCmd(m.paths)
	}
	confirm := appscreen.NewConfirmScreen("Reloading discards unsaved changes.\nReload anyway?", m.theme)
	confirm.OnConfirm = func() tea.Cmd {
		return loadEntriesCmd(m.paths)
	}
	m.screens.Push(confirm)
	return nil
}

// cycleFileFilter moves the file filter by step through AllFiles followed
// by every configured file. Selecting a file clears the name filter.
func (m *Model) cycleFileFilter(step int) {
	if len(m.files) == 0 {
		return
	}
	pos := 0
	for i, f := range m.files {
		if f == m.fileFilter {
			pos = i
			break
		}
	}
	pos = (pos + step + len(m.files)) % len(m.files)
	m.fileFilter = m.files[pos]
	m.nameFilter = ""
	m.applyFilter()
}

func (m *Model) showNameFilter() {
	input := appscreen.NewInputScreen("Show entries named", "string name", m.nameFilter, m.theme)
	input.Context = "Matches the exact name in every file. Empty clears the filter."
	input.OnSubmit = func(value string) tea.Cmd {
		m.nameFilter = strings.TrimSpace(value)
		m.applyFilter()
		return nil
	}
	m.screens.Push(input)
}

func (m *Model) showEditText() {
	e := m.selectedEntry()
	if e == nil {
		return
	}
	if !e.Translatable {
		m.notify(fmt.Sprintf("%s is marked translatable=\"false\"", e.Name), severityWarn)
		return
	}
	input := appscreen.NewTextareaScreen("Edit text", "translation", e.Text, m.windowWidth, m.windowHeight, m.theme)
	input.Context = fmt.Sprintf("%s in %s", e.Name, e.SourceFile())
	input.OnSubmit = func(value string) tea.Cmd {
		if !input.Changed() || value == e.Text {
			return nil
		}
		m.store.SetText(e, value)
		m.refreshRows()
		m.notify(fmt.Sprintf("Updated %s", e.Name), severityInfo)
		return nil
	}
	m.screens.Push(input)
}

func (m *Model) showRename() {
	e := m.selectedEntry()
	if e == nil {
		return
	}
	input := appscreen.NewInputScreen("Rename string", "string name", e.Name, m.theme)
	input.Context = e.SourceFile()
	input.Validate = func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "Name cannot be empty."
		}
		return ""
	}
	input.OnSubmit = func(value string) tea.Cmd {
		name := strings.TrimSpace(value)
		if name == e.Name {
			return nil
		}
		old := e.Name
		if err := m.store.SetName(e, name); err != nil {
			m.notify(err.Error(), severityError)
			return nil
		}
		m.applyFilter()
		m.selectMatching(e)
		m.notify(fmt.Sprintf("Renamed %s to %s", old, name), severityInfo)
		return nil
	}
	m.screens.Push(input)
}

func (m *Model) save() {
	if !m.loaded {
		return
	}
	if m.watch != nil {
		m.watch.Suppress(saveSuppressWindow)
	}
	err := m.store.Save()
	m.savePreferences()
	if err != nil {
		log.Warnf("save: %v", err)
		if m.store.Dirty() {
			m.notify(fmt.Sprintf("Save failed: %s", flattenError(err)), severityError)
		} else {
			m.notify(fmt.Sprintf("Saved, skipped: %s", flattenError(err)), severityWarn)
		}
		return
	}
	m.notify(fmt.Sprintf("Saved %d file(s), backups written with %s", len(m.store.Files()), resource.BackupSuffix), severitySuccess)
}

// applyFilter re-evaluates the view and keeps the cursor in range.
func (m *Model) applyFilter() {
	m.view.SetPredicate(m.predicate())
	m.refreshRows()
	if m.table.Cursor() >= m.view.Len() {
		m.table.SetCursor(max(m.view.Len()-1, 0))
	}
}

// flattenError folds a multi-line error into one status line.
func flattenError(err error) string {
	return strings.TrimSpace(strings.NewReplacer("\n\t* ", " ", "\n", " ").Replace(err.Error()))
}
