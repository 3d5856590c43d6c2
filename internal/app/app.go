// Package app implements the Bubble Tea model of the lazystrings editor.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	appscreen "github.com/chmouel/lazystrings/internal/app/screen"
	"github.com/chmouel/lazystrings/internal/app/services"
	"github.com/chmouel/lazystrings/internal/config"
	"github.com/chmouel/lazystrings/internal/log"
	"github.com/chmouel/lazystrings/internal/resource"
	"github.com/chmouel/lazystrings/internal/theme"
)

// saveSuppressWindow hides watcher events caused by our own writes.
const saveSuppressWindow = time.Second

// Message types for the Bubble Tea app.
type (
	entriesLoadedMsg struct {
		store  *resource.Store
		report resource.LoadReport
		err    error
	}
	fileChangedMsg struct {
		path string
	}
)

type severity int

const (
	severityInfo severity = iota
	severitySuccess
	severityWarn
	severityError
)

type notice struct {
	text     string
	severity severity
}

// Model is the root Bubble Tea model: a table of entries filtered either by
// source file or by name, with modal screens for editing.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme
	paths  []string

	store *resource.Store
	view  *resource.View
	prefs *services.PreferencesService
	watch *services.FileWatchService

	table   table.Model
	screens *appscreen.Manager

	files          []string
	fileFilter     string
	nameFilter     string
	showFileColumn bool

	loaded       bool
	windowWidth  int
	windowHeight int
	notice       notice
	quitting     bool
}

// NewModel creates the model for cfg. Preferences are read from prefs, which
// may be nil to run without persistence.
func NewModel(cfg *config.AppConfig, prefs *services.PreferencesService) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if prefs == nil {
		prefs = services.NewPreferencesService("")
	}

	saved, err := prefs.Load()
	if err != nil {
		log.Warnf("preferences: %v", err)
	}

	thm := theme.GetTheme(cfg.Theme)
	paths := cfg.ResourcePaths()
	store := resource.NewStore(paths, resource.WithLogger(log.Printf))

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(thm.MutedFg).
		BorderForeground(thm.Border).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(thm.TextFg)
	styles.Selected = styles.Selected.
		Foreground(thm.AccentFg).
		Background(thm.Accent).
		Bold(true)
	t.SetStyles(styles)

	m := &Model{
		config:         cfg,
		theme:          thm,
		paths:          paths,
		store:          store,
		view:           resource.NewView(store, nil),
		prefs:          prefs,
		table:          t,
		screens:        appscreen.NewManager(),
		files:          append([]string{resource.AllFiles}, store.Files()...),
		fileFilter:     saved.SelectedFile,
		nameFilter:     saved.SelectedName,
		showFileColumn: saved.ShowFileColumn,
	}
	if cfg.WatchFiles {
		m.watch = services.NewFileWatchService(log.Printf)
	}
	if !m.hasFile(m.fileFilter) {
		m.fileFilter = resource.AllFiles
	}
	m.table.SetColumns(m.columns())
	return m
}

// Init starts loading the configured files off the UI goroutine.
func (m *Model) Init() tea.Cmd {
	return loadEntriesCmd(m.paths)
}

func loadEntriesCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		store := resource.NewStore(paths, resource.WithLogger(log.Printf))
		report, err := store.Load()
		return entriesLoadedMsg{store: store, report: report, err: err}
	}
}

func (m *Model) waitForFileChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	ch := m.watch.NextEvent()
	if ch == nil {
		return nil
	}
	done := m.watch.Done
	return func() tea.Msg {
		select {
		case path, ok := <-ch:
			if !ok {
				return nil
			}
			return fileChangedMsg{path: path}
		case <-done:
			return nil
		}
	}
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.resize()
		return m, nil

	case entriesLoadedMsg:
		return m, m.handleEntriesLoaded(msg)

	case fileChangedMsg:
		if m.watch != nil {
			m.watch.ResetWaiting()
		}
		m.notify(fmt.Sprintf("%s changed on disk, Ctrl+R to reload", resource.SourceID(msg.path)), severityWarn)
		return m, m.waitForFileChange()

	case tea.KeyMsg:
		if scr := m.screens.Current(); scr != nil {
			next, cmd := scr.Update(msg)
			if next == nil {
				m.screens.Remove(scr)
			}
			return m, cmd
		}
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleEntriesLoaded(msg entriesLoadedMsg) tea.Cmd {
	selected := m.selectedEntry()
	m.store = msg.store
	m.view = resource.NewView(m.store, m.predicate())
	m.loaded = true
	m.refreshRows()
	if selected != nil {
		m.selectMatching(selected)
	}

	switch {
	case msg.err != nil && len(msg.report.Failed) == 0 && len(msg.report.Conflicts) > 0:
		log.Warnf("load: %v", msg.err)
		m.notify(fmt.Sprintf("Loaded %d entries, %d file(s) share a source id and will not be saved", m.store.Len(), len(msg.report.Conflicts)), severityWarn)
	case msg.err != nil:
		log.Warnf("load: %v", msg.err)
		m.notify(fmt.Sprintf("Loaded %d entries, %d file(s) failed to parse and will not be saved", m.store.Len(), len(msg.report.Failed)), severityError)
	case len(m.paths) == 0:
		m.notify("No resource files configured, see --resource/-r or the files config key", severityWarn)
	case msg.report.Rejected > 0:
		m.notify(fmt.Sprintf("Loaded %d entries, skipped %d without a name", m.store.Len(), msg.report.Rejected), severityWarn)
	default:
		m.notify(fmt.Sprintf("Loaded %d entries from %d file(s)", m.store.Len(), len(msg.report.Loaded)), severityInfo)
	}

	if m.watch == nil || m.watch.Started {
		return nil
	}
	started, err := m.watch.Start(m.paths)
	if err != nil {
		log.Warnf("file watcher: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForFileChange()
}

// Close releases background resources.
func (m *Model) Close() {
	if m.watch != nil {
		m.watch.Stop()
	}
}

// Dirty reports whether there are unsaved edits.
func (m *Model) Dirty() bool {
	return m.store.Dirty()
}

func (m *Model) notify(text string, sev severity) {
	m.notice = notice{text: text, severity: sev}
	log.Printf("notify: %s", text)
}

func (m *Model) noticeStyle() lipgloss.Style {
	style := lipgloss.NewStyle()
	switch m.notice.severity {
	case severitySuccess:
		return style.Foreground(m.theme.SuccessFg)
	case severityWarn:
		return style.Foreground(m.theme.WarnFg)
	case severityError:
		return style.Foreground(m.theme.ErrorFg).Bold(true)
	default:
		return style.Foreground(m.theme.Cyan)
	}
}

func (m *Model) hasFile(id string) bool {
	return lo.Contains(m.files, id)
}

func (m *Model) predicate() resource.Predicate {
	if m.nameFilter != "" {
		return resource.ByName(m.nameFilter)
	}
	return resource.ByFile(m.fileFilter)
}

func (m *Model) selectedEntry() *resource.Entry {
	if !m.loaded {
		return nil
	}
	return m.view.At(m.table.Cursor())
}

func (m *Model) selectMatching(e *resource.Entry) {
	for i, candidate := range m.view.Entries() {
		if candidate.SourceFile() == e.SourceFile() && candidate.Name == e.Name {
			m.table.SetCursor(i)
			return
		}
	}
}

func (m *Model) currentPreferences() services.Preferences {
	return services.Preferences{
		SelectedFile:   m.fileFilter,
		SelectedName:   m.nameFilter,
		ShowFileColumn: m.showFileColumn,
	}
}

func (m *Model) savePreferences() {
	if err := m.prefs.Save(m.currentPreferences()); err != nil {
		log.Warnf("preferences: %v", err)
	}
}
