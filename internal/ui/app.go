package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklog/internal/journal"
)

// Store is the slice of the task store the TUI needs. *store.Store
// satisfies it; tests substitute a fake.
type Store interface {
	ListTasks() ([]journal.Task, error)
	CreateTask(ctx context.Context, tag, title string) (string, error)
	CompleteTask(ctx context.Context, id string) error
	AddNote(ctx context.Context, id, text string) error
}

// Run starts the interactive task browser and blocks until the user quits.
func Run(s Store) error {
	p := tea.NewProgram(newAppModel(s), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

type pane int

const (
	paneTags pane = iota
	paneTasks
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeAddTag
	modeAddTitle
	modeNote
	modeSearch
)

const allTag = "(all)"

type appModel struct {
	store Store

	tasks  []journal.Task
	tags   []string
	filter string // search query, empty when inactive

	focus      pane
	tagCursor  int
	taskCursor int

	mode       inputMode
	input      textinput.Model
	pendingTag string // tag captured while collecting a title

	status    string
	statusErr bool
	quit      bool
}

func newAppModel(s Store) appModel {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 48

	m := appModel{store: s, input: ti, focus: paneTasks}
	m.reload()
	return m
}

// reload refreshes tasks and the tag list from the store, clamping cursors.
func (m *appModel) reload() {
	tasks, err := m.store.ListTasks()
	if err != nil {
		m.setError(err)
		return
	}
	m.tasks = tasks

	seen := make(map[string]bool)
	tags := []string{allTag}
	for _, t := range tasks {
		if !seen[t.Tag] {
			seen[t.Tag] = true
			tags = append(tags, t.Tag)
		}
	}
	sort.Strings(tags[1:])
	m.tags = tags

	if m.tagCursor >= len(m.tags) {
		m.tagCursor = len(m.tags) - 1
	}
	if n := len(m.visibleTasks()); m.taskCursor >= n && n > 0 {
		m.taskCursor = n - 1
	}
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *appModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

// visibleTasks applies the tag and search filters to the loaded tasks.
func (m appModel) visibleTasks() []journal.Task {
	tag := ""
	if m.tagCursor > 0 && m.tagCursor < len(m.tags) {
		tag = m.tags[m.tagCursor]
	}
	q := strings.ToLower(m.filter)

	var out []journal.Task
	for _, t := range m.tasks {
		if tag != "" && t.Tag != tag {
			continue
		}
		if q != "" && !taskMatches(t, q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func taskMatches(t journal.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, note := range t.Notes {
		if strings.Contains(strings.ToLower(note), q) {
			return true
		}
	}
	return false
}

func (m appModel) cursorTask() *journal.Task {
	visible := m.visibleTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(visible) {
		return nil
	}
	return &visible[m.taskCursor]
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode != modeNormal {
		return m.updateInput(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.quit = true
		return m, tea.Quit
	case "tab":
		if m.focus == paneTags {
			m.focus = paneTasks
		} else {
			m.focus = paneTags
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a":
		m.mode = modeAddTag
		m.input.Placeholder = "tag (e.g. dev)"
		m.input.SetValue("")
		m.input.Focus()
	case "d":
		if t := m.cursorTask(); t != nil {
			if err := m.store.CompleteTask(context.Background(), t.ID()); err != nil {
				m.setError(err)
			} else {
				m.setStatus("completed %s", t.ID())
				m.reload()
			}
		}
	case "n":
		if t := m.cursorTask(); t != nil {
			m.pendingTag = t.ID()
			m.mode = modeNote
			m.input.Placeholder = "note text"
			m.input.SetValue("")
			m.input.Focus()
		}
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "search titles and notes"
		m.input.SetValue(m.filter)
		m.input.Focus()
	case "r":
		m.reload()
		m.setStatus("reloaded")
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.taskCursor = 0
			m.setStatus("filter cleared")
		}
	}
	return m, nil
}

func (m *appModel) moveCursor(delta int) {
	if m.focus == paneTags {
		m.tagCursor += delta
		if m.tagCursor < 0 {
			m.tagCursor = 0
		}
		if m.tagCursor > len(m.tags)-1 {
			m.tagCursor = len(m.tags) - 1
		}
		m.taskCursor = 0
		return
	}
	n := len(m.visibleTasks())
	if n == 0 {
		m.taskCursor = 0
		return
	}
	m.taskCursor += delta
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
	if m.taskCursor > n-1 {
		m.taskCursor = n - 1
	}
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeNormal
		m.pendingTag = ""
		m.input.Blur()
		return m, nil
	case "enter":
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.mode {
	case modeAddTag:
		if !journal.ValidTag(value) {
			m.setError(fmt.Errorf("invalid tag %q: must be lowercase words joined by hyphens", value))
			return m, nil
		}
		m.pendingTag = value
		m.mode = modeAddTitle
		m.input.Placeholder = "task title"
		m.input.SetValue("")
		return m, nil
	case modeAddTitle:
		id, err := m.store.CreateTask(context.Background(), m.pendingTag, value)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus("created %s", id)
			m.reload()
		}
	case modeNote:
		if err := m.store.AddNote(context.Background(), m.pendingTag, value); err != nil {
			m.setError(err)
		} else {
			m.setStatus("noted on %s", m.pendingTag)
			m.reload()
		}
	case modeSearch:
		m.filter = value
		m.taskCursor = 0
		if value == "" {
			m.setStatus("filter cleared")
		} else {
			m.setStatus("filtering on %q", value)
		}
	}

	m.mode = modeNormal
	m.pendingTag = ""
	m.input.Blur()
	return m, nil
}

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("tasklog"))
	if m.filter != "" {
		b.WriteString(" " + StyleWarning.Render(fmt.Sprintf("filter: %s", m.filter)))
	}
	b.WriteString("\n\n")

	tagPane := m.renderTags()
	taskPane := m.renderTasks()

	tagStyle, taskStyle := StylePaneInactive, StylePaneActive
	if m.focus == paneTags {
		tagStyle, taskStyle = StylePaneActive, StylePaneInactive
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top, tagStyle.Render(tagPane), "  ", taskStyle.Render(taskPane))
	b.WriteString(panes)
	b.WriteString("\n")

	if m.mode != modeNormal {
		b.WriteString("\n" + m.inputPrompt() + " " + m.input.View() + "\n")
	}

	if m.status != "" {
		style := StyleStatusOK
		if m.statusErr {
			style = StyleStatusErr
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + StyleSubtle.Render("tab: switch pane • j/k: move • a: add • d: done • n: note • /: search • r: reload • q: quit"))
	return b.String()
}

func (m appModel) inputPrompt() string {
	switch m.mode {
	case modeAddTag:
		return StylePrimary.Render("tag:")
	case modeAddTitle:
		return StylePrimary.Render(fmt.Sprintf("title (%s):", m.pendingTag))
	case modeNote:
		return StylePrimary.Render(fmt.Sprintf("note (%s):", m.pendingTag))
	case modeSearch:
		return StylePrimary.Render("search:")
	}
	return ""
}

func (m appModel) renderTags() string {
	var lines []string
	for i, tag := range m.tags {
		line := "  " + tag
		if i == m.tagCursor {
			line = StyleCursorLine.Render("> " + tag)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderTasks() string {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return StyleSubtle.Render("no tasks")
	}

	var lines []string
	for i, t := range visible {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", box, t.ID(), t.Title)
		switch {
		case i == m.taskCursor && m.focus == paneTasks:
			line = StyleCursorLine.Render("> " + line)
		case t.Done:
			line = "  " + StyleDoneTask.Render(line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
		for _, note := range t.Notes {
			lines = append(lines, StyleNote.Render("        - "+note))
		}
	}
	return strings.Join(lines, "\n")
}
