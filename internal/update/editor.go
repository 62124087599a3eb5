package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/model"
	"github.com/remloop/remloop/internal/views"
)

func (m *Model) openEditor(mode EditorMode, groupID string) {
	m.Editor = EditorState{Active: true, Mode: mode, GroupID: groupID}
	m.titleInput.SetValue("")
	m.intervalInput.SetValue(strconv.Itoa(m.DefaultInterval))
	m.itemsInput.SetValue("")
	if mode == EditorModeEdit {
		for _, g := range m.Groups {
			if g.ID == groupID {
				m.titleInput.SetValue(g.Title)
				m.intervalInput.SetValue(strconv.Itoa(g.IntervalMinutes))
				titles := make([]string, 0, len(g.Items))
				for _, item := range g.Items {
					titles = append(titles, item.Title)
				}
				m.itemsInput.SetValue(strings.Join(titles, ", "))
			}
		}
	}
	m.focusEditorField(0)
	m.syncBlocked()
}

func (m *Model) focusEditorField(field int) {
	m.Editor.Field = field
	m.titleInput.Blur()
	m.intervalInput.Blur()
	m.itemsInput.Blur()
	switch field {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.intervalInput.Focus()
	case 2:
		m.itemsInput.Focus()
	}
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editor = EditorState{}
		m.syncBlocked()
		return m, nil
	case "tab":
		m.focusEditorField((m.Editor.Field + 1) % editorFieldCount)
		return m, nil
	case "enter":
		return m.saveEditor()
	}

	var cmd tea.Cmd
	switch m.Editor.Field {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.intervalInput, cmd = m.intervalInput.Update(msg)
	case 2:
		m.itemsInput, cmd = m.itemsInput.Update(msg)
	}
	return m, cmd
}

func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	interval, err := strconv.Atoi(strings.TrimSpace(m.intervalInput.Value()))
	if err != nil {
		m.Editor.Err = "interval must be a number of minutes"
		return m, nil
	}
	interval = model.ClampInterval(interval)

	if m.Editor.Mode == EditorModeEdit {
		m.App.UpdateGroup(m.Editor.GroupID, title, interval, "")
		m.Editor = EditorState{}
		m.syncBlocked()
		m.refreshGroups()
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", title)}
		return m, nil
	}

	items := splitItemTitles(m.itemsInput.Value())
	if err := m.App.CreateGroup(title, interval, "", items); err != nil {
		m.Editor.Err = "at least one item title is required"
		return m, nil
	}
	m.Editor = EditorState{}
	m.syncBlocked()
	m.Cursor = 0
	m.refreshGroups()
	m.Status = StatusBar{Text: fmt.Sprintf("created: %s", m.Groups[0].Title)}
	return m, nil
}

func (m Model) renderEditor() string {
	return views.RenderEditor(views.EditorData{
		Mode:          string(m.Editor.Mode),
		TitleInput:    m.titleInput.View(),
		IntervalInput: m.intervalInput.View(),
		ItemsInput:    m.itemsInput.View(),
		Field:         m.Editor.Field,
		ErrorText:     m.Editor.Err,
	})
}

func splitItemTitles(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
