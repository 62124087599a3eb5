package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/views"
)

// How long the "(snoozed Nm)" badge stays visible after a snooze.
const snoozeBadgeWindow = 30 * time.Second

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Down:
		if m.Cursor < len(m.Groups)-1 {
			m.Cursor++
			m.ItemCursor = 0
		}
	case m.Keys.Up:
		if m.Cursor > 0 {
			m.Cursor--
			m.ItemCursor = 0
		}
	case "J":
		if g, ok := m.selectedGroup(); ok {
			m.App.MoveGroup(g.ID, 1)
			m.refreshGroups()
			if m.Cursor < len(m.Groups)-1 {
				m.Cursor++
			}
		}
	case "K":
		if g, ok := m.selectedGroup(); ok {
			m.App.MoveGroup(g.ID, -1)
			m.refreshGroups()
			if m.Cursor > 0 {
				m.Cursor--
			}
		}
	case "l":
		if g, ok := m.selectedGroup(); ok && m.ItemCursor < len(g.Items)-1 {
			m.ItemCursor++
		}
	case "h":
		if m.ItemCursor > 0 {
			m.ItemCursor--
		}
	case m.Keys.Complete:
		if g, ok := m.selectedGroup(); ok {
			if item, ok := g.CurrentDueItem(); ok {
				m.App.CompleteItem(g.ID, item.ID)
				m.refreshGroups()
				m.Status = StatusBar{Text: fmt.Sprintf("done: %s", item.Title)}
			}
		}
	case m.Keys.Pause, "space":
		if g, ok := m.selectedGroup(); ok {
			m.App.ToggleGroupEnabled(g.ID)
			m.refreshGroups()
			if m.Groups[m.Cursor].Enabled {
				m.Status = StatusBar{Text: fmt.Sprintf("resumed: %s", g.Title)}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("paused: %s", g.Title)}
			}
		}
	case m.Keys.Snooze:
		if g, ok := m.selectedGroup(); ok {
			m.App.SnoozeGroup(g.ID, 5)
			m.refreshGroups()
			m.Status = StatusBar{Text: fmt.Sprintf("snoozed %s for 5m", g.Title)}
		}
	case "t":
		if g, ok := m.selectedGroup(); ok && m.ItemCursor < len(g.Items) {
			m.App.ToggleItemEnabled(g.ID, g.Items[m.ItemCursor].ID)
			m.refreshGroups()
		}
	case "x":
		if g, ok := m.selectedGroup(); ok && m.ItemCursor < len(g.Items) {
			m.App.DeleteGroupItem(g.ID, g.Items[m.ItemCursor].ID)
			m.refreshGroups()
		}
	case m.Keys.New:
		m.openEditor(EditorModeCreate, "")
	case m.Keys.Edit:
		if g, ok := m.selectedGroup(); ok {
			m.openEditor(EditorModeEdit, g.ID)
		}
	case m.Keys.Delete:
		if g, ok := m.selectedGroup(); ok {
			m.DeleteFor = g.ID
			m.syncBlocked()
		}
	case "]":
		m.ActivityPage++
		m.clampActivityPage()
	case "[":
		if m.ActivityPage > 0 {
			m.ActivityPage--
		}
	case "c":
		m = m.copyTodayToClipboard()
	case "C":
		m.App.ClearTodaysActivity()
		m.ActivityPage = 0
		m.Status = StatusBar{Text: "today's activity cleared"}
	}
	return m, nil
}

func (m Model) renderGroupsPane() string {
	data := views.GroupsPanelData{Cursor: m.Cursor, ItemCursor: m.ItemCursor}
	for _, g := range m.Groups {
		current, hasCurrent := g.CurrentDueItem()
		gd := views.GroupData{
			ID:              g.ID,
			Title:           g.Title,
			Color:           g.Color,
			Enabled:         g.Enabled,
			IntervalMinutes: g.IntervalMinutes,
			Countdown:       views.FormatCountdown(g.NextDueTime.Sub(m.now)),
		}
		if !g.Enabled && g.PausedRemaining != nil {
			gd.Countdown = views.FormatCountdown(*g.PausedRemaining)
		}
		if g.SnoozedAt != nil && m.now.Sub(*g.SnoozedAt) < snoozeBadgeWindow {
			gd.SnoozeBadge = fmt.Sprintf("(snoozed %dm)", g.SnoozedForMinutes)
		}
		for _, item := range g.Items {
			gd.Items = append(gd.Items, views.GroupItemData{
				ID:      item.ID,
				Title:   item.Title,
				Enabled: item.Enabled,
				Current: hasCurrent && item.ID == current.ID,
			})
		}
		data.Groups = append(data.Groups, gd)
	}
	return views.RenderGroupsPanel(data)
}
