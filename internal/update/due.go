package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleDueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	due := *m.Due
	switch msg.String() {
	case "enter", "d":
		m.App.CompleteItem(due.Group.ID, due.Item.ID)
		m.Due = nil
		m.Status = StatusBar{Text: fmt.Sprintf("done: %s", due.Item.Title)}
	case "s":
		m.App.SnoozeGroup(due.Group.ID, 5)
		m.Due = nil
		m.Status = StatusBar{Text: fmt.Sprintf("snoozed %s for 5m", due.Group.Title)}
	case "S":
		m.App.SnoozeGroup(due.Group.ID, 30)
		m.Due = nil
		m.Status = StatusBar{Text: fmt.Sprintf("snoozed %s for 30m", due.Group.Title)}
	case "esc", "x":
		m.App.DismissDue()
		m.Due = nil
		m.Status = StatusBar{Text: fmt.Sprintf("dismissed: %s", due.Item.Title)}
	default:
		return m, nil
	}
	m.refreshGroups()
	return m, nil
}

func (m Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.App.DeleteGroup(m.DeleteFor)
		m.DeleteFor = ""
		m.refreshGroups()
		m.Status = StatusBar{Text: "group deleted"}
	case "n", "esc":
		m.DeleteFor = ""
	default:
		return m, nil
	}
	m.syncBlocked()
	return m, nil
}
