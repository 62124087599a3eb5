package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Done: func() (commands.Result, error) {
			g, ok := m.selectedGroup()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no group selected"}
			}
			item, ok := g.CurrentDueItem()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "group has no enabled item"}
			}
			m.App.CompleteItem(g.ID, item.ID)
			return commands.Result{Message: fmt.Sprintf("done: %s", item.Title)}, nil
		},
		Snooze: func(a commands.SnoozeArgs) (commands.Result, error) {
			g, ok := m.selectedGroup()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no group selected"}
			}
			m.App.SnoozeGroup(g.ID, a.Minutes)
			return commands.Result{Message: fmt.Sprintf("snoozed %s for %dm", g.Title, a.Minutes)}, nil
		},
		Pause: func() (commands.Result, error) {
			g, ok := m.selectedGroup()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no group selected"}
			}
			m.App.ToggleGroupEnabled(g.ID)
			return commands.Result{Message: fmt.Sprintf("toggled: %s", g.Title)}, nil
		},
		Interval: func(a commands.IntervalArgs) (commands.Result, error) {
			g, ok := m.selectedGroup()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no group selected"}
			}
			m.App.UpdateGroup(g.ID, g.Title, a.Minutes, g.Color)
			return commands.Result{Message: fmt.Sprintf("interval set to %dm", a.Minutes)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.App.ClearTodaysActivity()
			return commands.Result{Message: "today's activity cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.refreshGroups()
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
