package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/scoring"
	"github.com/remloop/remloop/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForAppEvent(m.App.Events()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case tickMsg:
		// The visible clock freezes while a blocking surface is open;
		// countdowns resume from real time once it closes.
		if !m.anyModalOpen() {
			m.now = time.Time(typed)
			m.refreshGroups()
		}
		return m, tickCmd()

	case appEventMsg:
		return m.handleAppEvent(typed.Event)

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		m.App.Close()
		return m, tea.Quit
	}

	if m.Due != nil {
		return m.handleDueKey(msg)
	}
	if m.Celebration != nil {
		m.Celebration = nil
		m.syncBlocked()
		return m, nil
	}
	if m.DeleteFor != "" {
		return m.handleDeleteConfirmKey(msg)
	}
	if m.Settings.Active {
		return m.handleSettingsKey(msg)
	}
	if m.Editor.Active {
		return m.handleEditorKey(msg)
	}
	if m.Palette.Active {
		next := m.handlePaletteKey(msg)
		return next, nil
	}

	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Settings:
		m.openSettings()
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		m.App.Close()
		return m, tea.Quit
	}

	return m.handleListKey(msg)
}

func (m Model) handleAppEvent(ev app.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForAppEvent(m.App.Events())}

	switch typed := ev.(type) {
	case app.DueEvent:
		if due, ok := m.App.Due(); ok {
			m.Due = &due
		}
		m.refreshGroups()
		m.Status = StatusBar{Text: fmt.Sprintf("due: %s / %s", typed.Group.Title, typed.Item.Title)}
		m.notify(typed.Group.Title, typed.Item.Title, "info")
		if m.TerminalBell {
			cmds = append(cmds, tea.Printf("\a"))
		}

	case app.FirstPointEvent:
		info := scoring.InfoFor(scoring.TierDefault)
		m.Celebration = &CelebrationState{
			Title:   "First point!",
			Message: "You completed a full loop. Keep the streak going.",
			Emoji:   info.Emoji,
			Color:   info.Color,
		}
		m.syncBlocked()

	case app.TierUpgradeEvent:
		m.Celebration = &CelebrationState{
			Title:   typed.Info.Title,
			Message: typed.Info.Message,
			Emoji:   typed.Info.Emoji,
			Color:   typed.Info.Color,
		}
		m.syncBlocked()
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := m.renderGroupsPane()
	right := m.renderRightPane()

	modal := ""
	switch {
	case m.Due != nil:
		modal = views.RenderDueModal(views.DueModalData{
			GroupTitle: m.Due.Group.Title,
			ItemTitle:  m.Due.Item.Title,
			Color:      m.Due.Group.Color,
			SoundName:  m.soundName(m.App.Settings().SelectedSoundID),
		})
	case m.Celebration != nil:
		modal = views.RenderCelebrationModal(views.CelebrationData{
			Title:   m.Celebration.Title,
			Message: m.Celebration.Message,
			Emoji:   m.Celebration.Emoji,
			Color:   m.Celebration.Color,
		})
	case m.DeleteFor != "":
		title := m.DeleteFor
		for _, g := range m.Groups {
			if g.ID == m.DeleteFor {
				title = g.Title
			}
		}
		modal = views.RenderDeleteConfirm(title)
	case m.Settings.Active:
		modal = m.renderSettings()
	case m.Editor.Active:
		modal = m.renderEditor()
	}

	tier := m.App.Tier()
	header := fmt.Sprintf("remloop | %s", views.RenderScoreLine(m.App.Score(), tier.Title, tier.Emoji, m.pointsToNextTier()))

	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		Modal:      modal,
		Footer: fmt.Sprintf("keys: %s/%s move | %s done | %s pause | %s snooze | %s new | %s settings | / cmd | %s help | %s quit",
			m.Keys.Down, m.Keys.Up, m.Keys.Complete, "space", m.Keys.Snooze, m.Keys.New, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderRightPane() string {
	if m.HelpVisible {
		return m.renderHelp()
	}
	out := m.renderActivityPane()
	if m.Palette.Active {
		out = views.RenderCommandPalette(true, m.commandInput.Value()) + "\n\n" + out
	}
	return out
}

func (m Model) pointsToNextTier() int {
	score := m.App.Score()
	for _, threshold := range scoring.Thresholds() {
		if score < threshold {
			return threshold - score
		}
	}
	return 0
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForAppEvent(ch <-chan app.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return appEventMsg{Event: ev}
	}
}
