package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/views"
)

func (m *Model) openSettings() {
	m.Settings = SettingsState{Active: true}
	selected := m.App.Settings().SelectedSoundID
	for i, s := range m.Sounds {
		if s.ID == selected {
			m.Settings.Cursor = i
		}
	}
	m.syncBlocked()
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", m.Keys.Settings:
		m.Settings = SettingsState{}
		m.syncBlocked()
	case m.Keys.Down:
		if m.Settings.Cursor < len(m.Sounds)-1 {
			m.Settings.Cursor++
		}
	case m.Keys.Up:
		if m.Settings.Cursor > 0 {
			m.Settings.Cursor--
		}
	case "enter":
		if m.Settings.Cursor < len(m.Sounds) {
			m.App.SetSelectedSound(m.Sounds[m.Settings.Cursor].ID)
		}
	case "a":
		m.App.SetShowActivityLog(!m.App.Settings().ShowActivityLog)
	case "+":
		m.App.SetActivityLogLimit(m.App.Settings().ActivityLogLimit + 5)
	case "-":
		m.App.SetActivityLogLimit(m.App.Settings().ActivityLogLimit - 5)
	}
	return m, nil
}

func (m Model) renderSettings() string {
	settings := m.App.Settings()
	data := views.SettingsData{
		Cursor:          m.Settings.Cursor,
		ShowActivityLog: settings.ShowActivityLog,
		LogLimit:        settings.ActivityLogLimit,
	}
	for _, s := range m.Sounds {
		data.Sounds = append(data.Sounds, views.SoundOption{
			ID:       s.ID,
			Name:     s.Name,
			Selected: s.ID == settings.SelectedSoundID,
		})
	}
	return views.RenderSettingsPanel(data)
}
