package update

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/remloop/remloop/internal/views"
)

func (m *Model) clampActivityPage() {
	page := m.App.TodayPage(m.ActivityPage)
	m.ActivityPage = page.CurrentPage
}

func (m Model) renderActivityPane() string {
	settings := m.App.Settings()
	if !settings.ShowActivityLog {
		return views.RenderActivityPanel(views.ActivityPanelData{Visible: false})
	}
	page := m.App.TodayPage(m.ActivityPage)
	data := views.ActivityPanelData{
		Visible:    true,
		Page:       page.CurrentPage + 1,
		TotalPages: page.TotalPages,
		Total:      m.todayTotal(),
	}
	for _, e := range page.Entries {
		data.Entries = append(data.Entries, views.ActivityEntryData{
			Time:   views.FormatRelative(e.At, m.now),
			Action: string(e.Action),
			Text:   e.Text,
		})
	}
	return views.RenderActivityPanel(data)
}

func (m Model) todayTotal() int {
	total := 0
	first := m.App.TodayPage(0)
	for p := 0; p < first.TotalPages; p++ {
		total += len(m.App.TodayPage(p).Entries)
	}
	return total
}

// copyTodayToClipboard exports the full day, not just the visible page.
func (m Model) copyTodayToClipboard() Model {
	var lines []string
	first := m.App.TodayPage(0)
	for p := 0; p < first.TotalPages; p++ {
		for _, e := range m.App.TodayPage(p).Entries {
			line := fmt.Sprintf("%s %s %s", e.At.Local().Format("15:04"), strings.ToUpper(string(e.Action)), e.Text)
			if e.SnoozeForMinutes > 0 {
				line += fmt.Sprintf(" (%dm)", e.SnoozeForMinutes)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		m.Status = StatusBar{Text: "nothing logged today"}
		return m
	}
	if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("clipboard copy failed: %v", err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("copied %d entries", len(lines))}
	return m
}
