package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type GroupItemData struct {
	ID      string
	Title   string
	Enabled bool
	Current bool
}

type GroupData struct {
	ID              string
	Title           string
	Color           string
	Enabled         bool
	IntervalMinutes int
	Countdown       string
	SnoozeBadge     string
	Items           []GroupItemData
}

type GroupsPanelData struct {
	Groups     []GroupData
	Cursor     int
	ItemCursor int
}

func RenderGroupsPanel(data GroupsPanelData) string {
	var b strings.Builder
	b.WriteString("groups:\n")
	b.WriteString("actions: [j/k]move [enter]done [space]pause [s]snooze [n]new [e]edit [D]delete\n")
	if len(data.Groups) == 0 {
		b.WriteString("\n(no groups yet, press [n] to create one)")
		return strings.TrimSpace(b.String())
	}
	for gi, g := range data.Groups {
		cursor := " "
		if gi == data.Cursor {
			cursor = ">"
		}
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.Color)).Render(g.Title)
		state := g.Countdown
		if !g.Enabled {
			state = "paused"
		}
		b.WriteString(fmt.Sprintf("\n%s %s (%dm) %s", cursor, title, g.IntervalMinutes, state))
		if g.SnoozeBadge != "" {
			b.WriteString(" " + g.SnoozeBadge)
		}
		b.WriteString("\n")
		for ii, item := range g.Items {
			mark := "[x]"
			if !item.Enabled {
				mark = "[ ]"
			}
			pointer := " "
			if gi == data.Cursor && ii == data.ItemCursor {
				pointer = "-"
			}
			current := ""
			if item.Current {
				current = " *"
			}
			b.WriteString(fmt.Sprintf("  %s %s %s%s\n", pointer, mark, item.Title, current))
		}
	}
	return strings.TrimSpace(b.String())
}

type ActivityEntryData struct {
	Time   string
	Action string
	Text   string
}

type ActivityPanelData struct {
	Visible    bool
	Entries    []ActivityEntryData
	Page       int
	TotalPages int
	Total      int
}

func RenderActivityPanel(data ActivityPanelData) string {
	if !data.Visible {
		return "activity: (hidden, [o] settings to enable)"
	}
	var b strings.Builder
	b.WriteString("today:\n")
	b.WriteString("actions: [[/]]page [c]copy [C]clear\n")
	if len(data.Entries) == 0 {
		b.WriteString("(nothing logged today)")
		return strings.TrimSpace(b.String())
	}
	for _, e := range data.Entries {
		b.WriteString(fmt.Sprintf("%s %s %s\n", e.Time, actionBadge(e.Action), e.Text))
	}
	if data.TotalPages > 1 {
		b.WriteString(fmt.Sprintf("\npage %d/%d (%d entries)", data.Page, data.TotalPages, data.Total))
	}
	return strings.TrimSpace(b.String())
}

func actionBadge(action string) string {
	switch action {
	case "done":
		return "[DONE]"
	case "snooze":
		return "[SNOOZE]"
	case "dismiss":
		return "[DISMISS]"
	default:
		return "[" + strings.ToUpper(action) + "]"
	}
}

func RenderScoreLine(score int, tierTitle, tierEmoji string, pointsToNext int) string {
	line := fmt.Sprintf("score: %d %s %s", score, tierEmoji, tierTitle)
	if pointsToNext > 0 {
		line += fmt.Sprintf(" (%d to next tier)", pointsToNext)
	}
	return line
}

type DueModalData struct {
	GroupTitle string
	ItemTitle  string
	Color      string
	SoundName  string
}

func RenderDueModal(data DueModalData) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(data.Color)).Render(data.GroupTitle)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n\n%s\n\n", title, data.ItemTitle))
	if data.SoundName != "" {
		b.WriteString(fmt.Sprintf("sound: %s\n", data.SoundName))
	}
	b.WriteString("[enter]done [s]snooze 5m [S]snooze 30m [esc]dismiss")
	return b.String()
}

type CelebrationData struct {
	Title   string
	Message string
	Emoji   string
	Color   string
}

func RenderCelebrationModal(data CelebrationData) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(data.Color)).Render(data.Emoji + " " + data.Title)
	return fmt.Sprintf("%s\n\n%s\n\npress any key to continue", title, data.Message)
}

type SoundOption struct {
	ID       string
	Name     string
	Selected bool
}

type SettingsData struct {
	Sounds          []SoundOption
	Cursor          int
	ShowActivityLog bool
	LogLimit        int
}

func RenderSettingsPanel(data SettingsData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString("keys: [j/k]sound [enter]select [a]activity log [+/-]limit [esc]close\n\n")
	b.WriteString("sound:\n")
	for i, s := range data.Sounds {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		mark := " "
		if s.Selected {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", cursor, mark, s.Name))
	}
	show := "off"
	if data.ShowActivityLog {
		show = "on"
	}
	b.WriteString(fmt.Sprintf("\nactivity log: %s (limit %d)", show, data.LogLimit))
	return b.String()
}

func RenderDeleteConfirm(title string) string {
	return fmt.Sprintf("delete group %q?\n\n[y]delete [n]keep", title)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

type EditorData struct {
	Mode          string
	TitleInput    string
	IntervalInput string
	ItemsInput    string
	Field         int
	ErrorText     string
}

func RenderEditor(data EditorData) string {
	marks := [3]string{" ", " ", " "}
	if data.Field >= 0 && data.Field < 3 {
		marks[data.Field] = ">"
	}
	var b strings.Builder
	b.WriteString(data.Mode + " group:\n")
	b.WriteString("keys: [tab]field [enter]save [esc]cancel\n\n")
	b.WriteString(fmt.Sprintf("%s title:    %s\n", marks[0], data.TitleInput))
	b.WriteString(fmt.Sprintf("%s interval: %s\n", marks[1], data.IntervalInput))
	b.WriteString(fmt.Sprintf("%s items:    %s\n", marks[2], data.ItemsInput))
	if data.ErrorText != "" {
		b.WriteString("\nerror: " + data.ErrorText)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatCountdown renders the remaining time until a group fires.
func FormatCountdown(remaining time.Duration) string {
	if remaining <= 0 {
		return "due now"
	}
	remaining = remaining.Round(time.Second)
	h := int(remaining.Hours())
	m := int(remaining.Minutes()) % 60
	s := int(remaining.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatRelative renders how long ago an instant happened.
func FormatRelative(at, now time.Time) string {
	elapsed := now.Sub(at)
	if elapsed < time.Minute {
		return "<1m ago"
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	}
	if elapsed < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(elapsed.Hours())/24)
}
