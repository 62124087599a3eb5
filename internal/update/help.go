package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/remloop/remloop/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpIntro = "# remloop\n\n" +
	"Recurring reminder groups on a cycle. Each group surfaces one item at a " +
	"time; completing the last enabled item closes the loop and scores a point."

func (m Model) renderHelp() string {
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	bindings := m.helpBindings()
	return strings.Join([]string{
		views.RenderMarkdown(helpIntro),
		strings.Join(plain, "\n"),
		m.helpModel.View(helpKeyMap{short: bindings, full: [][]key.Binding{bindings}}),
	}, "\n\n")
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "select group"},
		{Key: "J/K", Action: "reorder group"},
		{Key: "enter", Action: "mark current item done"},
		{Key: "space", Action: "pause/resume group"},
		{Key: "s", Action: "snooze group 5m"},
		{Key: "h/l", Action: "select item"},
		{Key: "t", Action: "toggle item"},
		{Key: "x", Action: "delete item"},
		{Key: "n/e/D", Action: "new / edit / delete group"},
		{Key: "[/]", Action: "activity page"},
		{Key: "c", Action: "copy today to clipboard"},
		{Key: "C", Action: "clear today's activity"},
		{Key: "o", Action: "settings"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
