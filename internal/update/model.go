package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/model"
	"github.com/remloop/remloop/internal/scheduler"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Down     string
	Up       string
	Complete string
	Pause    string
	Snooze   string
	New      string
	Edit     string
	Delete   string
	Settings string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type EditorMode string

const (
	EditorModeCreate EditorMode = "create"
	EditorModeEdit   EditorMode = "edit"
)

const editorFieldCount = 3

type EditorState struct {
	Active  bool
	Mode    EditorMode
	GroupID string
	Field   int
	Err     string
}

type SettingsState struct {
	Active bool
	Cursor int
}

type CelebrationState struct {
	Title   string
	Message string
	Emoji   string
	Color   string
}

// Sound describes a selectable notification sound.
type Sound struct {
	ID   string
	Name string
}

type Model struct {
	App *app.App

	Groups     []model.ReminderGroup
	Cursor     int
	ItemCursor int

	Due         *scheduler.DueGroupItem
	Celebration *CelebrationState
	Settings    SettingsState
	DeleteFor   string
	Editor      EditorState
	Palette     CommandPaletteState

	ActivityPage int
	HelpVisible  bool

	Status   StatusBar
	Keys     GlobalKeyMap
	Quitting bool

	DesktopEnabled  bool
	TerminalBell    bool
	Sounds          []Sound
	DefaultInterval int
	notifier        DesktopNotifier

	now time.Time

	titleInput    textinput.Model
	intervalInput textinput.Model
	itemsInput    textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
}

type RuntimeConfig struct {
	DesktopNotifications bool
	TerminalBell         bool
	Sounds               []Sound
	// DefaultIntervalMinutes pre-fills the create-group form.
	DefaultIntervalMinutes int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		TerminalBell: true,
		Sounds: []Sound{
			{ID: model.DefaultSoundID, Name: "Classic"},
		},
		DefaultIntervalMinutes: 30,
	}
}

func NewModel(a *app.App) Model {
	return NewModelWithConfig(a, NoopDesktopNotifier{}, DefaultRuntimeConfig())
}

func NewModelWithConfig(a *app.App, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := Model{
		App:             a,
		DesktopEnabled:  cfg.DesktopNotifications,
		TerminalBell:    cfg.TerminalBell,
		Sounds:          cfg.Sounds,
		DefaultInterval: cfg.DefaultIntervalMinutes,
		notifier:        NoopDesktopNotifier{},
		now:             time.Now(),
		Keys: GlobalKeyMap{
			Down:     "j",
			Up:       "k",
			Complete: "enter",
			Pause:    " ",
			Snooze:   "s",
			New:      "n",
			Edit:     "e",
			Delete:   "D",
			Settings: "o",
			Help:     "?",
			Quit:     "q",
		},
	}
	if notifier != nil {
		m.notifier = notifier
	}
	if len(m.Sounds) == 0 {
		m.Sounds = DefaultRuntimeConfig().Sounds
	}
	if m.DefaultInterval <= 0 {
		m.DefaultInterval = DefaultRuntimeConfig().DefaultIntervalMinutes
	}
	m.initInputs()
	m.refreshGroups()
	return m
}

func (m *Model) initInputs() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.CharLimit = 120
	m.titleInput.Width = 40

	m.intervalInput = textinput.New()
	m.intervalInput.Prompt = ""
	m.intervalInput.CharLimit = 4
	m.intervalInput.Width = 6

	m.itemsInput = textinput.New()
	m.itemsInput.Prompt = ""
	m.itemsInput.CharLimit = 400
	m.itemsInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 128
	m.commandInput.Width = 48

	m.helpModel = help.New()
}

func (m *Model) refreshGroups() {
	m.Groups = m.App.Groups()
	if m.Cursor >= len(m.Groups) {
		m.Cursor = len(m.Groups) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.clampItemCursor()
}

func (m *Model) clampItemCursor() {
	if len(m.Groups) == 0 {
		m.ItemCursor = 0
		return
	}
	n := len(m.Groups[m.Cursor].Items)
	if m.ItemCursor >= n {
		m.ItemCursor = n - 1
	}
	if m.ItemCursor < 0 {
		m.ItemCursor = 0
	}
}

func (m Model) selectedGroup() (model.ReminderGroup, bool) {
	if len(m.Groups) == 0 || m.Cursor < 0 || m.Cursor >= len(m.Groups) {
		return model.ReminderGroup{}, false
	}
	return m.Groups[m.Cursor], true
}

// anyModalOpen reports whether a blocking surface is on screen. The clock
// is frozen and scheduling is paused while one is open.
func (m Model) anyModalOpen() bool {
	return m.Due != nil || m.Celebration != nil || m.Settings.Active ||
		m.DeleteFor != "" || m.Editor.Active
}

// syncBlocked keeps the scheduler's block flag in step with the modals that
// are not the due presentation itself.
func (m *Model) syncBlocked() {
	m.App.SetBlocked(m.Celebration != nil || m.Settings.Active || m.DeleteFor != "" || m.Editor.Active)
}

func (m Model) soundName(id string) string {
	for _, s := range m.Sounds {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}

type tickMsg time.Time

type appEventMsg struct {
	Event app.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}
