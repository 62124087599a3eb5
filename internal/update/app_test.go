package update

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/model"
	"github.com/remloop/remloop/internal/storage"
)

func newTestModel(t *testing.T, groups []model.ReminderGroup) (Model, *app.App) {
	t.Helper()
	store, err := storage.OpenSQLite(t.TempDir() + "/ui.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if len(groups) > 0 {
		if err := store.SaveGroups(context.Background(), groups); err != nil {
			t.Fatalf("seed groups: %v", err)
		}
	}
	a := app.New(store, 8)
	t.Cleanup(a.Close)
	return NewModel(a), a
}

func nextAppEvent(t *testing.T, a *app.App) appEventMsg {
	t.Helper()
	select {
	case ev, ok := <-a.Events():
		if !ok {
			t.Fatal("event channel closed")
		}
		return appEventMsg{Event: ev}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for app event")
		return appEventMsg{}
	}
}

func testGroups(now time.Time) []model.ReminderGroup {
	return []model.ReminderGroup{
		{
			ID: "g1", Title: "Breaks", IntervalMinutes: 30, Color: "#3b82f6",
			Enabled: true, NextDueTime: now.Add(30 * time.Minute), CreatedAt: now,
			Items: []model.ReminderGroupItem{
				{ID: "i1", Title: "Stretch", Enabled: true},
				{ID: "i2", Title: "Water", Enabled: true},
			},
		},
		{
			ID: "g2", Title: "Focus", IntervalMinutes: 60, Color: "#22c55e",
			Enabled: true, NextDueTime: now.Add(time.Hour), CreatedAt: now,
			Items: []model.ReminderGroupItem{
				{ID: "i3", Title: "Review priority", Enabled: true},
			},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.anyModalOpen() {
		t.Fatal("no modal should be open initially")
	}
	if len(m.Groups) != 0 {
		t.Fatalf("expected empty groups, got %d", len(m.Groups))
	}
}

func TestKeyNavigationMovesCursor(t *testing.T) {
	m, _ := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(runes("j"))
	next := updated.(Model)
	if next.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", next.Cursor)
	}

	updated, _ = next.Update(runes("k"))
	next = updated.(Model)
	if next.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0", next.Cursor)
	}
}

func TestCompleteKeyMarksCurrentItemDone(t *testing.T) {
	m, a := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if !strings.Contains(next.Status.Text, "Stretch") {
		t.Fatalf("status = %q, want completion of Stretch", next.Status.Text)
	}
	groups := a.Groups()
	if groups[0].CurrentItemIndex != 1 {
		t.Fatalf("cursor = %d, want 1", groups[0].CurrentItemIndex)
	}
}

func TestPauseKeyTogglesGroup(t *testing.T) {
	m, a := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if a.Groups()[0].Enabled {
		t.Fatal("expected group paused")
	}
	if !strings.Contains(next.Status.Text, "paused") {
		t.Fatalf("status = %q", next.Status.Text)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace})
	next = updated.(Model)
	if !a.Groups()[0].Enabled {
		t.Fatal("expected group resumed")
	}
	if !strings.Contains(next.Status.Text, "resumed") {
		t.Fatalf("status = %q", next.Status.Text)
	}
}

func TestDueEventOpensModalAndEnterCompletes(t *testing.T) {
	now := time.Now()
	groups := testGroups(now)
	groups[0].NextDueTime = now.Add(-time.Minute)
	m, a := newTestModel(t, groups)

	updated, cmd := m.Update(nextAppEvent(t, a))
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected event listener rearm cmd")
	}
	if next.Due == nil || next.Due.Item.ID != "i1" {
		t.Fatalf("due = %+v, want item i1", next.Due)
	}
	if !next.anyModalOpen() {
		t.Fatal("due presentation should block")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if next.Due != nil {
		t.Fatal("completion must close the due modal")
	}
	if _, ok := a.Due(); ok {
		t.Fatal("presented pair must be cleared")
	}
	if a.Groups()[0].CurrentItemIndex != 1 {
		t.Fatal("completion must advance the cycle")
	}
}

func TestDueModalSnoozeAndDismissKeys(t *testing.T) {
	now := time.Now()
	groups := testGroups(now)
	groups[0].NextDueTime = now.Add(-time.Minute)
	m, a := newTestModel(t, groups)

	updated, _ := m.Update(nextAppEvent(t, a))
	next := updated.(Model)

	updated, _ = next.Update(runes("S"))
	next = updated.(Model)
	if next.Due != nil {
		t.Fatal("snooze must close the due modal")
	}
	g := a.Groups()[0]
	if g.SnoozedForMinutes != 30 {
		t.Fatalf("snoozed for %dm, want 30", g.SnoozedForMinutes)
	}
	if g.CurrentItemIndex != 0 {
		t.Fatal("snooze must not advance the cycle")
	}
}

func TestCelebrationFreezesClockAndAnyKeyCloses(t *testing.T) {
	m, _ := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(appEventMsg{Event: app.FirstPointEvent{Score: 1}})
	next := updated.(Model)
	if next.Celebration == nil {
		t.Fatal("expected celebration modal")
	}

	frozen := next.now
	updated, _ = next.Update(tickMsg(frozen.Add(5 * time.Second)))
	next = updated.(Model)
	if !next.now.Equal(frozen) {
		t.Fatal("clock must freeze while a modal is open")
	}

	updated, _ = next.Update(runes("z"))
	next = updated.(Model)
	if next.Celebration != nil {
		t.Fatal("any key should close the celebration")
	}

	later := frozen.Add(10 * time.Second)
	updated, _ = next.Update(tickMsg(later))
	next = updated.(Model)
	if !next.now.Equal(later) {
		t.Fatal("clock must resume once the modal closes")
	}
}

func TestTierUpgradeEventShowsTierMessage(t *testing.T) {
	m, a := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(appEventMsg{Event: app.TierUpgradeEvent{Info: a.Tier()}})
	next := updated.(Model)
	if next.Celebration == nil || next.Celebration.Title != "Getting Started" {
		t.Fatalf("celebration = %+v", next.Celebration)
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m, a := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(runes("D"))
	next := updated.(Model)
	if next.DeleteFor != "g1" {
		t.Fatalf("delete target = %q, want g1", next.DeleteFor)
	}

	updated, _ = next.Update(runes("n"))
	next = updated.(Model)
	if next.DeleteFor != "" || len(a.Groups()) != 2 {
		t.Fatal("cancel must keep the group")
	}

	updated, _ = next.Update(runes("D"))
	next = updated.(Model)
	updated, _ = next.Update(runes("y"))
	next = updated.(Model)
	if len(a.Groups()) != 1 {
		t.Fatal("confirm must delete the group")
	}
	if len(next.Groups) != 1 {
		t.Fatal("model snapshot must refresh after delete")
	}
}

func TestPaletteDoneCommand(t *testing.T) {
	m, a := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(runes("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("palette should open")
	}

	updated, _ = next.Update(runes("done"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Palette.Active {
		t.Fatal("palette should close after execute")
	}
	if !strings.Contains(next.Status.Text, "done: Stretch") {
		t.Fatalf("status = %q", next.Status.Text)
	}
	if a.Groups()[0].CurrentItemIndex != 1 {
		t.Fatal("done command must complete the current item")
	}
}

func TestPaletteUnknownCommandSetsError(t *testing.T) {
	m, _ := newTestModel(t, testGroups(time.Now()))

	updated, _ := m.Update(runes("/"))
	next := updated.(Model)
	updated, _ = next.Update(runes("explode"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestEditorCreatesGroup(t *testing.T) {
	m, a := newTestModel(t, nil)

	updated, _ := m.Update(runes("n"))
	next := updated.(Model)
	if !next.Editor.Active || next.Editor.Mode != EditorModeCreate {
		t.Fatalf("editor state = %+v", next.Editor)
	}

	updated, _ = next.Update(runes("Morning"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyTab})
	next = updated.(Model)
	updated, _ = next.Update(runes("Plan the day, Water"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if next.Editor.Active {
		t.Fatalf("editor should close on save, err=%q", next.Editor.Err)
	}
	groups := a.Groups()
	if len(groups) != 1 || groups[0].Title != "Morning" {
		t.Fatalf("groups = %+v", groups)
	}
	if len(groups[0].Items) != 2 {
		t.Fatalf("items = %d, want 2", len(groups[0].Items))
	}
}

func TestEditorRejectsEmptyItems(t *testing.T) {
	m, a := newTestModel(t, nil)

	updated, _ := m.Update(runes("n"))
	next := updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)

	if !next.Editor.Active || next.Editor.Err == "" {
		t.Fatalf("expected validation error, editor = %+v", next.Editor)
	}
	if len(a.Groups()) != 0 {
		t.Fatal("no group should be created")
	}
}

func TestSettingsModalSelectsSound(t *testing.T) {
	m, a := newTestModel(t, nil)
	m.Sounds = []Sound{{ID: "classic", Name: "Classic"}, {ID: "chime", Name: "Chime"}}

	updated, _ := m.Update(runes("o"))
	next := updated.(Model)
	if !next.Settings.Active {
		t.Fatal("settings should open")
	}

	updated, _ = next.Update(runes("j"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if a.Settings().SelectedSoundID != "chime" {
		t.Fatalf("sound = %q, want chime", a.Settings().SelectedSoundID)
	}

	updated, _ = next.Update(runes("a"))
	next = updated.(Model)
	if a.Settings().ShowActivityLog {
		t.Fatal("activity log should toggle off")
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next = updated.(Model)
	if next.Settings.Active {
		t.Fatal("esc should close settings")
	}
}

func TestViewContainsGroupsAndScore(t *testing.T) {
	m, _ := newTestModel(t, testGroups(time.Now()))

	out := m.View()
	if !strings.Contains(out, "Breaks") || !strings.Contains(out, "Focus") {
		t.Fatalf("missing group titles: %q", out)
	}
	if !strings.Contains(out, "score: 0") {
		t.Fatalf("missing score line: %q", out)
	}
	if !strings.Contains(out, "Stretch") {
		t.Fatalf("missing items: %q", out)
	}
}

func TestQuitKeySetsQuitting(t *testing.T) {
	m, _ := newTestModel(t, nil)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
