package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remloop/remloop/internal/activity"
	"github.com/remloop/remloop/internal/model"
	"github.com/remloop/remloop/internal/scheduler"
	"github.com/remloop/remloop/internal/scoring"
	"github.com/remloop/remloop/internal/storage"
)

// App is the single application context: it owns the in-memory state,
// applies the pure model transitions, persists best-effort and feeds the
// scheduler. The in-memory state is authoritative; a failed save costs
// nothing but durability across restarts.
type App struct {
	mu         sync.Mutex
	store      storage.Store
	sched      *scheduler.Scheduler
	groups     []model.ReminderGroup
	logEntries []model.LogEntry
	score      int
	settings   model.Settings
	events     chan Event
	nowFn      func() time.Time
	newID      func() string
}

func New(store storage.Store, bufferSize int) *App {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	ctx := context.Background()
	a := &App{
		store:      store,
		sched:      scheduler.New(bufferSize),
		groups:     store.LoadGroups(ctx),
		logEntries: store.LoadLog(ctx),
		score:      store.LoadScore(ctx),
		settings:   store.LoadSettings(ctx),
		events:     make(chan Event, bufferSize),
		nowFn:      time.Now,
		newID:      uuid.NewString,
	}
	a.sched.SetGroups(a.groups)
	go a.forwardDue()
	return a
}

func (a *App) forwardDue() {
	for pair := range a.sched.C() {
		a.emit(DueEvent{Group: pair.Group, Item: pair.Item})
	}
	close(a.events)
}

func (a *App) emit(ev Event) {
	select {
	case a.events <- ev:
	default:
	}
}

// Events delivers due-item publications and scoring celebrations.
func (a *App) Events() <-chan Event {
	return a.events
}

func (a *App) Close() {
	a.sched.Stop()
}

func (a *App) Groups() []model.ReminderGroup {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.ReminderGroup, len(a.groups))
	copy(out, a.groups)
	return out
}

func (a *App) Score() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.score
}

func (a *App) Tier() scoring.TierInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	return scoring.InfoFor(scoring.TierOf(a.score))
}

func (a *App) Settings() model.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

func (a *App) Due() (scheduler.DueGroupItem, bool) {
	return a.sched.Due()
}

// SetBlocked pauses scheduling while a blocking dialog other than the due
// presentation itself is open.
func (a *App) SetBlocked(blocked bool) {
	a.sched.SetBlocked(blocked)
}

// CompleteItem applies the completion transition, logs it, awards a point
// when a loop closed and clears the presented pair if it referenced the
// group.
func (a *App) CompleteItem(groupID, itemID string) {
	a.mu.Lock()
	now := a.nowFn()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	g := a.groups[idx]
	item, ok := findItem(g, itemID)
	if !ok {
		a.mu.Unlock()
		return
	}

	next, loopCompleted := model.CompleteItem(g, itemID, now)
	a.groups[idx] = next
	a.appendLogLocked(model.LogEntry{
		ID:         a.newID(),
		ReminderID: item.ID,
		Action:     model.LogActionDone,
		At:         now,
		Text:       item.Title,
	})

	var award *scoring.Award
	if loopCompleted {
		aw := scoring.Apply(a.score)
		a.score = aw.Score
		award = &aw
	}

	a.persistGroupsLocked()
	a.persistLogLocked()
	if award != nil {
		a.persistScoreLocked()
	}
	a.mu.Unlock()

	a.syncScheduler(groupID)
	if award != nil {
		if award.FirstPoint {
			a.emit(FirstPointEvent{Score: award.Score})
		} else if award.TierUpgrade != nil {
			a.emit(TierUpgradeEvent{Info: *award.TierUpgrade})
		}
	}
}

// SnoozeGroup pushes the group's due time out and logs the snooze.
func (a *App) SnoozeGroup(groupID string, minutes int) {
	a.mu.Lock()
	now := a.nowFn()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	g := a.groups[idx]
	a.groups[idx] = model.SnoozeGroup(g, minutes, now)

	if item, ok := g.CurrentDueItem(); ok {
		a.appendLogLocked(model.LogEntry{
			ID:               a.newID(),
			ReminderID:       item.ID,
			Action:           model.LogActionSnooze,
			At:               now,
			Text:             item.Title,
			SnoozeForMinutes: minutes,
		})
	}

	a.persistGroupsLocked()
	a.persistLogLocked()
	a.mu.Unlock()

	a.syncScheduler(groupID)
}

// DismissDue closes the presented pair without advancing the cycle.
func (a *App) DismissDue() {
	due, ok := a.sched.Due()
	if !ok {
		return
	}

	a.mu.Lock()
	now := a.nowFn()
	idx := a.groupIndexLocked(due.Group.ID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	a.groups[idx] = model.DismissGroup(a.groups[idx], now)
	a.appendLogLocked(model.LogEntry{
		ID:         a.newID(),
		ReminderID: due.Item.ID,
		Action:     model.LogActionDismiss,
		At:         now,
		Text:       due.Item.Title,
	})
	a.persistGroupsLocked()
	a.persistLogLocked()
	a.mu.Unlock()

	a.syncScheduler(due.Group.ID)
}

func (a *App) ToggleGroupEnabled(groupID string) {
	a.mu.Lock()
	now := a.nowFn()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	a.groups[idx] = model.ToggleGroupEnabled(a.groups[idx], now)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler(groupID)
}

func (a *App) ToggleItemEnabled(groupID, itemID string) {
	a.mu.Lock()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	a.groups[idx] = model.ToggleItemEnabled(a.groups[idx], itemID)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler("")
}

func (a *App) DeleteGroupItem(groupID, itemID string) {
	a.mu.Lock()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	a.groups[idx] = model.DeleteItem(a.groups[idx], itemID)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler(groupID)
}

// DeleteGroup removes the group and cancels any presented pair that
// referenced it.
func (a *App) DeleteGroup(groupID string) {
	a.mu.Lock()
	a.groups = model.DeleteGroup(a.groups, groupID)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler(groupID)
}

func (a *App) MoveGroup(groupID string, direction int) {
	a.mu.Lock()
	a.groups = model.MoveGroup(a.groups, groupID, direction)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler("")
}

// CreateGroup builds a new group from item titles; it is rejected when no
// non-empty title remains after trimming.
func (a *App) CreateGroup(title string, intervalMinutes int, color string, itemTitles []string) error {
	a.mu.Lock()
	now := a.nowFn()
	g, err := model.NewGroup(a.newID(), title, intervalMinutes, color, itemTitles, now, a.newID)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.groups = append([]model.ReminderGroup{g}, a.groups...)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler("")
	return nil
}

func (a *App) UpdateGroup(groupID, title string, intervalMinutes int, color string) {
	a.mu.Lock()
	idx := a.groupIndexLocked(groupID)
	if idx < 0 {
		a.mu.Unlock()
		return
	}
	a.groups[idx] = model.ApplyEdit(a.groups[idx], title, intervalMinutes, color)
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler("")
}

// TodayPage derives the paginated same-day activity view.
func (a *App) TodayPage(page int) activity.Page {
	a.mu.Lock()
	defer a.mu.Unlock()
	return activity.TodayPage(a.logEntries, a.settings.ActivityLogLimit, page, a.nowFn())
}

// ClearTodaysActivity drops today's entries from the durable log.
func (a *App) ClearTodaysActivity() {
	a.mu.Lock()
	a.logEntries = activity.ClearToday(a.logEntries, a.nowFn())
	a.persistLogLocked()
	a.mu.Unlock()
}

func (a *App) SetSelectedSound(id string) {
	a.mu.Lock()
	a.settings.SelectedSoundID = id
	a.persistSettingsLocked()
	a.mu.Unlock()
}

func (a *App) SetShowActivityLog(show bool) {
	a.mu.Lock()
	a.settings.ShowActivityLog = show
	a.persistSettingsLocked()
	a.mu.Unlock()
}

func (a *App) SetActivityLogLimit(limit int) {
	if limit <= 0 {
		limit = model.DefaultActivityLogLimit
	}
	a.mu.Lock()
	a.settings.ActivityLogLimit = limit
	a.persistSettingsLocked()
	a.mu.Unlock()
}

// syncScheduler pushes the current groups and, when the disposed group
// matches the presented pair, clears it so evaluation resumes.
func (a *App) syncScheduler(disposedGroupID string) {
	a.sched.SetGroups(a.Groups())
	if due, ok := a.sched.Due(); ok {
		if disposedGroupID != "" && due.Group.ID == disposedGroupID {
			a.sched.ClearDue()
			return
		}
		if a.groupIndex(due.Group.ID) < 0 {
			a.sched.ClearDue()
		}
	}
}

func (a *App) groupIndex(groupID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.groupIndexLocked(groupID)
}

func (a *App) groupIndexLocked(groupID string) int {
	for i, g := range a.groups {
		if g.ID == groupID {
			return i
		}
	}
	return -1
}

func (a *App) appendLogLocked(entry model.LogEntry) {
	a.logEntries = append([]model.LogEntry{entry}, a.logEntries...)
}

// Persistence is write-behind: a failed save is dropped and the in-memory
// state stays authoritative.
func (a *App) persistGroupsLocked() {
	_ = a.store.SaveGroups(context.Background(), a.groups)
}

func (a *App) persistLogLocked() {
	_ = a.store.SaveLog(context.Background(), a.logEntries)
}

func (a *App) persistScoreLocked() {
	_ = a.store.SaveScore(context.Background(), a.score)
}

func (a *App) persistSettingsLocked() {
	_ = a.store.SaveSettings(context.Background(), a.settings)
}

func findItem(g model.ReminderGroup, itemID string) (model.ReminderGroupItem, bool) {
	for _, item := range g.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return model.ReminderGroupItem{}, false
}
