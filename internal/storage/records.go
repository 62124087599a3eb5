package storage

import (
	"time"

	"github.com/remloop/remloop/internal/model"
)

// Slot records are the stored JSON shape: epoch-millisecond timestamps and
// pointer optionals, carried forward from the earliest schema version so
// older data keeps loading.

type itemRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatedAt   int64  `json:"createdAt"`
	LastShownAt *int64 `json:"lastShownAt,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

type groupRecord struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Items             []itemRecord `json:"items"`
	CurrentItemIndex  int          `json:"currentItemIndex"`
	IntervalMinutes   int          `json:"intervalMinutes"`
	NextDueTime       int64        `json:"nextDueTime"`
	Enabled           *bool        `json:"enabled,omitempty"`
	Color             string       `json:"color,omitempty"`
	PausedRemainingMs *int64       `json:"pausedRemainingMs,omitempty"`
	CreatedAt         int64        `json:"createdAt"`
	SnoozedAt         *int64       `json:"snoozedAt,omitempty"`
	SnoozedForMinutes int          `json:"snoozedForMinutes,omitempty"`
}

type logRecord struct {
	ID               string `json:"id"`
	ReminderID       string `json:"reminderId"`
	Action           string `json:"action"`
	At               int64  `json:"at"`
	Text             string `json:"text,omitempty"`
	SnoozeForMinutes int    `json:"snoozeForMinutes,omitempty"`
}

type settingsRecord struct {
	SelectedSoundID  string `json:"selectedSoundId"`
	ShowActivityLog  *bool  `json:"showActivityLog,omitempty"`
	ActivityLogLimit int    `json:"activityLogLimit"`
}

// migrateGroup validates one stored group into a model value: item defaults,
// index and interval clamps, default color. Re-migrating already-valid data
// yields identical semantics.
func migrateGroup(rec groupRecord, now time.Time, newID func() string) model.ReminderGroup {
	items := make([]model.ReminderGroupItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		id := it.ID
		if id == "" {
			id = newID()
		}
		createdAt := msToTime(it.CreatedAt)
		if it.CreatedAt == 0 {
			createdAt = now
		}
		item := model.ReminderGroupItem{
			ID:        id,
			Title:     it.Title,
			Enabled:   it.Enabled == nil || *it.Enabled,
			CreatedAt: createdAt,
		}
		if it.LastShownAt != nil {
			shown := msToTime(*it.LastShownAt)
			item.LastShownAt = &shown
		}
		items = append(items, item)
	}

	index := rec.CurrentItemIndex
	if index < 0 {
		index = 0
	}
	if len(items) > 0 && index >= len(items) {
		index = len(items) - 1
	}
	if len(items) == 0 {
		index = 0
	}

	color := rec.Color
	if color == "" {
		color = model.DefaultColor
	}

	createdAt := msToTime(rec.CreatedAt)
	if rec.CreatedAt == 0 {
		createdAt = now
	}

	g := model.ReminderGroup{
		ID:                rec.ID,
		Title:             rec.Title,
		Items:             items,
		CurrentItemIndex:  index,
		IntervalMinutes:   model.ClampInterval(rec.IntervalMinutes),
		NextDueTime:       msToTime(rec.NextDueTime),
		Enabled:           rec.Enabled == nil || *rec.Enabled,
		Color:             color,
		SnoozedForMinutes: rec.SnoozedForMinutes,
		CreatedAt:         createdAt,
	}
	if g.ID == "" {
		g.ID = newID()
	}
	if rec.PausedRemainingMs != nil {
		paused := time.Duration(*rec.PausedRemainingMs) * time.Millisecond
		g.PausedRemaining = &paused
	}
	if rec.SnoozedAt != nil {
		snoozed := msToTime(*rec.SnoozedAt)
		g.SnoozedAt = &snoozed
	}
	return g
}

func migrateGroups(recs []groupRecord, now time.Time, newID func() string) []model.ReminderGroup {
	out := make([]model.ReminderGroup, 0, len(recs))
	for _, rec := range recs {
		out = append(out, migrateGroup(rec, now, newID))
	}
	return out
}

func groupToRecord(g model.ReminderGroup) groupRecord {
	items := make([]itemRecord, 0, len(g.Items))
	for _, it := range g.Items {
		rec := itemRecord{
			ID:        it.ID,
			Title:     it.Title,
			CreatedAt: timeToMs(it.CreatedAt),
			Enabled:   boolPtr(it.Enabled),
		}
		if it.LastShownAt != nil {
			shown := timeToMs(*it.LastShownAt)
			rec.LastShownAt = &shown
		}
		items = append(items, rec)
	}

	rec := groupRecord{
		ID:                g.ID,
		Title:             g.Title,
		Items:             items,
		CurrentItemIndex:  g.CurrentItemIndex,
		IntervalMinutes:   g.IntervalMinutes,
		NextDueTime:       timeToMs(g.NextDueTime),
		Enabled:           boolPtr(g.Enabled),
		Color:             g.Color,
		CreatedAt:         timeToMs(g.CreatedAt),
		SnoozedForMinutes: g.SnoozedForMinutes,
	}
	if g.PausedRemaining != nil {
		ms := g.PausedRemaining.Milliseconds()
		rec.PausedRemainingMs = &ms
	}
	if g.SnoozedAt != nil {
		snoozed := timeToMs(*g.SnoozedAt)
		rec.SnoozedAt = &snoozed
	}
	return rec
}

func logToRecord(e model.LogEntry) logRecord {
	return logRecord{
		ID:               e.ID,
		ReminderID:       e.ReminderID,
		Action:           string(e.Action),
		At:               timeToMs(e.At),
		Text:             e.Text,
		SnoozeForMinutes: e.SnoozeForMinutes,
	}
}

func logFromRecord(rec logRecord) model.LogEntry {
	return model.LogEntry{
		ID:               rec.ID,
		ReminderID:       rec.ReminderID,
		Action:           model.LogAction(rec.Action),
		At:               msToTime(rec.At),
		Text:             rec.Text,
		SnoozeForMinutes: rec.SnoozeForMinutes,
	}
}

func settingsToRecord(s model.Settings) settingsRecord {
	return settingsRecord{
		SelectedSoundID:  s.SelectedSoundID,
		ShowActivityLog:  boolPtr(s.ShowActivityLog),
		ActivityLogLimit: s.ActivityLogLimit,
	}
}

func settingsFromRecord(rec settingsRecord) model.Settings {
	s := model.DefaultSettings()
	if rec.SelectedSoundID != "" {
		s.SelectedSoundID = rec.SelectedSoundID
	}
	if rec.ShowActivityLog != nil {
		s.ShowActivityLog = *rec.ShowActivityLog
	}
	if rec.ActivityLogLimit > 0 {
		s.ActivityLogLimit = rec.ActivityLogLimit
	}
	return s
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timeToMs(t time.Time) int64 {
	return t.UnixMilli()
}

func boolPtr(v bool) *bool {
	return &v
}
