package model

import (
	"errors"
	"strings"
	"time"
)

const (
	MinIntervalMinutes = 1
	MaxIntervalMinutes = 240

	// DefaultColor is applied to groups whose stored color is missing.
	DefaultColor = "#3b82f6"
)

var ErrNoItemTitles = errors.New("model: group needs at least one non-empty item title")

type ReminderGroupItem struct {
	ID          string
	Title       string
	Enabled     bool
	CreatedAt   time.Time
	LastShownAt *time.Time
}

type ReminderGroup struct {
	ID               string
	Title            string
	Items            []ReminderGroupItem
	CurrentItemIndex int
	IntervalMinutes  int
	NextDueTime      time.Time
	Enabled          bool
	// PausedRemaining holds the unexpired countdown while the group is
	// disabled, consumed on re-enable.
	PausedRemaining   *time.Duration
	Color             string
	SnoozedAt         *time.Time
	SnoozedForMinutes int
	CreatedAt         time.Time
}

func (g ReminderGroup) Interval() time.Duration {
	return time.Duration(g.IntervalMinutes) * time.Minute
}

func (g ReminderGroup) EnabledItems() []ReminderGroupItem {
	out := make([]ReminderGroupItem, 0, len(g.Items))
	for _, item := range g.Items {
		if item.Enabled {
			out = append(out, item)
		}
	}
	return out
}

func (g ReminderGroup) HasEnabledItem() bool {
	for _, item := range g.Items {
		if item.Enabled {
			return true
		}
	}
	return false
}

// CurrentDueItem resolves the item that should be surfaced when the group
// fires: the item at CurrentItemIndex if it is enabled, otherwise the first
// enabled item found scanning forward cyclically from there.
func (g ReminderGroup) CurrentDueItem() (ReminderGroupItem, bool) {
	if len(g.Items) == 0 {
		return ReminderGroupItem{}, false
	}
	start := g.CurrentItemIndex
	if start < 0 || start >= len(g.Items) {
		start = 0
	}
	for offset := 0; offset < len(g.Items); offset++ {
		item := g.Items[(start+offset)%len(g.Items)]
		if item.Enabled {
			return item, true
		}
	}
	return ReminderGroupItem{}, false
}

func (g ReminderGroup) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: group id is required")
	}
	if len(g.Items) == 0 {
		return errors.New("model: group needs at least one item")
	}
	if g.IntervalMinutes < MinIntervalMinutes || g.IntervalMinutes > MaxIntervalMinutes {
		return errors.New("model: group interval out of range")
	}
	if g.CurrentItemIndex < 0 || g.CurrentItemIndex >= len(g.Items) {
		return errors.New("model: current item index out of range")
	}
	if g.CreatedAt.IsZero() {
		return errors.New("model: group created_at is required")
	}
	return nil
}

// ClampInterval forces an interval into the allowed [1, 240] minute range.
func ClampInterval(minutes int) int {
	if minutes < MinIntervalMinutes {
		return MinIntervalMinutes
	}
	if minutes > MaxIntervalMinutes {
		return MaxIntervalMinutes
	}
	return minutes
}
