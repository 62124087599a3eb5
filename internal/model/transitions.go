package model

import (
	"strings"
	"time"
)

// Transitions are pure: they copy the group (including its item slice) and
// never mutate the input. Persistence and scheduling react to the returned
// value.

// CompleteItem marks the item shown, advances the item cursor cyclically
// through enabled items and restarts the interval countdown. The second
// return reports whether this completion closed a full loop, i.e. the
// completed item was the last element of the enabled-items subsequence.
func CompleteItem(g ReminderGroup, itemID string, now time.Time) (ReminderGroup, bool) {
	idx := itemIndex(g.Items, itemID)
	if idx < 0 {
		return g, false
	}

	next := cloneGroup(g)
	shown := now
	next.Items[idx].LastShownAt = &shown

	enabled := next.EnabledItems()
	if len(enabled) == 0 {
		return next, false
	}

	currentEnabledIndex := -1
	for i, item := range enabled {
		if item.ID == itemID {
			currentEnabledIndex = i
			break
		}
	}
	loopCompleted := currentEnabledIndex == len(enabled)-1

	nextItem := enabled[(currentEnabledIndex+1)%len(enabled)]
	next.CurrentItemIndex = itemIndex(next.Items, nextItem.ID)
	next.NextDueTime = now.Add(next.Interval())
	next.SnoozedAt = nil
	next.SnoozedForMinutes = 0
	return next, loopCompleted
}

// ToggleItemEnabled flips one item's enabled flag. If the currently-due item
// is being disabled, the cursor moves to the first enabled item in natural
// order; NextDueTime is left untouched so the running countdown is inherited.
func ToggleItemEnabled(g ReminderGroup, itemID string) ReminderGroup {
	idx := itemIndex(g.Items, itemID)
	if idx < 0 {
		return g
	}

	next := cloneGroup(g)
	next.Items[idx].Enabled = !next.Items[idx].Enabled

	wasCurrent := g.CurrentItemIndex >= 0 && g.CurrentItemIndex < len(g.Items) &&
		g.Items[g.CurrentItemIndex].ID == itemID
	if wasCurrent && !next.Items[idx].Enabled {
		for i, item := range next.Items {
			if item.Enabled {
				next.CurrentItemIndex = i
				break
			}
		}
	}
	return next
}

// ToggleGroupEnabled pauses or resumes the group's countdown. Disabling
// captures the remaining time; enabling restores it, falling back to a full
// interval when no paused value exists.
func ToggleGroupEnabled(g ReminderGroup, now time.Time) ReminderGroup {
	next := cloneGroup(g)
	if next.Enabled {
		remaining := next.NextDueTime.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		next.Enabled = false
		next.PausedRemaining = &remaining
		return next
	}

	resume := next.Interval()
	if next.PausedRemaining != nil {
		resume = *next.PausedRemaining
	}
	next.Enabled = true
	next.NextDueTime = now.Add(resume)
	next.PausedRemaining = nil
	return next
}

// SnoozeGroup pushes the due time out without moving the item cursor.
func SnoozeGroup(g ReminderGroup, minutes int, now time.Time) ReminderGroup {
	next := cloneGroup(g)
	next.NextDueTime = now.Add(time.Duration(minutes) * time.Minute)
	snoozed := now
	next.SnoozedAt = &snoozed
	next.SnoozedForMinutes = minutes
	return next
}

// DismissGroup defers the group by one full interval. The item cursor and
// LastShownAt stay put: a dismissed item is presented again next cycle.
func DismissGroup(g ReminderGroup, now time.Time) ReminderGroup {
	next := cloneGroup(g)
	next.NextDueTime = now.Add(next.Interval())
	next.SnoozedAt = nil
	next.SnoozedForMinutes = 0
	return next
}

// DeleteItem removes an item from the group, keeping the cursor in range.
func DeleteItem(g ReminderGroup, itemID string) ReminderGroup {
	next := cloneGroup(g)
	kept := make([]ReminderGroupItem, 0, len(next.Items))
	for _, item := range next.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	next.Items = kept
	if next.CurrentItemIndex >= len(next.Items) {
		next.CurrentItemIndex = 0
	}
	return next
}

// ApplyEdit replaces the display fields. The countdown and cursor are not
// touched; interval changes take effect from the next completion.
func ApplyEdit(g ReminderGroup, title string, intervalMinutes int, color string) ReminderGroup {
	next := cloneGroup(g)
	title = trimmed(title)
	if title != "" {
		next.Title = title
	}
	next.IntervalMinutes = ClampInterval(intervalMinutes)
	if trimmed(color) != "" {
		next.Color = color
	}
	return next
}

// MoveGroup shifts a group one position up or down; out-of-range moves are
// no-ops.
func MoveGroup(groups []ReminderGroup, groupID string, direction int) []ReminderGroup {
	idx := -1
	for i, g := range groups {
		if g.ID == groupID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return groups
	}
	target := idx + direction
	if target < 0 || target >= len(groups) {
		return groups
	}
	out := make([]ReminderGroup, len(groups))
	copy(out, groups)
	out[idx], out[target] = out[target], out[idx]
	return out
}

// DeleteGroup drops a group from the collection.
func DeleteGroup(groups []ReminderGroup, groupID string) []ReminderGroup {
	out := make([]ReminderGroup, 0, len(groups))
	for _, g := range groups {
		if g.ID != groupID {
			out = append(out, g)
		}
	}
	return out
}

// NewGroup builds a group from trimmed item titles. At least one non-empty
// title is required; the group title falls back to the first item's title.
// The countdown starts one full interval out.
func NewGroup(id string, title string, intervalMinutes int, color string, itemTitles []string, now time.Time, newItemID func() string) (ReminderGroup, error) {
	titles := make([]string, 0, len(itemTitles))
	for _, t := range itemTitles {
		if trimmed(t) != "" {
			titles = append(titles, trimmed(t))
		}
	}
	if len(titles) == 0 {
		return ReminderGroup{}, ErrNoItemTitles
	}

	interval := ClampInterval(intervalMinutes)
	items := make([]ReminderGroupItem, 0, len(titles))
	for _, t := range titles {
		items = append(items, ReminderGroupItem{
			ID:        newItemID(),
			Title:     t,
			Enabled:   true,
			CreatedAt: now,
		})
	}

	groupTitle := trimmed(title)
	if groupTitle == "" {
		groupTitle = titles[0]
	}
	if trimmed(color) == "" {
		color = DefaultColor
	}

	return ReminderGroup{
		ID:               id,
		Title:            groupTitle,
		Items:            items,
		CurrentItemIndex: 0,
		IntervalMinutes:  interval,
		NextDueTime:      now.Add(time.Duration(interval) * time.Minute),
		Enabled:          true,
		Color:            color,
		CreatedAt:        now,
	}, nil
}

func itemIndex(items []ReminderGroupItem, itemID string) int {
	for i, item := range items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func cloneGroup(g ReminderGroup) ReminderGroup {
	next := g
	next.Items = make([]ReminderGroupItem, len(g.Items))
	copy(next.Items, g.Items)
	return next
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
