package activity

import (
	"sort"
	"time"

	"github.com/remloop/remloop/internal/model"
)

// Pages hold at most this many entries once the configured limit crosses it.
const pageSize = 20

type Page struct {
	Entries      []model.LogEntry
	TotalPages   int
	CurrentPage  int
	ItemsPerPage int
}

// TodayEntries filters the log down to today's done/snooze entries in local
// time, newest first, capped at limit.
func TodayEntries(entries []model.LogEntry, limit int, now time.Time) []model.LogEntry {
	out := make([]model.LogEntry, 0, len(entries))
	for _, e := range entries {
		if !model.SameLocalDay(e.At, now) {
			continue
		}
		if e.Action != model.LogActionDone && e.Action != model.LogActionSnooze {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.After(out[j].At)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TodayPage derives the paginated view: a single page when the limit is at
// most 20, fixed pages of 20 beyond that.
func TodayPage(entries []model.LogEntry, limit, page int, now time.Time) Page {
	today := TodayEntries(entries, limit, now)
	if limit <= pageSize {
		return Page{
			Entries:      today,
			TotalPages:   1,
			CurrentPage:  0,
			ItemsPerPage: limit,
		}
	}

	totalPages := (len(today) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if start > len(today) {
		start = len(today)
	}
	if end > len(today) {
		end = len(today)
	}
	return Page{
		Entries:      today[start:end],
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: pageSize,
	}
}

// ClearToday removes exactly the same-local-day subset from the log,
// regardless of action. Returns the surviving entries.
func ClearToday(entries []model.LogEntry, now time.Time) []model.LogEntry {
	kept := make([]model.LogEntry, 0, len(entries))
	for _, e := range entries {
		if model.SameLocalDay(e.At, now) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
