package model

import "time"

type LogAction string

const (
	LogActionDone    LogAction = "done"
	LogActionSnooze  LogAction = "snooze"
	LogActionDismiss LogAction = "dismiss"
)

func (a LogAction) IsValid() bool {
	switch a {
	case LogActionDone, LogActionSnooze, LogActionDismiss:
		return true
	default:
		return false
	}
}

// LogEntry is append-only: entries are created by the completion path,
// never mutated, and only ever removed wholesale by the clear-today action.
type LogEntry struct {
	ID               string
	ReminderID       string
	Action           LogAction
	At               time.Time
	Text             string
	SnoozeForMinutes int
}

// SameLocalDay reports whether two instants fall on the same calendar day in
// local time.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
