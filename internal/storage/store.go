package storage

import (
	"context"

	"github.com/remloop/remloop/internal/model"
)

// Slot keys. Each slot is an independently loaded and saved JSON document.
const (
	slotGroups   = "groups:v1"
	slotLog      = "log:v1"
	slotScore    = "score:v1"
	slotSettings = "settings:v1"
)

// Store is the durability boundary. Loads never fail: missing, corrupt or
// mistyped data yields the zero default for that slot. Saves are best-effort;
// callers treat the in-memory state as authoritative and may drop errors.
type Store interface {
	LoadGroups(ctx context.Context) []model.ReminderGroup
	SaveGroups(ctx context.Context, groups []model.ReminderGroup) error

	LoadLog(ctx context.Context) []model.LogEntry
	SaveLog(ctx context.Context, entries []model.LogEntry) error

	LoadScore(ctx context.Context) int
	SaveScore(ctx context.Context, score int) error

	LoadSettings(ctx context.Context) model.Settings
	SaveSettings(ctx context.Context, settings model.Settings) error
}
