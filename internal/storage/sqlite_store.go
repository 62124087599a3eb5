package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/remloop/remloop/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps each slot as a JSON document in a single keyed table.
type SQLiteStore struct {
	db    *sql.DB
	nowFn func() time.Time
	newID func() string
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{
		db:    db,
		nowFn: time.Now,
		newID: uuid.NewString,
	}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadGroups(ctx context.Context) []model.ReminderGroup {
	raw, ok := s.loadSlot(ctx, slotGroups)
	if !ok {
		return []model.ReminderGroup{}
	}
	var recs []groupRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return []model.ReminderGroup{}
	}
	return migrateGroups(recs, s.nowFn(), s.newID)
}

func (s *SQLiteStore) SaveGroups(ctx context.Context, groups []model.ReminderGroup) error {
	recs := make([]groupRecord, 0, len(groups))
	for _, g := range groups {
		recs = append(recs, groupToRecord(g))
	}
	return s.saveSlot(ctx, slotGroups, recs)
}

func (s *SQLiteStore) LoadLog(ctx context.Context) []model.LogEntry {
	raw, ok := s.loadSlot(ctx, slotLog)
	if !ok {
		return []model.LogEntry{}
	}
	var recs []logRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return []model.LogEntry{}
	}
	out := make([]model.LogEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, logFromRecord(rec))
	}
	return out
}

func (s *SQLiteStore) SaveLog(ctx context.Context, entries []model.LogEntry) error {
	recs := make([]logRecord, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, logToRecord(e))
	}
	return s.saveSlot(ctx, slotLog, recs)
}

func (s *SQLiteStore) LoadScore(ctx context.Context) int {
	raw, ok := s.loadSlot(ctx, slotScore)
	if !ok {
		return 0
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		return 0
	}
	return score
}

func (s *SQLiteStore) SaveScore(ctx context.Context, score int) error {
	return s.saveRaw(ctx, slotScore, strconv.Itoa(score))
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) model.Settings {
	raw, ok := s.loadSlot(ctx, slotSettings)
	if !ok {
		return model.DefaultSettings()
	}
	var rec settingsRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return model.DefaultSettings()
	}
	return settingsFromRecord(rec)
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	return s.saveSlot(ctx, slotSettings, settingsToRecord(settings))
}

func (s *SQLiteStore) loadSlot(ctx context.Context, key string) (string, bool) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) saveSlot(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", key, err)
	}
	return s.saveRaw(ctx, key, string(payload))
}

func (s *SQLiteStore) saveRaw(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.nowFn().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", key, err)
	}
	return nil
}
