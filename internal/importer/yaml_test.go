package importer

import (
	"strings"
	"testing"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/storage"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	store, err := storage.OpenSQLite(t.TempDir() + "/import.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	a := app.New(store, 8)
	t.Cleanup(a.Close)
	return a
}

func TestImportCreatesGroups(t *testing.T) {
	a := newApp(t)

	in := `
groups:
  - title: Breaks
    interval_minutes: 45
    items:
      - Stretch
      - Water
  - title: Focus
    items:
      - Review priority
`
	n, err := Import(a, in)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d groups, want 2", n)
	}

	groups := a.Groups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups", len(groups))
	}
	var breaks bool
	for _, g := range groups {
		if g.Title == "Breaks" {
			breaks = true
			if g.IntervalMinutes != 45 {
				t.Fatalf("interval = %d, want 45", g.IntervalMinutes)
			}
			if len(g.Items) != 2 {
				t.Fatalf("items = %d, want 2", len(g.Items))
			}
		}
		if g.Title == "Focus" && g.IntervalMinutes != 30 {
			t.Fatalf("default interval = %d, want 30", g.IntervalMinutes)
		}
	}
	if !breaks {
		t.Fatal("Breaks group missing")
	}
}

func TestImportRejectsMalformedYAML(t *testing.T) {
	a := newApp(t)
	if _, err := Import(a, "groups: ["); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestImportRejectsEmptyInput(t *testing.T) {
	a := newApp(t)
	_, err := Import(a, "groups: []")
	if err == nil || !strings.Contains(err.Error(), "no groups") {
		t.Fatalf("err = %v", err)
	}
}

func TestImportRejectsUntitledGroup(t *testing.T) {
	a := newApp(t)
	in := `
groups:
  - items: [one]
`
	if _, err := Import(a, in); err == nil {
		t.Fatal("expected title error")
	}
}
