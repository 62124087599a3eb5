package app

import "github.com/remloop/remloop/internal/model"

type seedSpec struct {
	title           string
	intervalMinutes int
	color           string
	items           []string
}

var starterGroups = []seedSpec{
	{
		title:           "Health & Wellness",
		intervalMinutes: 45,
		color:           "#22c55e",
		items:           []string{"Drink a glass of water", "Stand up and stretch", "Rest your eyes for a minute"},
	},
	{
		title:           "Focus & Productivity",
		intervalMinutes: 60,
		color:           "#3b82f6",
		items:           []string{"Review your top priority", "Close distracting tabs", "Write down one open loop"},
	},
	{
		title:           "Social Connection",
		intervalMinutes: 180,
		color:           "#f59e0b",
		items:           []string{"Message a friend", "Thank someone"},
	},
}

// SeedStarterGroups installs the starter groups when the store is empty.
// It does nothing once the user has any group of their own.
func (a *App) SeedStarterGroups() {
	a.mu.Lock()
	if len(a.groups) > 0 {
		a.mu.Unlock()
		return
	}
	now := a.nowFn()
	for _, s := range starterGroups {
		g, err := model.NewGroup(a.newID(), s.title, s.intervalMinutes, s.color, s.items, now, a.newID)
		if err != nil {
			continue
		}
		a.groups = append(a.groups, g)
	}
	a.persistGroupsLocked()
	a.mu.Unlock()

	a.syncScheduler("")
}
