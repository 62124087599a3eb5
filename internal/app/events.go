package app

import (
	"github.com/remloop/remloop/internal/model"
	"github.com/remloop/remloop/internal/scoring"
)

// Event is delivered on the app's event channel. Consumers type-switch on
// the concrete types below.
type Event interface{ appEvent() }

// DueEvent announces the published due pair.
type DueEvent struct {
	Group model.ReminderGroup
	Item  model.ReminderGroupItem
}

// FirstPointEvent fires exactly once, when the score leaves zero.
type FirstPointEvent struct {
	Score int
}

// TierUpgradeEvent fires when a completed loop crosses a tier boundary.
type TierUpgradeEvent struct {
	Info scoring.TierInfo
}

func (DueEvent) appEvent()         {}
func (FirstPointEvent) appEvent()  {}
func (TierUpgradeEvent) appEvent() {}
