package scheduler

import (
	"testing"
	"time"

	"github.com/remloop/remloop/internal/model"
)

func schedulerAt(now time.Time) *Scheduler {
	s := New(8)
	s.nowFn = func() time.Time { return now }
	return s
}

func groupDueAt(id string, due time.Time) model.ReminderGroup {
	created := due.Add(-time.Hour)
	return model.ReminderGroup{
		ID:    id,
		Title: id,
		Items: []model.ReminderGroupItem{
			{ID: id + "-i1", Title: "first", Enabled: true, CreatedAt: created},
			{ID: id + "-i2", Title: "second", Enabled: true, CreatedAt: created},
		},
		CurrentItemIndex: 0,
		IntervalMinutes:  5,
		NextDueTime:      due,
		Enabled:          true,
		Color:            model.DefaultColor,
		CreatedAt:        created,
	}
}

func waitPair(t *testing.T, ch <-chan DueGroupItem, timeout time.Duration) DueGroupItem {
	t.Helper()
	select {
	case pair := <-ch:
		return pair
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for due pair")
		return DueGroupItem{}
	}
}

func expectNoPair(t *testing.T, ch <-chan DueGroupItem, wait time.Duration) {
	t.Helper()
	select {
	case pair := <-ch:
		t.Fatalf("unexpected due pair published: %s/%s", pair.Group.ID, pair.Item.ID)
	case <-time.After(wait):
	}
}

func TestPastDueWithinGraceFiresImmediately(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	for _, k := range []time.Duration{0, time.Second, Grace} {
		s := schedulerAt(now)
		s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(-k))})
		pair := waitPair(t, s.C(), time.Second)
		if pair.Group.ID != "g" || pair.Item.ID != "g-i1" {
			t.Fatalf("k=%s: unexpected pair %s/%s", k, pair.Group.ID, pair.Item.ID)
		}
		if s.TimerArmed() {
			t.Fatalf("k=%s: no timer may be armed while presenting", k)
		}
		s.Stop()
	}
}

func TestSlightlyFutureDueWithinGraceFiresImmediately(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(2*time.Second))})
	pair := waitPair(t, s.C(), time.Second)
	if pair.Group.ID != "g" {
		t.Fatalf("due time inside the grace window must fire immediately")
	}
}

func TestFutureDueArmsSingleTimer(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	future := groupDueAt("g", now.Add(time.Minute))
	s.SetGroups([]model.ReminderGroup{future})
	if !s.TimerArmed() {
		t.Fatalf("expected an armed timer for the future due time")
	}
	expectNoPair(t, s.C(), 50*time.Millisecond)

	// Re-evaluating repeatedly must still leave exactly one armed timer.
	for i := 0; i < 5; i++ {
		s.SetGroups([]model.ReminderGroup{future})
	}
	if !s.TimerArmed() {
		t.Fatalf("expected a single armed timer after repeated evaluation")
	}
}

func TestTimerFirePublishesDuePair(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(time.Minute))})
	if !s.TimerArmed() {
		t.Fatalf("expected armed timer")
	}

	// Simulate the timer elapsing: advance the clock past the due time and
	// deliver the pending generation's fire.
	s.mu.Lock()
	gen := s.timerGen
	s.timer.Stop()
	s.mu.Unlock()
	s.nowFn = func() time.Time { return now.Add(time.Minute + time.Second) }
	s.fire(gen)

	pair := waitPair(t, s.C(), time.Second)
	if pair.Group.ID != "g" {
		t.Fatalf("fired timer must publish the due pair")
	}
}

func TestStaleTimerGenerationIsDiscarded(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(time.Minute))})
	s.mu.Lock()
	stale := s.timerGen
	s.mu.Unlock()

	// Any state change cancels the timer and bumps the generation.
	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(2*time.Minute))})

	s.nowFn = func() time.Time { return now.Add(10 * time.Minute) }
	s.fire(stale)
	expectNoPair(t, s.C(), 50*time.Millisecond)
}

func TestBlockedSchedulerComputesNothing(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	s.SetBlocked(true)
	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(-time.Second))})
	if s.TimerArmed() {
		t.Fatalf("blocked scheduler must not arm timers")
	}
	expectNoPair(t, s.C(), 50*time.Millisecond)
	if _, ok := s.Due(); ok {
		t.Fatalf("blocked scheduler must not compute a due item")
	}

	s.SetBlocked(false)
	pair := waitPair(t, s.C(), time.Second)
	if pair.Group.ID != "g" {
		t.Fatalf("unblocking must re-evaluate and publish")
	}
}

func TestBlockToggleLeavesPresentedPairUnchanged(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	s.SetGroups([]model.ReminderGroup{groupDueAt("g", now.Add(-time.Second))})
	first := waitPair(t, s.C(), time.Second)

	s.SetBlocked(true)
	s.SetBlocked(false)

	current, ok := s.Due()
	if !ok {
		t.Fatalf("presented pair lost across block toggle")
	}
	if current.Group.ID != first.Group.ID || current.Item.ID != first.Item.ID {
		t.Fatalf("presented pair changed across block toggle")
	}
	expectNoPair(t, s.C(), 50*time.Millisecond)
}

func TestIneligibleGroupsStayIdle(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	disabled := groupDueAt("off", now.Add(-time.Second))
	disabled.Enabled = false
	itemless := groupDueAt("empty", now.Add(-time.Second))
	for i := range itemless.Items {
		itemless.Items[i].Enabled = false
	}

	s.SetGroups([]model.ReminderGroup{disabled, itemless})
	if s.TimerArmed() {
		t.Fatalf("no eligible groups, no timer expected")
	}
	expectNoPair(t, s.C(), 50*time.Millisecond)
}

func TestSoonestGroupWinsAndTiesAreStable(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	a := groupDueAt("a", now.Add(-time.Second))
	b := groupDueAt("b", now.Add(-2*time.Second))
	s.SetGroups([]model.ReminderGroup{a, b})
	pair := waitPair(t, s.C(), time.Second)
	if pair.Group.ID != "b" {
		t.Fatalf("smaller due time must win, got %s", pair.Group.ID)
	}

	ties := schedulerAt(now)
	defer ties.Stop()
	tieA := groupDueAt("tie-a", now.Add(-time.Second))
	tieB := groupDueAt("tie-b", now.Add(-time.Second))
	ties.SetGroups([]model.ReminderGroup{tieA, tieB})
	pair = waitPair(t, ties.C(), time.Second)
	if pair.Group.ID != "tie-a" {
		t.Fatalf("equal due times must break ties by original order, got %s", pair.Group.ID)
	}
}

func TestDisabledCurrentItemResolvesForward(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	g := groupDueAt("g", now.Add(-time.Second))
	g.Items[0].Enabled = false
	s.SetGroups([]model.ReminderGroup{g})

	pair := waitPair(t, s.C(), time.Second)
	if pair.Item.ID != "g-i2" {
		t.Fatalf("disabled current item must resolve to the next enabled one, got %s", pair.Item.ID)
	}
}

func TestClearDueReevaluates(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	a := groupDueAt("a", now.Add(-3*time.Second))
	b := groupDueAt("b", now.Add(-time.Second))
	s.SetGroups([]model.ReminderGroup{a, b})

	first := waitPair(t, s.C(), time.Second)
	if first.Group.ID != "a" {
		t.Fatalf("expected a first, got %s", first.Group.ID)
	}

	// The disposition updates the completed group before the pair is cleared,
	// the way the application layer drives it.
	completed := groupDueAt("a", now.Add(5*time.Minute))
	s.SetGroups([]model.ReminderGroup{completed, b})
	s.ClearDue()

	second := waitPair(t, s.C(), time.Second)
	if second.Group.ID != "b" {
		t.Fatalf("disposing the pair must surface the next due group, got %s", second.Group.ID)
	}
}

func TestNoTimerWhilePresenting(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	s := schedulerAt(now)
	defer s.Stop()

	due := groupDueAt("due", now.Add(-time.Second))
	future := groupDueAt("future", now.Add(time.Minute))
	s.SetGroups([]model.ReminderGroup{due, future})

	waitPair(t, s.C(), time.Second)
	if s.TimerArmed() {
		t.Fatalf("presenting state must not keep a timer armed")
	}
}
