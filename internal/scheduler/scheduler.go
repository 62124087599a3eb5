package scheduler

import (
	"sync"
	"time"

	"github.com/remloop/remloop/internal/model"
)

// Grace is the tolerance for slightly-past due times: a group whose due
// time fell within the last five seconds still fires immediately instead of
// waiting a full interval.
const Grace = 5 * time.Second

// DueGroupItem is the single (group, item) pair currently surfaced to the
// user.
type DueGroupItem struct {
	Group model.ReminderGroup
	Item  model.ReminderGroupItem
}

// Scheduler decides which item is due across all groups and arms one timer
// for the soonest future occurrence. It is always in one of three states:
// idle (nothing due, no timer), armed (one timer pending) or presenting (a
// due pair published, no timer). Evaluation re-runs on every groups change,
// on block/unblock and on disposition of the presented pair; each run
// cancels the previous timer before arming a new one, so at most one timer
// is ever pending.
type Scheduler struct {
	mu       sync.Mutex
	groups   []model.ReminderGroup
	blocked  bool
	due      *DueGroupItem
	timer    *time.Timer
	timerGen uint64
	out      chan DueGroupItem
	dropped  uint64
	stopped  bool
	nowFn    func() time.Time
}

func New(bufferSize int) *Scheduler {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Scheduler{
		out:   make(chan DueGroupItem, bufferSize),
		nowFn: time.Now,
	}
}

// C delivers every newly published due pair. Slow consumers drop
// notifications rather than blocking the scheduler; Due() always reflects
// the current pair regardless.
func (s *Scheduler) C() <-chan DueGroupItem {
	return s.out
}

// SetGroups replaces the evaluated group set and re-evaluates.
func (s *Scheduler) SetGroups(groups []model.ReminderGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = make([]model.ReminderGroup, len(groups))
	copy(s.groups, groups)
	s.evaluateLocked()
}

// SetBlocked pauses or resumes evaluation. While blocked no due item is
// computed and no timer is pending; unblocking re-evaluates. A pair already
// presented stays presented across a block/unblock cycle.
func (s *Scheduler) SetBlocked(blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blocked == blocked {
		return
	}
	s.blocked = blocked
	if blocked {
		s.cancelTimerLocked()
		return
	}
	s.evaluateLocked()
}

// Due returns the currently presented pair, if any.
func (s *Scheduler) Due() (DueGroupItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.due == nil {
		return DueGroupItem{}, false
	}
	return *s.due, true
}

// ClearDue disposes of the presented pair (the user completed, snoozed or
// dismissed it) and re-evaluates against the current group set.
func (s *Scheduler) ClearDue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.due = nil
	s.evaluateLocked()
}

// TimerArmed reports whether a future-due timer is pending.
func (s *Scheduler) TimerArmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Dropped counts published pairs the consumer was too slow to receive.
func (s *Scheduler) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Stop cancels any pending timer and stops publication permanently.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancelTimerLocked()
	close(s.out)
}

// evaluateLocked implements the state machine. It always starts by
// cancelling the pending timer, then either stays idle (blocked, presenting,
// or nothing eligible), publishes an immediately-due pair, or arms a single
// timer for the soonest future due time.
func (s *Scheduler) evaluateLocked() {
	s.cancelTimerLocked()
	if s.stopped || s.blocked || s.due != nil {
		return
	}

	now := s.nowFn()
	eligible := s.eligibleLocked()
	if len(eligible) == 0 {
		return
	}

	if g, ok := soonestWithin(eligible, now.Add(Grace)); ok {
		s.publishLocked(g)
		return
	}

	next := soonest(eligible)
	delay := next.NextDueTime.Sub(now)
	if delay < 0 {
		delay = 0
	}
	gen := s.timerGen
	s.timer = time.AfterFunc(delay, func() { s.fire(gen) })
}

// fire runs when the armed timer elapses. The generation guard discards
// stale timers that were cancelled after the callback was already queued.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || gen != s.timerGen {
		return
	}
	s.timer = nil
	s.evaluateLocked()
}

func (s *Scheduler) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *Scheduler) eligibleLocked() []model.ReminderGroup {
	out := make([]model.ReminderGroup, 0, len(s.groups))
	for _, g := range s.groups {
		if g.Enabled && g.HasEnabledItem() {
			out = append(out, g)
		}
	}
	return out
}

func (s *Scheduler) publishLocked(g model.ReminderGroup) {
	item, ok := g.CurrentDueItem()
	if !ok {
		return
	}
	pair := DueGroupItem{Group: g, Item: item}
	s.due = &pair
	select {
	case s.out <- pair:
	default:
		s.dropped++
	}
}

// soonestWithin picks the group with the smallest NextDueTime at or before
// the deadline. Ties keep the earliest group in original order.
func soonestWithin(groups []model.ReminderGroup, deadline time.Time) (model.ReminderGroup, bool) {
	var best model.ReminderGroup
	found := false
	for _, g := range groups {
		if g.NextDueTime.After(deadline) {
			continue
		}
		if !found || g.NextDueTime.Before(best.NextDueTime) {
			best = g
			found = true
		}
	}
	return best, found
}

func soonest(groups []model.ReminderGroup) model.ReminderGroup {
	best := groups[0]
	for _, g := range groups[1:] {
		if g.NextDueTime.Before(best.NextDueTime) {
			best = g
		}
	}
	return best
}
