package game

import (
	"maps"
	"slices"
)

type scheduledAction struct {
	handle Handle
	action Action
}

// actions is the scheduler state. Additions and removals requested while a
// tick is running are buffered and only applied at the start of the next
// tick, so the set being run is never changed underneath it.
type actions struct {
	live    map[Handle]Action
	added   []scheduledAction
	removed []Handle
	oneTime []Action
	last    Handle
}

func newActions() *actions {
	return &actions{
		live: map[Handle]Action{},
	}
}

func (a *actions) add(action Action) Handle {
	a.last++
	a.added = append(a.added, scheduledAction{handle: a.last, action: action})
	return a.last
}

func (a *actions) addOneTime(action Action) {
	a.oneTime = append(a.oneTime, action)
}

// remove requests removal of h. Unknown handles are ignored when applied.
func (a *actions) remove(h Handle) {
	a.removed = append(a.removed, h)
}

// apply merges pending additions then pending removals into the live set.
func (a *actions) apply() {
	for _, s := range a.added {
		a.live[s.handle] = s.action
	}
	a.added = nil

	for _, h := range a.removed {
		delete(a.live, h)
	}
	a.removed = nil
}

// detachLive returns the live set in handle order. Nothing a running action
// can reach writes to the live map; it only appends to the pending lists.
func (a *actions) detachLive() []scheduledAction {
	run := make([]scheduledAction, 0, len(a.live))
	for _, h := range slices.Sorted(maps.Keys(a.live)) {
		run = append(run, scheduledAction{handle: h, action: a.live[h]})
	}
	return run
}

// detachOneTime takes the queued one-time actions. Anything queued while
// they run lands in a fresh list for the next tick.
func (a *actions) detachOneTime() []Action {
	run := a.oneTime
	a.oneTime = nil
	return run
}

func (a *actions) liveCount() int {
	return len(a.live)
}

func (a *actions) pendingCount() int {
	return len(a.added) + len(a.oneTime)
}
