// Package nav holds the UI-facing navigation state machine and the
// orchestrator that wires pagination, position coordination and rendering
// together.
package nav

import (
	"go.uber.org/zap"

	"leaf/common"
	"leaf/reading"
)

// Context is the transient navigation state projected for one render:
// current position, affordance enablement and the busy flag. Recomputed
// every render from the coordinator's locator, never persisted - so button
// state cannot drift from the real position.
type Context struct {
	Loc          reading.Locator
	GlobalIndex  int
	PageCount    int
	Percent      float64
	HasPrev      bool
	HasNext      bool
	Busy         bool
	BookTitle    string
	ChapterTitle string
	Link         string
}

// Chrome is the UI contract: one render entry point. The controller calls
// it with a fresh Context after every state change.
type Chrome interface {
	Render(Context)
}

// Controller serializes navigation actions through a busy lock. The lock is
// taken the instant an action is dispatched and released only when the
// corresponding transition completes, success or failure - a fast
// double-click must never race two page transitions. Actions arriving while
// busy are ignored outright, not queued.
type Controller struct {
	dispatch func(common.NavAction)
	bus      *reading.Bus
	log      *zap.Logger
	busy     bool
}

// NewController wires the controller to the action sink (the orchestrator)
// and the event bus used to announce busy transitions.
func NewController(dispatch func(common.NavAction), bus *reading.Bus, log *zap.Logger) *Controller {
	return &Controller{dispatch: dispatch, bus: bus, log: log}
}

// Busy reports whether a transition is in flight.
func (c *Controller) Busy() bool {
	return c.busy
}

// OnAction is the single entry point for navigation actions from the UI.
func (c *Controller) OnAction(a common.NavAction) {
	if !a.IsValid() {
		c.log.Warn("Ignoring unknown navigation action", zap.Int("action", int(a)))
		return
	}
	if c.busy {
		c.log.Debug("Navigation busy, ignoring action", zap.Stringer("action", a))
		return
	}
	c.busy = true
	c.bus.Publish(reading.BusyChanged{Busy: true})
	c.dispatch(a)
}

// Release drops the busy lock. The orchestrator calls it from a defer so
// the lock cannot leak past a failed transition.
func (c *Controller) Release() {
	if !c.busy {
		return
	}
	c.busy = false
	c.bus.Publish(reading.BusyChanged{Busy: false})
}
