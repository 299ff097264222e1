// Package interact implements the optimistic toggle protocol for like and
// subscribe actions: flip locally first, confirm or roll back when the
// request settles, one in-flight toggle per entity.
package interact

import (
	"fmt"
	"log/slog"
)

// Toggle kinds, used to key in-flight tracking per entity.
const (
	KindLike      = "like"
	KindSubscribe = "subscribe"
)

// ToggleState is the flag plus its dependent counter as a view displays
// them. Subscribe toggles leave Count at zero.
type ToggleState struct {
	Active bool
	Count  int
}

// Outcome reports what Begin did with a toggle click.
type Outcome int

const (
	// Applied means the optimistic flip happened and a request should be issued
	Applied Outcome = iota
	// NeedsLogin means no session exists; open the login-required modal,
	// mutate nothing, issue nothing
	NeedsLogin
	// Busy means a toggle for this entity is still in flight; the click is
	// ignored until it settles
	Busy
)

// Controller owns the toggle lifecycle. It captures the pre-click state per
// entity so a failure restores the view exactly, and serializes toggles so
// a stale rollback can never clobber a newer optimistic state.
type Controller struct {
	loggedIn func() bool
	inflight map[string]ToggleState
	logger   *slog.Logger
}

// NewController creates a controller that consults loggedIn before any
// optimistic mutation.
func NewController(loggedIn func() bool, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		loggedIn: loggedIn,
		inflight: make(map[string]ToggleState),
		logger:   logger,
	}
}

func entityKey(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// Pending reports whether a toggle for the entity is in flight.
func (c *Controller) Pending(kind string, id int64) bool {
	_, ok := c.inflight[entityKey(kind, id)]
	return ok
}

// Begin applies the optimistic step: capture the previous state, flip the
// flag, and adjust the counter by one in the flip's direction — all before
// any network call. The returned state is what the view renders immediately.
func (c *Controller) Begin(kind string, id int64, current ToggleState) (ToggleState, Outcome) {
	if !c.loggedIn() {
		return current, NeedsLogin
	}

	key := entityKey(kind, id)
	if _, busy := c.inflight[key]; busy {
		return current, Busy
	}
	c.inflight[key] = current

	next := ToggleState{Active: !current.Active}
	if next.Active {
		next.Count = current.Count + 1
	} else {
		next.Count = current.Count - 1
	}
	return next, Applied
}

// Confirm settles a successful toggle with the server-confirmed flag. When
// the server echoes a fresh count it replaces the optimistic one; otherwise
// the optimistic count stands.
func (c *Controller) Confirm(kind string, id int64, active bool, echoCount *int, current ToggleState) ToggleState {
	delete(c.inflight, entityKey(kind, id))

	next := current
	next.Active = active
	if echoCount != nil {
		next.Count = *echoCount
	}
	return next
}

// Rollback settles a failed toggle by restoring the captured pre-click
// state in full.
func (c *Controller) Rollback(kind string, id int64, current ToggleState, err error) ToggleState {
	key := entityKey(kind, id)
	prev, ok := c.inflight[key]
	delete(c.inflight, key)

	c.logger.Error("toggle failed", "kind", kind, "id", id, "error", err)
	if !ok {
		return current
	}
	return prev
}
