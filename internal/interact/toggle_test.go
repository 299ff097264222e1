package interact

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loggedIn() bool  { return true }
func loggedOut() bool { return false }

func TestBeginFlipsSynchronously(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	start := ToggleState{Active: false, Count: 41}
	got, outcome := c.Begin(KindLike, 1, start)

	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}
	if !got.Active || got.Count != 42 {
		t.Errorf("optimistic state = %+v, want {true 42}", got)
	}
}

func TestBeginDecrementsWhenUnliking(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	got, _ := c.Begin(KindLike, 1, ToggleState{Active: true, Count: 10})
	if got.Active || got.Count != 9 {
		t.Errorf("optimistic state = %+v, want {false 9}", got)
	}
}

func TestRollbackRestoresExactPreClickState(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	start := ToggleState{Active: false, Count: 7}
	optimistic, _ := c.Begin(KindLike, 3, start)

	got := c.Rollback(KindLike, 3, optimistic, errors.New("network down"))
	if got != start {
		t.Errorf("rollback = %+v, want %+v", got, start)
	}
	if c.Pending(KindLike, 3) {
		t.Error("rollback should clear the in-flight entry")
	}
}

func TestConfirmAppliesServerFlag(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	optimistic, _ := c.Begin(KindSubscribe, 9, ToggleState{Active: false})
	got := c.Confirm(KindSubscribe, 9, true, nil, optimistic)

	if !got.Active {
		t.Error("confirmed flag should replace the optimistic one")
	}
	if c.Pending(KindSubscribe, 9) {
		t.Error("confirm should clear the in-flight entry")
	}
}

func TestConfirmPrefersEchoedCount(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	optimistic, _ := c.Begin(KindLike, 4, ToggleState{Active: false, Count: 10})
	echo := 13 // another viewer liked meanwhile
	got := c.Confirm(KindLike, 4, true, &echo, optimistic)

	if got.Count != 13 {
		t.Errorf("count = %d, want echoed 13", got.Count)
	}

	// Without an echo the optimistic count stands
	optimistic, _ = c.Begin(KindLike, 5, ToggleState{Active: false, Count: 10})
	got = c.Confirm(KindLike, 5, true, nil, optimistic)
	if got.Count != 11 {
		t.Errorf("count = %d, want optimistic 11", got.Count)
	}
}

func TestLoggedOutShortCircuits(t *testing.T) {
	c := NewController(loggedOut, nullLogger())

	start := ToggleState{Active: false, Count: 5}
	got, outcome := c.Begin(KindLike, 1, start)

	if outcome != NeedsLogin {
		t.Fatalf("outcome = %v, want NeedsLogin", outcome)
	}
	if got != start {
		t.Errorf("state = %+v, want unchanged %+v", got, start)
	}
	if c.Pending(KindLike, 1) {
		t.Error("no in-flight entry should exist without a session")
	}
}

func TestSecondToggleWhileInFlightIsIgnored(t *testing.T) {
	c := NewController(loggedIn, nullLogger())

	optimistic, _ := c.Begin(KindLike, 2, ToggleState{Active: false, Count: 1})

	got, outcome := c.Begin(KindLike, 2, optimistic)
	if outcome != Busy {
		t.Fatalf("outcome = %v, want Busy", outcome)
	}
	if got != optimistic {
		t.Errorf("busy click mutated state: %+v", got)
	}

	// A different entity is unaffected
	if _, outcome := c.Begin(KindLike, 3, ToggleState{}); outcome != Applied {
		t.Errorf("independent entity outcome = %v, want Applied", outcome)
	}
}
