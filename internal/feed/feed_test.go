package feed

import "testing"

type row struct {
	ID    int64
	Title string
}

func rows(ids ...int64) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{ID: id}
	}
	return out
}

func newTestFeed() *Feed[row] {
	return New(func(r row) int64 { return r.ID })
}

func TestFeedDisjointPagesAccumulate(t *testing.T) {
	f := newTestFeed()

	page, ok := f.BeginInitial()
	if !ok || page != 1 {
		t.Fatalf("BeginInitial = (%d, %v), want (1, true)", page, ok)
	}
	if !f.InitialLoading() {
		t.Error("initial fetch should be marked in flight")
	}
	f.Complete(f.Gen(), 1, rows(1, 2, 3), true)

	page, ok = f.BeginMore()
	if !ok || page != 2 {
		t.Fatalf("BeginMore = (%d, %v), want (2, true)", page, ok)
	}
	f.Complete(f.Gen(), 2, rows(4, 5), true)

	if got := len(f.Items()); got != 5 {
		t.Errorf("items = %d, want 5", got)
	}
	if f.Page() != 2 {
		t.Errorf("page = %d, want 2", f.Page())
	}
}

func TestFeedOverlappingPagesDedupe(t *testing.T) {
	f := newTestFeed()

	f.BeginInitial()
	f.Complete(f.Gen(), 1, rows(1, 2, 3, 4), true)

	f.BeginMore()
	// Two of five ids already present: expect 4 + (5 - 2)
	f.Complete(f.Gen(), 2, rows(3, 4, 5, 6, 7), false)

	if got := len(f.Items()); got != 7 {
		t.Errorf("items = %d, want 7", got)
	}
}

func TestFeedSensorGate(t *testing.T) {
	f := newTestFeed()

	// Before any load the sensor is inert
	if _, ok := f.BeginMore(); ok {
		t.Error("BeginMore should refuse before the initial load")
	}

	f.BeginInitial()
	// While the initial fetch is in flight, no scroll fetch arms
	if _, ok := f.BeginMore(); ok {
		t.Error("BeginMore should refuse while initial fetch is in flight")
	}
	f.Complete(f.Gen(), 1, rows(1), true)

	if _, ok := f.BeginMore(); !ok {
		t.Fatal("BeginMore should fire after a completed page with hasNextPage")
	}
	// A second fire while the first is outstanding is ignored
	if _, ok := f.BeginMore(); ok {
		t.Error("BeginMore should refuse while a fetch is outstanding")
	}
	f.Complete(f.Gen(), 2, rows(2), false)

	// Once hasNextPage is false the sensor stays inert
	if _, ok := f.BeginMore(); ok {
		t.Error("BeginMore should refuse once the feed is exhausted")
	}
}

func TestFeedExhaustedOnlyWithItems(t *testing.T) {
	f := newTestFeed()

	f.BeginInitial()
	f.Complete(f.Gen(), 1, nil, false)
	if f.Exhausted() {
		t.Error("empty feed should not read as exhausted")
	}

	f.Reset()
	f.BeginInitial()
	f.Complete(f.Gen(), 1, rows(1), false)
	if !f.Exhausted() {
		t.Error("non-empty finished feed should read as exhausted")
	}
}

func TestFeedFailureLeavesItems(t *testing.T) {
	f := newTestFeed()

	f.BeginInitial()
	f.Complete(f.Gen(), 1, rows(1, 2), true)

	f.BeginMore()
	f.Fail(f.Gen())

	if got := len(f.Items()); got != 2 {
		t.Errorf("items = %d after failure, want 2", got)
	}
	if f.Loading() {
		t.Error("in-flight flag should clear on failure")
	}
	// The sensor re-arms, giving an implicit retry of the same page
	if page, ok := f.BeginMore(); !ok || page != 2 {
		t.Errorf("retry = (%d, %v), want (2, true)", page, ok)
	}
}

func TestFeedResetOnNewContext(t *testing.T) {
	f := newTestFeed()

	f.BeginInitial()
	f.Complete(f.Gen(), 1, rows(1, 2), true)

	f.Reset()
	if len(f.Items()) != 0 || f.Page() != 0 || f.HasNextPage() {
		t.Error("reset should empty the feed")
	}

	// Ids from the previous context are loadable again
	f.BeginInitial()
	f.Complete(f.Gen(), 1, rows(1, 2), false)
	if got := len(f.Items()); got != 2 {
		t.Errorf("items = %d after reset+reload, want 2", got)
	}
}

func TestFeedStaleGenerationDropped(t *testing.T) {
	f := newTestFeed()

	// Arm a fetch for the first context and capture its generation
	f.BeginInitial()
	stale := f.Gen()

	// The user switches context (new query) before the response lands
	f.Reset()
	f.BeginInitial()
	fresh := f.Gen()

	// The old response arrives late: dropped whole, fetch still in flight
	f.Complete(stale, 1, rows(1, 2), true)
	if got := len(f.Items()); got != 0 {
		t.Errorf("items = %d after stale response, want 0", got)
	}
	if !f.InitialLoading() {
		t.Error("stale response must not clear the in-flight flag")
	}

	// The fresh response applies normally
	f.Complete(fresh, 1, rows(9), false)
	if got := len(f.Items()); got != 1 {
		t.Errorf("items = %d after fresh response, want 1", got)
	}

	// A stale failure is equally inert
	f.Reset()
	f.BeginInitial()
	f.Fail(stale)
	if !f.InitialLoading() {
		t.Error("stale failure must not clear the in-flight flag")
	}
}
