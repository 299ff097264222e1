// Package feed implements the client-side pagination state machines: an
// append-only infinite feed (home, subscriptions) and a page-replacing pager
// (notice, inquiry, and admin tables).
package feed

// Feed is the infinite-scroll list controller. It grows monotonically,
// deduplicates by id, and advances one page at a time. Each instance is
// owned by exactly one view; no other code mutates it.
type Feed[T any] struct {
	id func(T) int64

	items          []T
	seen           map[int64]struct{}
	gen            int
	page           int
	hasNextPage    bool
	initialLoading bool
	fetchingMore   bool
}

// New creates a feed keyed by the given id function.
func New[T any](id func(T) int64) *Feed[T] {
	f := &Feed[T]{id: id}
	f.Reset()
	return f
}

// Reset empties the feed for a fresh list context (navigation, new query).
// It also advances the generation, so responses armed before the reset are
// dropped when they land.
func (f *Feed[T]) Reset() {
	f.items = nil
	f.seen = make(map[int64]struct{})
	f.gen++
	f.page = 0
	f.hasNextPage = false
	f.initialLoading = false
	f.fetchingMore = false
}

// Gen returns the current generation. Callers capture it when a fetch arms
// and hand it back to Complete or Fail.
func (f *Feed[T]) Gen() int { return f.gen }

// Items returns the accumulated items in server page order.
func (f *Feed[T]) Items() []T { return f.items }

// Page returns the last page whose fetch completed (0 before the first).
func (f *Feed[T]) Page() int { return f.page }

// HasNextPage reports the server's most recent page metadata.
func (f *Feed[T]) HasNextPage() bool { return f.hasNextPage }

// InitialLoading reports whether the page-1 fetch is in flight.
func (f *Feed[T]) InitialLoading() bool { return f.initialLoading }

// FetchingMore reports whether a subsequent-page fetch is in flight.
func (f *Feed[T]) FetchingMore() bool { return f.fetchingMore }

// Loading reports whether any fetch is in flight.
func (f *Feed[T]) Loading() bool { return f.initialLoading || f.fetchingMore }

// Exhausted reports whether the end-of-feed notice should show. It requires
// at least one loaded item so "no more" never appears alongside an empty
// list.
func (f *Feed[T]) Exhausted() bool {
	return !f.hasNextPage && f.page > 0 && len(f.items) > 0
}

// BeginInitial arms the page-1 fetch. Returns the page to fetch and whether
// the caller should proceed (false while any fetch is in flight).
func (f *Feed[T]) BeginInitial() (int, bool) {
	if f.Loading() {
		return 0, false
	}
	f.Reset()
	f.initialLoading = true
	return 1, true
}

// BeginMore arms the next-page fetch. It fires only when the prior fetch
// completed with hasNextPage true and nothing is currently in flight; this
// is the sensor gate.
func (f *Feed[T]) BeginMore() (int, bool) {
	if f.Loading() || f.page == 0 || !f.hasNextPage {
		return 0, false
	}
	f.fetchingMore = true
	return f.page + 1, true
}

// Complete merges a successful page fetch. A response from a superseded
// generation (the feed was reset for a new context after the fetch armed) is
// dropped whole. Items whose id is already present are dropped before
// appending, guarding against a sensor double-fire or overlapping server
// pages.
func (f *Feed[T]) Complete(gen, page int, items []T, hasNextPage bool) {
	if gen != f.gen {
		return
	}
	for _, it := range items {
		key := f.id(it)
		if _, dup := f.seen[key]; dup {
			continue
		}
		f.seen[key] = struct{}{}
		f.items = append(f.items, it)
	}
	f.page = page
	f.hasNextPage = hasNextPage
	f.initialLoading = false
	f.fetchingMore = false
}

// Fail clears the in-flight flag and leaves the existing items untouched.
// The sensor re-arms naturally, giving an implicit retry. A failure from a
// superseded generation is ignored; the current fetch is still in flight.
func (f *Feed[T]) Fail(gen int) {
	if gen != f.gen {
		return
	}
	f.initialLoading = false
	f.fetchingMore = false
}
