package feed

// maxPageButtons is the width of the page-number window.
const maxPageButtons = 5

// Pager is the explicit-pagination list controller. Each successful load
// replaces the displayed set entirely; page changes are user-driven.
type Pager[T any] struct {
	items      []T
	page       int
	totalPages int
	total      int
	loading    bool
}

// NewPager creates an empty pager positioned before page 1.
func NewPager[T any]() *Pager[T] {
	return &Pager[T]{page: 1, totalPages: 1}
}

// Items returns the currently displayed page.
func (p *Pager[T]) Items() []T { return p.items }

// Page returns the current page number.
func (p *Pager[T]) Page() int { return p.page }

// TotalPages returns the server-reported page count.
func (p *Pager[T]) TotalPages() int { return p.totalPages }

// Total returns the server-reported item count.
func (p *Pager[T]) Total() int { return p.total }

// Loading reports whether a page fetch is in flight.
func (p *Pager[T]) Loading() bool { return p.loading }

// CanPrev reports whether the previous control is enabled.
func (p *Pager[T]) CanPrev() bool { return p.page > 1 }

// CanNext reports whether the next control is enabled.
func (p *Pager[T]) CanNext() bool { return p.page < p.totalPages }

// Begin arms a fetch for the given page. Returns false for out-of-range
// pages or while a fetch is outstanding; a failed page is retried by the
// user re-triggering the same page number.
func (p *Pager[T]) Begin(page int) bool {
	if p.loading || page < 1 {
		return false
	}
	// totalPages is unknown before the first load; allow page 1 through
	if p.totalPages > 0 && page > p.totalPages && len(p.items) > 0 {
		return false
	}
	p.loading = true
	return true
}

// Complete replaces the displayed set with the fetched page.
func (p *Pager[T]) Complete(page int, items []T, total, totalPages int) {
	p.items = items
	p.page = page
	p.total = total
	p.totalPages = totalPages
	p.loading = false
}

// Fail clears the in-flight flag, leaving the displayed set untouched.
func (p *Pager[T]) Fail() {
	p.loading = false
}

// Window returns the page numbers to render: at most five consecutive pages
// centered on the current page, clamped to [1, totalPages].
func (p *Pager[T]) Window() []int {
	return PageWindow(p.page, p.totalPages)
}

// PageWindow computes the button window for a current page and page count.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}

	start := current - maxPageButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxPageButtons - 1
	if end > totalPages {
		end = totalPages
		// Pull the start back when the window ran past the end
		if start = end - maxPageButtons + 1; start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
