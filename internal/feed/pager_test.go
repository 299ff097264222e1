package feed

import (
	"reflect"
	"testing"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"centered mid-range", 10, 20, []int{8, 9, 10, 11, 12}},
		{"clamped at start", 1, 20, []int{1, 2, 3, 4, 5}},
		{"clamped at end", 20, 20, []int{16, 17, 18, 19, 20}},
		{"second page", 2, 20, []int{1, 2, 3, 4, 5}},
		{"near end", 19, 20, []int{16, 17, 18, 19, 20}},
		{"fewer pages than window", 2, 3, []int{1, 2, 3}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageWindow(tt.current, tt.totalPages); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestPagerReplacesItems(t *testing.T) {
	p := NewPager[row]()

	if !p.Begin(1) {
		t.Fatal("Begin(1) should be allowed on an empty pager")
	}
	p.Complete(1, rows(1, 2, 3), 25, 3)

	if !p.Begin(2) {
		t.Fatal("Begin(2) should be allowed")
	}
	p.Complete(2, rows(4, 5), 25, 3)

	// Mode A replaces the set entirely
	if got := len(p.Items()); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
	if p.Page() != 2 || p.Total() != 25 {
		t.Errorf("page/total = %d/%d, want 2/25", p.Page(), p.Total())
	}
}

func TestPagerBoundaryControls(t *testing.T) {
	p := NewPager[row]()
	p.Begin(1)
	p.Complete(1, rows(1), 30, 3)

	if p.CanPrev() {
		t.Error("prev should disable on page 1")
	}
	if !p.CanNext() {
		t.Error("next should enable below totalPages")
	}

	p.Begin(3)
	p.Complete(3, rows(3), 30, 3)
	if p.CanNext() {
		t.Error("next should disable on the last page")
	}
	if !p.CanPrev() {
		t.Error("prev should enable past page 1")
	}
}

func TestPagerGuardsInflightAndRange(t *testing.T) {
	p := NewPager[row]()

	p.Begin(1)
	if p.Begin(2) {
		t.Error("Begin should refuse while a fetch is outstanding")
	}
	p.Complete(1, rows(1), 30, 3)

	if p.Begin(0) {
		t.Error("Begin should refuse page 0")
	}
	if p.Begin(4) {
		t.Error("Begin should refuse past totalPages")
	}
}

func TestPagerFailureKeepsDisplayedSet(t *testing.T) {
	p := NewPager[row]()
	p.Begin(1)
	p.Complete(1, rows(1, 2), 20, 2)

	p.Begin(2)
	p.Fail()

	if got := len(p.Items()); got != 2 {
		t.Errorf("items = %d after failure, want 2", got)
	}
	if p.Page() != 1 {
		t.Errorf("page = %d after failure, want 1", p.Page())
	}
	// The user re-triggers the same page manually
	if !p.Begin(2) {
		t.Error("Begin(2) should be allowed again after failure")
	}
}
