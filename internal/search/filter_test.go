package search

import "testing"

func entries(titles ...string) []Entry {
	out := make([]Entry, len(titles))
	for i, title := range titles {
		out[i] = Entry{Title: title, Index: i}
	}
	return out
}

func TestEmptyQueryReturnsEverything(t *testing.T) {
	got := Filter("", entries("Go Tutorial", "Cat Video", "Keyboard Review"))
	if len(got) != 3 {
		t.Fatalf("matches = %d, want 3", len(got))
	}
	for i, m := range got {
		if m.Index != i {
			t.Errorf("order changed: match %d has index %d", i, m.Index)
		}
	}
}

func TestFilterNarrowsAndRanks(t *testing.T) {
	got := Filter("go", entries("Go Tutorial", "Cat Video", "Golang Deep Dive"))

	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
	for _, m := range got {
		if m.Title == "Cat Video" {
			t.Error("non-matching entry survived the filter")
		}
		if len(m.MatchedIndexes) == 0 {
			t.Errorf("%q has no match positions", m.Title)
		}
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	if got := Filter("TUTORIAL", entries("go tutorial")); len(got) != 1 {
		t.Errorf("matches = %d, want 1", len(got))
	}
}

func TestFilterNoMatches(t *testing.T) {
	if got := Filter("zzz", entries("Go Tutorial")); got != nil {
		t.Errorf("matches = %v, want nil", got)
	}
}
