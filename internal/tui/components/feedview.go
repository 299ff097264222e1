package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/feed"
	"github.com/wetube/tube/internal/search"
	"github.com/wetube/tube/internal/tui/styles"
)

// sensorRows is how close to the end of the loaded list the cursor must be
// before the next-page fetch arms. The terminal analog of a near-viewport
// visibility sensor.
const sensorRows = 3

// FeedView renders an infinite-scroll video list over a feed controller.
// Moving the cursor near the end reports that more content is wanted; the
// controller decides whether a fetch actually fires.
type FeedView struct {
	Feed *feed.Feed[domain.Video]

	cursor int
	offset int
	width  int
	height int

	// Local fuzzy filter over the loaded items; empty means unfiltered
	filterQuery string
	filtered    []int
}

func NewFeedView() FeedView {
	return FeedView{
		Feed: feed.New(func(v domain.Video) int64 { return v.ID }),
	}
}

func (f *FeedView) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// Reset empties the controller and view state for a fresh list context.
func (f *FeedView) Reset() {
	f.Feed.Reset()
	f.cursor = 0
	f.offset = 0
	f.filterQuery = ""
	f.filtered = nil
}

// SetFilter applies a local fuzzy filter over the loaded items.
func (f *FeedView) SetFilter(query string) {
	f.filterQuery = query
	f.cursor = 0
	f.offset = 0
	if query == "" {
		f.filtered = nil
		return
	}

	items := f.Feed.Items()
	entries := make([]search.Entry, len(items))
	for i, v := range items {
		entries[i] = search.Entry{Title: v.Title, Index: i}
	}
	f.filtered = nil
	for _, m := range search.Filter(query, entries) {
		f.filtered = append(f.filtered, m.Index)
	}
}

// visible returns indexes into Feed.Items() honoring the filter.
func (f *FeedView) visible() []int {
	if f.filtered != nil || f.filterQuery != "" {
		return f.filtered
	}
	items := f.Feed.Items()
	out := make([]int, len(items))
	for i := range items {
		out[i] = i
	}
	return out
}

// Selected returns the video under the cursor.
func (f *FeedView) Selected() (domain.Video, bool) {
	vis := f.visible()
	if f.cursor < 0 || f.cursor >= len(vis) {
		return domain.Video{}, false
	}
	return f.Feed.Items()[vis[f.cursor]], true
}

func (f *FeedView) MoveUp() {
	if f.cursor > 0 {
		f.cursor--
	}
	f.clampScroll()
}

// MoveDown advances the cursor and reports whether the sensor tripped:
// cursor within sensorRows of the end of an unfiltered list.
func (f *FeedView) MoveDown() (wantMore bool) {
	vis := f.visible()
	if f.cursor < len(vis)-1 {
		f.cursor++
	}
	f.clampScroll()

	if f.filterQuery != "" {
		return false // the filter view never drives fetches
	}
	return f.cursor >= len(vis)-sensorRows
}

func (f *FeedView) clampScroll() {
	rows := f.rowsPerPage()
	if rows < 1 {
		rows = 1
	}
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+rows {
		f.offset = f.cursor - rows + 1
	}
}

func (f *FeedView) rowsPerPage() int {
	// Two lines per entry plus footer room
	return (f.height - 2) / 2
}

func (f *FeedView) View(spinnerFrame int) string {
	if f.Feed.InitialLoading() {
		spinner := styles.SpinnerFrames[spinnerFrame%len(styles.SpinnerFrames)]
		return styles.ContentStyle.Render(spinner + " Loading videos...")
	}

	vis := f.visible()
	if len(vis) == 0 {
		if f.filterQuery != "" {
			return styles.ContentStyle.Render(styles.DimStyle.Render("No videos match the filter."))
		}
		return styles.ContentStyle.Render(
			styles.DimStyle.Render("No videos yet.\nBe the first to upload one!"))
	}

	var b strings.Builder
	rows := f.rowsPerPage()
	end := f.offset + rows
	if end > len(vis) {
		end = len(vis)
	}

	items := f.Feed.Items()
	for i := f.offset; i < end; i++ {
		v := items[vis[i]]
		title := v.Title
		meta := fmt.Sprintf("%s · %d views · %d likes", v.Author.Nickname, v.Views, v.LikeCount)

		if i == f.cursor {
			b.WriteString(styles.SelectedItemStyle.Render(title))
			b.WriteString("\n")
			b.WriteString(styles.SelectedItemStyle.Render(styles.DimStyle.Render(meta)))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(title))
			b.WriteString("\n")
			b.WriteString(styles.NormalItemStyle.Render(styles.DimStyle.Render(meta)))
		}
		b.WriteString("\n")
	}

	// Footer: incremental spinner or exhaustion notice, never both
	if f.Feed.FetchingMore() {
		spinner := styles.SpinnerFrames[spinnerFrame%len(styles.SpinnerFrames)]
		b.WriteString(styles.DimStyle.Render(spinner + " Loading more..."))
	} else if f.Feed.Exhausted() {
		b.WriteString(styles.DimStyle.Render("— no more videos —"))
	}

	return styles.ContentStyle.Width(f.width).Render(
		lipgloss.NewStyle().MaxHeight(f.height).Render(b.String()))
}
