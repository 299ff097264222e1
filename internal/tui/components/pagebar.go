package components

import (
	"fmt"
	"strings"

	"github.com/wetube/tube/internal/feed"
	"github.com/wetube/tube/internal/tui/styles"
)

// PageBar renders the explicit-pagination control row: prev, at most five
// page numbers centered on the current page, next.
func PageBar(current, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}

	var parts []string

	if current > 1 {
		parts = append(parts, styles.PageInactiveStyle.Render("‹"))
	} else {
		parts = append(parts, styles.PageDisabledStyle.Render("‹"))
	}

	for _, page := range feed.PageWindow(current, totalPages) {
		label := fmt.Sprintf("%d", page)
		if page == current {
			parts = append(parts, styles.PageActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.PageInactiveStyle.Render(label))
		}
	}

	if current < totalPages {
		parts = append(parts, styles.PageInactiveStyle.Render("›"))
	} else {
		parts = append(parts, styles.PageDisabledStyle.Render("›"))
	}

	return strings.Join(parts, " ")
}
