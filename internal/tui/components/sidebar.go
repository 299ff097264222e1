package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wetube/tube/internal/tui/styles"
)

// NavEntry is one sidebar destination. Guarded entries still render for
// logged-out users; the route guard handles the redirect on selection.
type NavEntry struct {
	Label     string
	Route     int
	AdminOnly bool
}

// Sidebar is the navigation rail. Its open/closed state is owned by the
// layout store; the component only renders.
type Sidebar struct {
	entries []NavEntry
	cursor  int
	width   int
	height  int
	focused bool
}

func NewSidebar(entries []NavEntry) Sidebar {
	return Sidebar{entries: entries, width: 24}
}

func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Sidebar) SetFocused(focused bool) { s.focused = focused }
func (s *Sidebar) Focused() bool           { return s.focused }

// VisibleEntries filters admin-only destinations for non-admin sessions.
func (s *Sidebar) VisibleEntries(isAdmin bool) []NavEntry {
	if isAdmin {
		return s.entries
	}
	out := make([]NavEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.AdminOnly {
			out = append(out, e)
		}
	}
	return out
}

func (s *Sidebar) MoveUp(isAdmin bool) {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *Sidebar) MoveDown(isAdmin bool) {
	if s.cursor < len(s.VisibleEntries(isAdmin))-1 {
		s.cursor++
	}
}

// Selected returns the entry under the cursor.
func (s *Sidebar) Selected(isAdmin bool) (NavEntry, bool) {
	entries := s.VisibleEntries(isAdmin)
	if s.cursor < 0 || s.cursor >= len(entries) {
		return NavEntry{}, false
	}
	return entries[s.cursor], true
}

// SelectRoute moves the cursor to the entry for a route, if present.
func (s *Sidebar) SelectRoute(route int, isAdmin bool) {
	for i, e := range s.VisibleEntries(isAdmin) {
		if e.Route == route {
			s.cursor = i
			return
		}
	}
}

func (s *Sidebar) View(isAdmin bool, activeRoute int) string {
	title := styles.AccentStyle.Bold(true).Render("WeTube")
	lines := []string{title, ""}

	for i, e := range s.VisibleEntries(isAdmin) {
		label := e.Label
		switch {
		case s.focused && i == s.cursor:
			label = styles.SelectedItemStyle.Render(label)
		case e.Route == activeRoute:
			label = styles.AccentStyle.Render("• " + label)
		default:
			label = styles.NormalItemStyle.Render(label)
		}
		lines = append(lines, label)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.SidebarStyle.Width(s.width).Height(s.height).Render(body)
}
