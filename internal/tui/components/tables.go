package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/tui/styles"
)

// Rows visible per screen before the table scrolls.
const tableMaxVisible = 14

// UserTable is a scrollable table of accounts for the admin view.
type UserTable struct {
	users  []domain.AdminUser
	cursor int
	offset int
	width  int
}

func NewUserTable() *UserTable {
	return &UserTable{}
}

func (t *UserTable) SetUsers(users []domain.AdminUser) {
	t.users = users
	if t.cursor >= len(users) {
		t.cursor = 0
		t.offset = 0
	}
}

func (t *UserTable) SetWidth(w int) { t.width = w }

func (t *UserTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		if t.cursor < t.offset {
			t.offset = t.cursor
		}
	}
}

func (t *UserTable) MoveDown() {
	if t.cursor < len(t.users)-1 {
		t.cursor++
		if t.cursor >= t.offset+tableMaxVisible {
			t.offset = t.cursor - tableMaxVisible + 1
		}
	}
}

func (t *UserTable) Selected() *domain.AdminUser {
	if t.cursor < 0 || t.cursor >= len(t.users) {
		return nil
	}
	return &t.users[t.cursor]
}

func (t *UserTable) View() string {
	if len(t.users) == 0 {
		return styles.DimStyle.Render("No users")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-16s %-26s %-6s %7s %9s  %s", "NICKNAME", "EMAIL", "ROLE", "VIDEOS", "COMMENTS", "JOINED")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	end := t.offset + tableMaxVisible
	if end > len(t.users) {
		end = len(t.users)
	}
	for i := t.offset; i < end; i++ {
		u := t.users[i]
		row := fmt.Sprintf("%-16s %-26s %-6s %7d %9d  %s",
			truncate(u.Nickname, 16),
			truncate(u.Email, 26),
			string(u.Role),
			u.VideoCount,
			u.CommentCount,
			u.CreatedAt.Format("2006-01-02"))
		if i == t.cursor {
			b.WriteString(styles.SelectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if end < len(t.users) {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", len(t.users)-end)))
	}
	return b.String()
}

// VideoTable lists videos for the admin view, cursor-selectable for deletion.
type VideoTable struct {
	videos []domain.AdminVideo
	cursor int
	offset int
	width  int
}

func NewVideoTable() *VideoTable {
	return &VideoTable{}
}

func (t *VideoTable) SetVideos(videos []domain.AdminVideo) {
	t.videos = videos
	if t.cursor >= len(videos) {
		t.cursor = 0
		t.offset = 0
	}
}

func (t *VideoTable) SetWidth(w int) { t.width = w }

func (t *VideoTable) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		if t.cursor < t.offset {
			t.offset = t.cursor
		}
	}
}

func (t *VideoTable) MoveDown() {
	if t.cursor < len(t.videos)-1 {
		t.cursor++
		if t.cursor >= t.offset+tableMaxVisible {
			t.offset = t.cursor - tableMaxVisible + 1
		}
	}
}

func (t *VideoTable) Selected() *domain.AdminVideo {
	if t.cursor < 0 || t.cursor >= len(t.videos) {
		return nil
	}
	return &t.videos[t.cursor]
}

func (t *VideoTable) View() string {
	if len(t.videos) == 0 {
		return styles.DimStyle.Render("No videos")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-36s %-16s %8s %8s  %s", "TITLE", "AUTHOR", "VIEWS", "LIKES", "UPLOADED")
	b.WriteString(styles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	end := t.offset + tableMaxVisible
	if end > len(t.videos) {
		end = len(t.videos)
	}
	for i := t.offset; i < end; i++ {
		v := t.videos[i]
		row := fmt.Sprintf("%-36s %-16s %8d %8d  %s",
			truncate(v.Title, 36),
			truncate(v.Author.Nickname, 16),
			v.Views,
			v.LikeCount,
			v.CreatedAt.Format("2006-01-02"))
		if i == t.cursor {
			b.WriteString(styles.SelectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if end < len(t.videos) {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  ↓ %d more", len(t.videos)-end)))
	}
	return b.String()
}

// DashboardView renders the admin stat cards side by side.
func DashboardView(d *domain.Dashboard) string {
	if d == nil {
		return styles.DimStyle.Render("Loading dashboard...")
	}
	cards := []string{
		statCard("Users", d.Stats.TotalUsers),
		statCard("Videos", d.Stats.TotalVideos),
		statCard("Views", d.Stats.TotalViews),
		statCard("Pending inquiries", d.Stats.PendingInquiries),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(label string, value int) string {
	body := styles.StatValueStyle.Render(fmt.Sprintf("%d", value)) + "\n" +
		styles.DimStyle.Render(label)
	return styles.StatCardStyle.Render(body)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
