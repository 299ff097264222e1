package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wetube/tube/internal/tui/components"
	"github.com/wetube/tube/internal/tui/styles"
)

func (m *Model) renderBody() string {
	content := m.renderContent()

	var row string
	if m.layout.IsSidebarOpen() {
		row = lipgloss.JoinHorizontal(lipgloss.Top,
			m.sidebar.View(m.isAdmin(), int(m.route)),
			styles.ContentStyle.Render(content),
		)
	} else {
		row = styles.ContentStyle.Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, row, m.renderStatusBar())
}

func (m *Model) renderContent() string {
	if m.formKind != formNone {
		return m.form.View(m.spinnerFrame)
	}

	if isFeedRoute(m.route) {
		return m.renderFeed()
	}

	switch m.route {
	case RouteVideo:
		return m.renderVideo()
	case RouteChannel:
		return m.renderChannel()
	case RouteNotices:
		return m.renderNotices()
	case RouteNoticeDetail:
		return m.renderNoticeDetail()
	case RouteInquiries:
		return m.renderInquiries()
	case RouteInquiryDetail:
		return m.renderInquiryDetail()
	case RouteAdminDashboard:
		return m.renderDashboard()
	case RouteAdminUsers:
		return m.renderAdminUsers()
	case RouteAdminVideos:
		return m.renderAdminVideos()
	}
	return ""
}

func feedTitle(route Route) string {
	switch route {
	case RouteHome:
		return "Home"
	case RouteSearch:
		return "Search"
	case RouteSubscriptions:
		return "Subscriptions"
	case RouteHistory:
		return "Watch history"
	case RouteLiked:
		return "Liked videos"
	}
	return ""
}

func (m *Model) renderFeed() string {
	var b strings.Builder

	title := feedTitle(m.route)
	if m.route == RouteSearch && m.searchQuery != "" {
		title = fmt.Sprintf("Search: %q", m.searchQuery)
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
		return b.String()
	}
	if m.filtering {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.feeds[m.route].View(m.spinnerFrame))
	return b.String()
}

func (m *Model) renderVideo() string {
	if m.video == nil {
		return m.spinnerLine("loading video")
	}
	v := m.video

	like := "♡"
	if v.IsLiked {
		like = styles.AccentStyle.Render("♥")
	}
	sub := ""
	if v.IsSubscribed {
		sub = styles.SuccessStyle.Render(" [subscribed]")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(v.Author.Nickname) + sub)
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d views · %s %d · %s",
		v.Views, like, v.LikeCount, v.CreatedAt.Format("2006-01-02"))))
	b.WriteString("\n\n")
	if v.Description != "" {
		b.WriteString(v.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(m.comments.View(!m.sidebarFocus))
	return b.String()
}

func (m *Model) renderChannel() string {
	if m.channel == nil {
		return m.spinnerLine("loading channel")
	}
	ch := m.channel

	sub := styles.DimStyle.Render("[S] subscribe")
	if ch.IsSubscribed {
		sub = styles.SuccessStyle.Render("subscribed")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(ch.Nickname))
	b.WriteString("  " + sub)
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d subscribers · %d videos", ch.SubscriberCount, ch.VideoCount)))
	b.WriteString("\n\n")

	if len(ch.Videos) == 0 {
		b.WriteString(styles.DimStyle.Render("No uploads yet"))
		return b.String()
	}
	for i, v := range ch.Videos {
		line := fmt.Sprintf("%s  %s", v.Title,
			styles.DimStyle.Render(fmt.Sprintf("%d views", v.Views)))
		if i == m.channelCursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderNotices() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Notices"))
	b.WriteString("\n\n")

	if m.notices.Loading() && len(m.notices.Items()) == 0 {
		return b.String() + m.spinnerLine("loading notices")
	}
	items := m.notices.Items()
	if len(items) == 0 {
		b.WriteString(styles.DimStyle.Render("No notices"))
		return b.String()
	}
	for i, n := range items {
		line := fmt.Sprintf("%s  %s", n.Title,
			styles.DimStyle.Render(n.CreatedAt.Format("2006-01-02")))
		if i == m.noticesCursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.PageBar(m.notices.Page(), m.notices.TotalPages()))
	return b.String()
}

func (m *Model) renderNoticeDetail() string {
	if m.notice == nil {
		return m.spinnerLine("loading notice")
	}
	n := m.notice

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(n.Title))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%s · %d views",
		n.CreatedAt.Format("2006-01-02"), n.ViewCount)))
	b.WriteString("\n\n")
	b.WriteString(n.Content)
	return b.String()
}

func (m *Model) renderInquiries() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Inquiries"))
	b.WriteString("\n\n")

	if m.inquiries.Loading() && len(m.inquiries.Items()) == 0 {
		return b.String() + m.spinnerLine("loading inquiries")
	}
	items := m.inquiries.Items()
	if len(items) == 0 {
		b.WriteString(styles.DimStyle.Render("No inquiries. Press n to write one."))
		return b.String()
	}
	for i, inq := range items {
		status := styles.DimStyle.Render("open")
		if inq.IsAnswered {
			status = styles.SuccessStyle.Render("answered")
		}
		line := fmt.Sprintf("%s  %s", inq.Title, status)
		if i == m.inquiriesCursor {
			b.WriteString(styles.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(styles.NormalItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.PageBar(m.inquiries.Page(), m.inquiries.TotalPages()))
	return b.String()
}

func (m *Model) renderInquiryDetail() string {
	if m.inquiry == nil {
		return m.spinnerLine("loading inquiry")
	}
	inq := m.inquiry

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(inq.Title))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%s · %s",
		inq.Author.Nickname, inq.CreatedAt.Format("2006-01-02"))))
	b.WriteString("\n\n")
	b.WriteString(inq.Content)
	b.WriteString("\n\n")

	if inq.IsAnswered {
		b.WriteString(styles.SuccessStyle.Render("Answer"))
		if inq.AnsweredAt != nil {
			b.WriteString(styles.DimStyle.Render("  " + inq.AnsweredAt.Format("2006-01-02")))
		}
		b.WriteString("\n")
		b.WriteString(inq.Answer)
	} else {
		b.WriteString(styles.DimStyle.Render("Not answered yet"))
	}
	return b.String()
}

func (m *Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(components.DashboardView(m.dashboard))
	if m.dashboard == nil {
		return b.String()
	}
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Recent users"))
	b.WriteString("\n")
	for _, u := range m.dashboard.RecentUsers {
		b.WriteString(fmt.Sprintf("  %s  %s\n", u.Nickname,
			styles.DimStyle.Render(u.CreatedAt.Format("2006-01-02"))))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Recent videos"))
	b.WriteString("\n")
	for _, v := range m.dashboard.RecentVideos {
		b.WriteString(fmt.Sprintf("  %s  %s\n", v.Title,
			styles.DimStyle.Render(v.Author.Nickname)))
	}
	return b.String()
}

func (m *Model) renderAdminUsers() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Users"))
	b.WriteString("\n\n")
	if m.adminUsers.Loading() && len(m.adminUsers.Items()) == 0 {
		return b.String() + m.spinnerLine("loading users")
	}
	b.WriteString(m.userTable.View())
	b.WriteString("\n")
	b.WriteString(components.PageBar(m.adminUsers.Page(), m.adminUsers.TotalPages()))
	return b.String()
}

func (m *Model) renderAdminVideos() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Videos"))
	b.WriteString("\n\n")
	if m.adminVideos.Loading() && len(m.adminVideos.Items()) == 0 {
		return b.String() + m.spinnerLine("loading videos")
	}
	b.WriteString(m.videoTable.View())
	b.WriteString("\n")
	b.WriteString(components.PageBar(m.adminVideos.Page(), m.adminVideos.TotalPages()))
	return b.String()
}

func (m *Model) spinnerLine(text string) string {
	frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
	return styles.DimStyle.Render(frame + " " + text + "...")
}

func (m *Model) renderStatusBar() string {
	if m.statusMsg != "" {
		if m.statusIsErr {
			return styles.ErrorStyle.Render(" " + m.statusMsg)
		}
		return styles.SuccessStyle.Render(" " + m.statusMsg)
	}

	who := "not signed in"
	if snap := m.session.Snapshot(); snap.IsLoggedIn && snap.User != nil {
		who = snap.User.Nickname
		if snap.User.Role != "" {
			who += " (" + strings.ToLower(string(snap.User.Role)) + ")"
		}
	}
	return styles.DimStyle.Render(fmt.Sprintf(" %s · tab sidebar · / filter · s search · ctrl+c quit", who))
}
