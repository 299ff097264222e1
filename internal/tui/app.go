package tui

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/feed"
	"github.com/wetube/tube/internal/interact"
	"github.com/wetube/tube/internal/service"
	"github.com/wetube/tube/internal/session"
	"github.com/wetube/tube/internal/tui/components"
)

// Route identifies a screen.
type Route int

const (
	RouteHome Route = iota
	RouteSearch
	RouteSubscriptions
	RouteHistory
	RouteLiked
	RouteVideo
	RouteChannel
	RouteUpload
	RouteSignIn
	RouteSignUp
	RouteProfile
	RouteNotices
	RouteNoticeDetail
	RouteNoticeEdit
	RouteInquiries
	RouteInquiryDetail
	RouteInquiryEdit
	RouteInquiryAnswer
	RouteAdminDashboard
	RouteAdminUsers
	RouteAdminVideos
)

// requirementFor maps each route to the session level it demands.
func requirementFor(route Route) session.Requirement {
	switch route {
	case RouteSubscriptions, RouteHistory, RouteLiked, RouteUpload,
		RouteProfile, RouteInquiries, RouteInquiryDetail,
		RouteInquiryEdit:
		return session.RequireLoggedIn
	case RouteNoticeEdit, RouteInquiryAnswer, RouteAdminDashboard,
		RouteAdminUsers, RouteAdminVideos:
		return session.RequireAdmin
	default:
		return session.RequireNone
	}
}

// isFeedRoute reports whether the route renders an infinite-scroll feed.
func isFeedRoute(route Route) bool {
	switch route {
	case RouteHome, RouteSearch, RouteSubscriptions, RouteHistory, RouteLiked:
		return true
	}
	return false
}

type formKind int

const (
	formNone formKind = iota
	formSignIn
	formSignUp
	formProfile
	formUpload
	formNotice
	formInquiry
	formAnswer
)

type navFrame struct {
	route Route
}

// Model is the main Bubble Tea model for the application
type Model struct {
	client  *api.Client
	catalog *service.Catalog
	session *session.Store
	layout  *session.LayoutStore
	toggles *interact.Controller
	logger  *slog.Logger
	keys    KeyMap

	route    Route
	navStack []navFrame

	sidebar      components.Sidebar
	sidebarFocus bool

	// Infinite-scroll feeds, one per feed route
	feeds       map[Route]*components.FeedView
	searchInput textinput.Model
	searching   bool
	searchQuery string
	filterInput textinput.Model
	filtering   bool

	// Video detail
	video    *domain.Video
	comments components.CommentPane

	// Channel page
	channel       *domain.Channel
	channelCursor int

	// Forms
	form     components.Form
	formKind formKind
	formID   int64 // entity being edited, 0 means create

	// Paged lists
	notices       *feed.Pager[domain.Notice]
	noticesCursor int
	notice        *domain.Notice

	inquiries       *feed.Pager[domain.Inquiry]
	inquiriesCursor int
	inquiry         *domain.Inquiry

	dashboard   *domain.Dashboard
	adminUsers  *feed.Pager[domain.AdminUser]
	adminVideos *feed.Pager[domain.AdminVideo]
	userTable   *components.UserTable
	videoTable  *components.VideoTable

	modal components.Modal

	width        int
	height       int
	pageSize     int
	statusMsg    string
	statusIsErr  bool
	spinnerFrame int
}

// NewModel wires the services into the root model.
func NewModel(client *api.Client, catalog *service.Catalog, sess *session.Store, layout *session.LayoutStore, pageSize int, logger *slog.Logger) *Model {
	m := &Model{
		client:  client,
		catalog: catalog,
		session: sess,
		layout:  layout,
		toggles: interact.NewController(sess.IsLoggedIn, logger),
		logger:  logger,
		keys:    DefaultKeyMap(),
		sidebar: components.NewSidebar(navEntries()),
		feeds: map[Route]*components.FeedView{
			RouteHome:          newFeedView(),
			RouteSearch:        newFeedView(),
			RouteSubscriptions: newFeedView(),
			RouteHistory:       newFeedView(),
			RouteLiked:         newFeedView(),
		},
		comments:    components.NewCommentPane(),
		notices:     feed.NewPager[domain.Notice](),
		inquiries:   feed.NewPager[domain.Inquiry](),
		adminUsers:  feed.NewPager[domain.AdminUser](),
		adminVideos: feed.NewPager[domain.AdminVideo](),
		userTable:   components.NewUserTable(),
		videoTable:  components.NewVideoTable(),
		modal:       components.NewModal(),
		pageSize:    pageSize,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search videos..."
	m.searchInput.Prompt = "? "
	m.searchInput.CharLimit = 100

	m.filterInput = textinput.New()
	m.filterInput.Placeholder = "type to filter..."
	m.filterInput.Prompt = "/ "
	m.filterInput.CharLimit = 60

	return m
}

func newFeedView() *components.FeedView {
	fv := components.NewFeedView()
	return &fv
}

func navEntries() []components.NavEntry {
	return []components.NavEntry{
		{Label: "Home", Route: int(RouteHome)},
		{Label: "Search", Route: int(RouteSearch)},
		{Label: "Subscriptions", Route: int(RouteSubscriptions)},
		{Label: "History", Route: int(RouteHistory)},
		{Label: "Liked videos", Route: int(RouteLiked)},
		{Label: "Upload", Route: int(RouteUpload)},
		{Label: "Notices", Route: int(RouteNotices)},
		{Label: "Inquiries", Route: int(RouteInquiries)},
		{Label: "Profile", Route: int(RouteProfile)},
		{Label: "Dashboard", Route: int(RouteAdminDashboard), AdminOnly: true},
		{Label: "Users", Route: int(RouteAdminUsers), AdminOnly: true},
		{Label: "Videos", Route: int(RouteAdminVideos), AdminOnly: true},
	}
}

func (m *Model) isAdmin() bool {
	snap := m.session.Snapshot()
	return snap.IsLoggedIn && snap.User != nil && snap.User.Role == domain.RoleAdmin
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.enterRoute(RouteHome, 0))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case TickMsg:
		m.spinnerFrame++
		return m, TickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.ModalClosedMsg:
		return m, nil

	case components.ModalLoginChosenMsg:
		return m, m.enterRoute(RouteSignIn, 0)

	case SessionExpiredMsg:
		return m.handleSessionExpired()

	case StatusMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	default:
		return m.handleData(msg)
	}
}

// narrowWidth is the terminal width below which the sidebar is closed to
// keep the content column usable. It does not reopen on its own; ctrl+b
// brings it back.
const narrowWidth = 60

func (m *Model) resize() {
	if m.width < narrowWidth && m.layout.IsSidebarOpen() {
		m.layout.CloseSidebar()
	}
	sidebarWidth := 22
	contentWidth := m.width - sidebarWidth
	if !m.layout.IsSidebarOpen() {
		contentWidth = m.width
	}
	m.sidebar.SetSize(sidebarWidth, m.height-2)
	for _, fv := range m.feeds {
		fv.SetSize(contentWidth, m.height-4)
	}
	m.userTable.SetWidth(contentWidth)
	m.videoTable.SetWidth(contentWidth)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusMsg = text
	m.statusIsErr = isErr
	return ClearStatusCmd()
}

// enterRoute runs the guard and, when allowed, switches screens and kicks
// off the route's initial load.
func (m *Model) enterRoute(route Route, id int64) tea.Cmd {
	snap := m.session.Snapshot()
	switch session.Check(snap, requirementFor(route)) {
	case session.RedirectLogin:
		m.modal.OpenLoginRequired(components.LoginRequiredPayload{
			Reason: "Sign in to continue",
		})
		return nil
	case session.RedirectHome:
		if m.route != RouteHome {
			return tea.Batch(
				m.setStatus("Admins only", true),
				m.enterRoute(RouteHome, 0),
			)
		}
		return m.setStatus("Admins only", true)
	}

	m.navStack = append(m.navStack, navFrame{route: m.route})
	m.route = route
	m.sidebar.SelectRoute(int(route), m.isAdmin())
	m.filtering = false
	m.filterInput.Reset()

	return m.loadRoute(route, id)
}

// loadRoute fires the initial fetch for a screen.
func (m *Model) loadRoute(route Route, id int64) tea.Cmd {
	switch route {
	case RouteHome, RouteSubscriptions, RouteHistory, RouteLiked:
		fv := m.feeds[route]
		fv.Reset()
		page, ok := fv.Feed.BeginInitial()
		if !ok {
			return nil
		}
		return LoadFeedPageCmd(m.client, route, "", fv.Feed.Gen(), page, m.pageSize)

	case RouteSearch:
		m.searching = true
		m.searchInput.Reset()
		return m.searchInput.Focus()

	case RouteVideo:
		m.video = nil
		m.comments.SetComments(nil)
		m.comments.SetLoading(true)
		return tea.Batch(
			LoadVideoCmd(m.catalog, id),
			LoadCommentsCmd(m.client, id),
		)

	case RouteChannel:
		m.channel = nil
		m.channelCursor = 0
		return LoadChannelCmd(m.catalog, id)

	case RouteUpload:
		m.openForm(formUpload, 0)
		return nil

	case RouteSignIn:
		m.openForm(formSignIn, 0)
		return nil

	case RouteSignUp:
		m.openForm(formSignUp, 0)
		return nil

	case RouteProfile:
		m.openForm(formProfile, 0)
		return nil

	case RouteNotices:
		m.noticesCursor = 0
		if !m.notices.Begin(1) {
			return nil
		}
		return LoadNoticesCmd(m.client, 1, m.pageSize)

	case RouteNoticeDetail:
		m.notice = nil
		return LoadNoticeCmd(m.catalog, id)

	case RouteNoticeEdit:
		m.openForm(formNotice, id)
		return nil

	case RouteInquiries:
		m.inquiriesCursor = 0
		if !m.inquiries.Begin(1) {
			return nil
		}
		return LoadInquiriesCmd(m.client, m.isAdmin(), 1, m.pageSize)

	case RouteInquiryDetail:
		m.inquiry = nil
		return LoadInquiryCmd(m.client, id)

	case RouteInquiryEdit:
		m.openForm(formInquiry, id)
		return nil

	case RouteInquiryAnswer:
		m.openForm(formAnswer, id)
		return nil

	case RouteAdminDashboard:
		m.dashboard = nil
		return LoadDashboardCmd(m.client)

	case RouteAdminUsers:
		if !m.adminUsers.Begin(1) {
			return nil
		}
		return LoadAdminUsersCmd(m.client, 1)

	case RouteAdminVideos:
		if !m.adminVideos.Begin(1) {
			return nil
		}
		return LoadAdminVideosCmd(m.client, 1)
	}
	return nil
}

func (m *Model) goBack() tea.Cmd {
	if len(m.navStack) == 0 {
		return nil
	}
	frame := m.navStack[len(m.navStack)-1]
	m.navStack = m.navStack[:len(m.navStack)-1]
	m.route = frame.route
	m.sidebar.SelectRoute(int(frame.route), m.isAdmin())
	return nil
}

func (m *Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.catalog.InvalidateAll()
	if requirementFor(m.route) != session.RequireNone {
		m.route = RouteHome
		m.navStack = nil
		return m, tea.Batch(
			m.setStatus("Session expired, sign in again", true),
			m.loadRoute(RouteHome, 0),
		)
	}
	return m, m.setStatus("Session expired, sign in again", true)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Modal swallows all keys while open
	if m.modal.IsOpen() {
		return m, m.modal.Update(msg)
	}

	// Active form screens handle their own input
	if m.formKind != formNone {
		return m.handleFormKey(msg)
	}

	// Search prompt
	if m.searching {
		return m.handleSearchKey(msg)
	}

	// Local filter prompt
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	// Comment composer on the video screen
	if m.route == RouteVideo && m.comments.Writing() {
		return m.handleCommentKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Sidebar):
		m.sidebarFocus = !m.sidebarFocus
		m.sidebar.SetFocused(m.sidebarFocus)
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		m.layout.ToggleSidebar()
		if !m.layout.IsSidebarOpen() {
			m.sidebarFocus = false
			m.sidebar.SetFocused(false)
		}
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Escape):
		return m, m.goBack()

	case key.Matches(msg, m.keys.Logout):
		if m.session.IsLoggedIn() {
			m.modal.OpenConfirm(components.ConfirmPayload{
				Title:     "Sign out",
				Prompt:    "Sign out of your account?",
				OnConfirm: m.logoutCmd(),
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.enterRoute(RouteSearch, 0)
	}

	if m.sidebarFocus {
		return m.handleSidebarKey(msg)
	}
	return m.handleRouteKey(msg)
}

func (m *Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		m.session.Logout()
		m.catalog.InvalidateAll()
		return StatusMsg{Message: "Signed out"}
	}
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	admin := m.isAdmin()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.MoveUp(admin)
	case key.Matches(msg, m.keys.Down):
		m.sidebar.MoveDown(admin)
	case key.Matches(msg, m.keys.Enter):
		entry, ok := m.sidebar.Selected(admin)
		if !ok {
			return m, nil
		}
		m.sidebarFocus = false
		m.sidebar.SetFocused(false)
		return m, m.enterRoute(Route(entry.Route), 0)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		query := m.searchInput.Value()
		if query == "" {
			return m, nil
		}
		m.searching = false
		m.searchInput.Blur()
		m.searchQuery = query
		fv := m.feeds[RouteSearch]
		fv.Reset()
		page, ok := fv.Feed.BeginInitial()
		if !ok {
			return m, nil
		}
		return m, LoadFeedPageCmd(m.client, RouteSearch, query, fv.Feed.Gen(), page, m.pageSize)
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		return m, m.goBack()
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fv, ok := m.feeds[m.route]
	if !ok {
		m.filtering = false
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Reset()
		m.filterInput.Blur()
		fv.SetFilter("")
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	fv.SetFilter(m.filterInput.Value())
	return m, cmd
}

func (m *Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		draft := m.comments.Draft()
		if draft == "" {
			return m, nil
		}
		m.comments.StopWriting()
		return m, PostCommentCmd(m.client, m.video.ID, draft)
	case tea.KeyEsc:
		m.comments.StopWriting()
		return m, nil
	}
	return m, m.comments.UpdateInput(msg)
}

// handleRouteKey dispatches content-pane keys for the current screen.
func (m *Model) handleRouteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isFeedRoute(m.route) {
		return m.handleFeedKey(msg)
	}

	switch m.route {
	case RouteVideo:
		return m.handleVideoKey(msg)
	case RouteChannel:
		return m.handleChannelKey(msg)
	case RouteNotices:
		return m.handleNoticesKey(msg)
	case RouteNoticeDetail:
		return m.handleNoticeDetailKey(msg)
	case RouteInquiries:
		return m.handleInquiriesKey(msg)
	case RouteInquiryDetail:
		return m.handleInquiryDetailKey(msg)
	case RouteAdminUsers:
		return m.handleAdminUsersKey(msg)
	case RouteAdminVideos:
		return m.handleAdminVideosKey(msg)
	case RouteAdminDashboard:
		if key.Matches(msg, m.keys.Refresh) {
			return m, LoadDashboardCmd(m.client)
		}
	}
	return m, nil
}

func (m *Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fv := m.feeds[m.route]
	switch {
	case key.Matches(msg, m.keys.Up):
		fv.MoveUp()
	case key.Matches(msg, m.keys.Down):
		if fv.MoveDown() {
			if page, ok := fv.Feed.BeginMore(); ok {
				return m, LoadFeedPageCmd(m.client, m.route, m.searchQuery, fv.Feed.Gen(), page, m.pageSize)
			}
		}
	case key.Matches(msg, m.keys.Enter):
		if video, ok := fv.Selected(); ok {
			return m, m.enterRoute(RouteVideo, video.ID)
		}
	case key.Matches(msg, m.keys.Channel):
		if video, ok := fv.Selected(); ok {
			return m, m.enterRoute(RouteChannel, video.Author.ID)
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Reset()
		return m, m.filterInput.Focus()
	case key.Matches(msg, m.keys.Refresh):
		fv.Reset()
		if page, ok := fv.Feed.BeginInitial(); ok {
			return m, LoadFeedPageCmd(m.client, m.route, m.searchQuery, fv.Feed.Gen(), page, m.pageSize)
		}
	}
	return m, nil
}

func (m *Model) handleVideoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.video == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.comments.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.comments.MoveDown()

	case key.Matches(msg, m.keys.Like):
		return m.beginLike()

	case key.Matches(msg, m.keys.Subscribe):
		return m.beginSubscribe(m.video.Author.ID, m.video.IsSubscribed, 0)

	case key.Matches(msg, m.keys.Comment):
		if !m.session.IsLoggedIn() {
			m.modal.OpenLoginRequired(components.LoginRequiredPayload{Reason: "Sign in to comment"})
			return m, nil
		}
		return m, m.comments.StartWriting()

	case key.Matches(msg, m.keys.Delete):
		comment, ok := m.comments.Selected()
		if !ok {
			return m, nil
		}
		snap := m.session.Snapshot()
		if snap.User == nil || (snap.User.ID != comment.Author.ID && snap.User.Role != domain.RoleAdmin) {
			return m, m.setStatus("Not your comment", true)
		}
		videoID := m.video.ID
		m.modal.OpenConfirm(components.ConfirmPayload{
			Title:     "Delete comment",
			Prompt:    "Delete this comment?",
			OnConfirm: DeleteCommentCmd(m.client, videoID, comment.ID),
		})

	case key.Matches(msg, m.keys.Channel):
		return m, m.enterRoute(RouteChannel, m.video.Author.ID)
	}
	return m, nil
}

// beginLike runs the optimistic like flip and fires the server call.
func (m *Model) beginLike() (tea.Model, tea.Cmd) {
	current := interact.ToggleState{Active: m.video.IsLiked, Count: m.video.LikeCount}
	next, outcome := m.toggles.Begin(interact.KindLike, m.video.ID, current)
	switch outcome {
	case interact.NeedsLogin:
		m.modal.OpenLoginRequired(components.LoginRequiredPayload{Reason: "Sign in to like videos"})
		return m, nil
	case interact.Busy:
		return m, nil
	}
	m.video.IsLiked = next.Active
	m.video.LikeCount = next.Count
	return m, ToggleLikeCmd(m.client, m.video.ID)
}

// beginSubscribe runs the optimistic subscribe flip and fires the server call.
func (m *Model) beginSubscribe(channelID int64, active bool, count int) (tea.Model, tea.Cmd) {
	if snap := m.session.Snapshot(); snap.User != nil && snap.User.ID == channelID {
		return m, m.setStatus("You can't subscribe to your own channel", true)
	}
	current := interact.ToggleState{Active: active, Count: count}
	next, outcome := m.toggles.Begin(interact.KindSubscribe, channelID, current)
	switch outcome {
	case interact.NeedsLogin:
		m.modal.OpenLoginRequired(components.LoginRequiredPayload{Reason: "Sign in to subscribe"})
		return m, nil
	case interact.Busy:
		return m, nil
	}
	m.applySubscribeState(channelID, next)
	return m, ToggleSubscribeCmd(m.client, channelID)
}

// applySubscribeState pushes a subscribe flip into whichever screens show it.
func (m *Model) applySubscribeState(channelID int64, st interact.ToggleState) {
	if m.video != nil && m.video.Author.ID == channelID {
		m.video.IsSubscribed = st.Active
	}
	if m.channel != nil && m.channel.ID == channelID {
		m.channel.IsSubscribed = st.Active
		m.channel.SubscriberCount = st.Count
	}
}

func (m *Model) handleChannelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.channel == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.channelCursor > 0 {
			m.channelCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.channelCursor < len(m.channel.Videos)-1 {
			m.channelCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.channelCursor < len(m.channel.Videos) {
			return m, m.enterRoute(RouteVideo, m.channel.Videos[m.channelCursor].ID)
		}
	case key.Matches(msg, m.keys.Subscribe):
		return m.beginSubscribe(m.channel.ID, m.channel.IsSubscribed, m.channel.SubscriberCount)
	}
	return m, nil
}

func (m *Model) handleNoticesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.noticesCursor > 0 {
			m.noticesCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.noticesCursor < len(m.notices.Items())-1 {
			m.noticesCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		items := m.notices.Items()
		if m.noticesCursor < len(items) {
			return m, m.enterRoute(RouteNoticeDetail, items[m.noticesCursor].ID)
		}
	case key.Matches(msg, m.keys.New):
		if m.isAdmin() {
			return m, m.enterRoute(RouteNoticeEdit, 0)
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.notices.CanNext() && m.notices.Begin(m.notices.Page()+1) {
			m.noticesCursor = 0
			return m, LoadNoticesCmd(m.client, m.notices.Page(), m.pageSize)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.notices.CanPrev() && m.notices.Begin(m.notices.Page()-1) {
			m.noticesCursor = 0
			return m, LoadNoticesCmd(m.client, m.notices.Page(), m.pageSize)
		}
	}
	return m, nil
}

func (m *Model) handleNoticeDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notice == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.isAdmin() {
			return m, m.enterRoute(RouteNoticeEdit, m.notice.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.isAdmin() {
			m.modal.OpenConfirm(components.ConfirmPayload{
				Title:     "Delete notice",
				Prompt:    "Delete " + strconv.Quote(m.notice.Title) + "?",
				OnConfirm: DeleteNoticeCmd(m.client, m.notice.ID),
			})
		}
	}
	return m, nil
}

func (m *Model) handleInquiriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.inquiriesCursor > 0 {
			m.inquiriesCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.inquiriesCursor < len(m.inquiries.Items())-1 {
			m.inquiriesCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		items := m.inquiries.Items()
		if m.inquiriesCursor < len(items) {
			return m, m.enterRoute(RouteInquiryDetail, items[m.inquiriesCursor].ID)
		}
	case key.Matches(msg, m.keys.New):
		return m, m.enterRoute(RouteInquiryEdit, 0)
	case key.Matches(msg, m.keys.NextPage):
		if m.inquiries.CanNext() && m.inquiries.Begin(m.inquiries.Page()+1) {
			m.inquiriesCursor = 0
			return m, LoadInquiriesCmd(m.client, m.isAdmin(), m.inquiries.Page(), m.pageSize)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.inquiries.CanPrev() && m.inquiries.Begin(m.inquiries.Page()-1) {
			m.inquiriesCursor = 0
			return m, LoadInquiriesCmd(m.client, m.isAdmin(), m.inquiries.Page(), m.pageSize)
		}
	}
	return m, nil
}

func (m *Model) handleInquiryDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inquiry == nil {
		return m, nil
	}
	snap := m.session.Snapshot()
	owner := snap.User != nil && snap.User.ID == m.inquiry.Author.ID
	switch {
	case key.Matches(msg, m.keys.Edit):
		if owner && !m.inquiry.IsAnswered {
			return m, m.enterRoute(RouteInquiryEdit, m.inquiry.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if owner || m.isAdmin() {
			m.modal.OpenConfirm(components.ConfirmPayload{
				Title:     "Delete inquiry",
				Prompt:    "Delete this inquiry?",
				OnConfirm: DeleteInquiryCmd(m.client, m.inquiry.ID),
			})
		}
	case key.Matches(msg, m.keys.Answer):
		if m.isAdmin() && !m.inquiry.IsAnswered {
			return m, m.enterRoute(RouteInquiryAnswer, m.inquiry.ID)
		}
	case key.Matches(msg, m.keys.DeleteAnswer):
		if m.isAdmin() && m.inquiry.IsAnswered {
			m.modal.OpenConfirm(components.ConfirmPayload{
				Title:     "Remove answer",
				Prompt:    "Remove the answer from this inquiry?",
				OnConfirm: DeleteAnswerCmd(m.client, m.inquiry.ID),
			})
		}
	}
	return m, nil
}

func (m *Model) handleAdminUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.userTable.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.userTable.MoveDown()
	case key.Matches(msg, m.keys.NextPage):
		if m.adminUsers.CanNext() && m.adminUsers.Begin(m.adminUsers.Page()+1) {
			return m, LoadAdminUsersCmd(m.client, m.adminUsers.Page())
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.adminUsers.CanPrev() && m.adminUsers.Begin(m.adminUsers.Page()-1) {
			return m, LoadAdminUsersCmd(m.client, m.adminUsers.Page())
		}
	}
	return m, nil
}

func (m *Model) handleAdminVideosKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.videoTable.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.videoTable.MoveDown()
	case key.Matches(msg, m.keys.Delete):
		video := m.videoTable.Selected()
		if video == nil {
			return m, nil
		}
		m.modal.OpenConfirm(components.ConfirmPayload{
			Title:     "Delete video",
			Prompt:    "Delete " + strconv.Quote(video.Title) + "?",
			OnConfirm: DeleteAdminVideoCmd(m.client, video.ID),
		})
	case key.Matches(msg, m.keys.NextPage):
		if m.adminVideos.CanNext() && m.adminVideos.Begin(m.adminVideos.Page()+1) {
			return m, LoadAdminVideosCmd(m.client, m.adminVideos.Page())
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.adminVideos.CanPrev() && m.adminVideos.Begin(m.adminVideos.Page()-1) {
			return m, LoadAdminVideosCmd(m.client, m.adminVideos.Page())
		}
	}
	return m, nil
}

// handleData routes all async payload messages into state.
func (m *Model) handleData(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FeedPageLoadedMsg:
		if fv, ok := m.feeds[msg.Route]; ok {
			fv.Feed.Complete(msg.Gen, msg.Page, msg.Videos, msg.More)
		}
		return m, nil

	case FeedPageFailedMsg:
		if fv, ok := m.feeds[msg.Route]; ok {
			fv.Feed.Fail(msg.Gen)
		}
		m.logger.Error("feed page failed", "route", int(msg.Route), "error", msg.Err)
		return m, m.setStatus(msg.Err.Error(), true)

	case VideoLoadedMsg:
		m.video = msg.Video
		return m, nil

	case CommentsLoadedMsg:
		m.comments.SetLoading(false)
		if msg.Err != nil {
			m.logger.Error("comment load failed", "videoID", msg.VideoID, "error", msg.Err)
			return m, m.setStatus("loading comments: "+msg.Err.Error(), true)
		}
		if m.video != nil && m.video.ID == msg.VideoID {
			m.comments.SetComments(msg.Comments)
		}
		return m, nil

	case CommentPostedMsg:
		if m.video != nil && m.video.ID == msg.VideoID {
			m.comments.Prepend(msg.Comment)
		}
		return m, m.setStatus("Comment posted", false)

	case CommentDeletedMsg:
		if m.video != nil && m.video.ID == msg.VideoID {
			m.comments.Remove(msg.CommentID)
		}
		return m, m.setStatus("Comment deleted", false)

	case ChannelLoadedMsg:
		m.channel = msg.Channel
		return m, nil

	case LikeToggledMsg:
		return m.finishLike(msg)

	case SubscribeToggledMsg:
		return m.finishSubscribe(msg)

	case LoginDoneMsg:
		return m.finishLogin(msg)

	case SignupDoneMsg:
		if msg.Err != nil {
			m.form.SetBusy(false)
			m.form.SetError(msg.Err.Error())
			return m, nil
		}
		m.closeForm()
		return m, tea.Batch(
			m.setStatus("Account created, sign in", false),
			m.enterRoute(RouteSignIn, 0),
		)

	case ProfileSavedMsg:
		if msg.Err != nil {
			m.form.SetBusy(false)
			m.form.SetError(msg.Err.Error())
			return m, nil
		}
		if msg.User != nil {
			m.session.UpdateUser(patchFromUser(msg.User))
		}
		m.closeForm()
		return m, tea.Batch(m.setStatus("Profile saved", false), m.goBack())

	case UploadDoneMsg:
		if msg.Err != nil {
			m.form.SetBusy(false)
			m.form.SetError(msg.Err.Error())
			return m, nil
		}
		m.closeForm()
		return m, tea.Batch(
			m.setStatus("Upload complete", false),
			m.enterRoute(RouteVideo, msg.Video.ID),
		)

	case NoticesLoadedMsg:
		m.notices.Complete(msg.Page.Page, msg.Page.Notices, msg.Page.Total, msg.Page.TotalPages)
		return m, nil

	case NoticesFailedMsg:
		m.notices.Fail()
		m.logger.Error("notice page failed", "error", msg.Err)
		return m, m.setStatus("loading notices: "+msg.Err.Error(), true)

	case NoticeLoadedMsg:
		m.notice = msg.Notice
		return m, nil

	case NoticeSavedMsg:
		if msg.Err != nil {
			m.form.SetBusy(false)
			m.form.SetError(msg.Err.Error())
			return m, nil
		}
		m.closeForm()
		m.catalog.InvalidateNotice(msg.Notice.ID)
		m.notice = msg.Notice
		m.route = RouteNoticeDetail
		return m, m.setStatus("Notice saved", false)

	case NoticeDeletedMsg:
		m.catalog.InvalidateNotice(msg.NoticeID)
		return m, tea.Batch(
			m.setStatus("Notice deleted", false),
			m.enterRoute(RouteNotices, 0),
		)

	case InquiriesLoadedMsg:
		m.inquiries.Complete(msg.Page.Page, msg.Page.Inquiries, msg.Page.Total, msg.Page.TotalPages)
		return m, nil

	case InquiriesFailedMsg:
		m.inquiries.Fail()
		m.logger.Error("inquiry page failed", "error", msg.Err)
		return m, m.setStatus("loading inquiries: "+msg.Err.Error(), true)

	case InquiryLoadedMsg:
		m.inquiry = msg.Inquiry
		return m, nil

	case InquirySavedMsg:
		if msg.Err != nil {
			m.form.SetBusy(false)
			m.form.SetError(msg.Err.Error())
			return m, nil
		}
		m.closeForm()
		m.inquiry = msg.Inquiry
		m.route = RouteInquiryDetail
		return m, m.setStatus("Inquiry saved", false)

	case InquiryDeletedMsg:
		return m, tea.Batch(
			m.setStatus("Inquiry deleted", false),
			m.enterRoute(RouteInquiries, 0),
		)

	case DashboardLoadedMsg:
		m.dashboard = msg.Dashboard
		return m, nil

	case AdminUsersLoadedMsg:
		m.adminUsers.Complete(msg.Page.Page, msg.Page.Users, msg.Page.Total, msg.Page.TotalPages)
		m.userTable.SetUsers(msg.Page.Users)
		return m, nil

	case AdminUsersFailedMsg:
		m.adminUsers.Fail()
		m.logger.Error("admin user page failed", "error", msg.Err)
		return m, m.setStatus("loading users: "+msg.Err.Error(), true)

	case AdminVideosLoadedMsg:
		m.adminVideos.Complete(msg.Page.Page, msg.Page.Videos, msg.Page.Total, msg.Page.TotalPages)
		m.videoTable.SetVideos(msg.Page.Videos)
		return m, nil

	case AdminVideosFailedMsg:
		m.adminVideos.Fail()
		m.logger.Error("admin video page failed", "error", msg.Err)
		return m, m.setStatus("loading videos: "+msg.Err.Error(), true)

	case AdminVideoDeletedMsg:
		if m.adminVideos.Begin(m.adminVideos.Page()) {
			return m, tea.Batch(
				m.setStatus("Video deleted", false),
				LoadAdminVideosCmd(m.client, m.adminVideos.Page()),
			)
		}
		return m, m.setStatus("Video deleted", false)
	}
	return m, nil
}

// finishLike settles the optimistic like against the server's answer.
func (m *Model) finishLike(msg LikeToggledMsg) (tea.Model, tea.Cmd) {
	if m.video == nil || m.video.ID != msg.VideoID {
		// Screen changed mid-flight; settle the controller and move on
		current := interact.ToggleState{}
		if msg.Err != nil {
			m.toggles.Rollback(interact.KindLike, msg.VideoID, current, msg.Err)
		} else {
			m.toggles.Confirm(interact.KindLike, msg.VideoID, msg.Result.IsLiked, msg.Result.LikeCount, current)
		}
		m.catalog.InvalidateVideo(msg.VideoID)
		return m, nil
	}

	current := interact.ToggleState{Active: m.video.IsLiked, Count: m.video.LikeCount}
	if msg.Err != nil {
		restored := m.toggles.Rollback(interact.KindLike, msg.VideoID, current, msg.Err)
		m.video.IsLiked = restored.Active
		m.video.LikeCount = restored.Count
		return m, m.setStatus("Like failed: "+msg.Err.Error(), true)
	}
	settled := m.toggles.Confirm(interact.KindLike, msg.VideoID, msg.Result.IsLiked, msg.Result.LikeCount, current)
	m.video.IsLiked = settled.Active
	m.video.LikeCount = settled.Count
	m.catalog.InvalidateVideo(msg.VideoID)
	return m, nil
}

// finishSubscribe settles the optimistic subscribe against the server's answer.
func (m *Model) finishSubscribe(msg SubscribeToggledMsg) (tea.Model, tea.Cmd) {
	var current interact.ToggleState
	if m.channel != nil && m.channel.ID == msg.ChannelID {
		current = interact.ToggleState{Active: m.channel.IsSubscribed, Count: m.channel.SubscriberCount}
	} else if m.video != nil && m.video.Author.ID == msg.ChannelID {
		current = interact.ToggleState{Active: m.video.IsSubscribed}
	}

	if msg.Err != nil {
		restored := m.toggles.Rollback(interact.KindSubscribe, msg.ChannelID, current, msg.Err)
		m.applySubscribeState(msg.ChannelID, restored)
		return m, m.setStatus("Subscribe failed: "+msg.Err.Error(), true)
	}
	settled := m.toggles.Confirm(interact.KindSubscribe, msg.ChannelID, msg.Subscribed, nil, current)
	m.applySubscribeState(msg.ChannelID, settled)
	m.catalog.InvalidateChannel(msg.ChannelID)
	return m, nil
}

func (m *Model) finishLogin(msg LoginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.form.SetBusy(false)
		m.form.SetError(msg.Err.Error())
		return m, nil
	}
	m.session.Login(msg.Token, *msg.User)
	m.closeForm()
	m.route = RouteHome
	m.navStack = nil
	return m, tea.Batch(
		m.setStatus("Signed in as "+msg.User.Nickname, false),
		m.loadRoute(RouteHome, 0),
	)
}

func patchFromUser(u *domain.User) session.UserPatch {
	return session.UserPatch{
		Nickname:     &u.Nickname,
		Email:        &u.Email,
		ProfileImage: &u.ProfileImage,
		PhoneNumber:  &u.PhoneNumber,
		BirthDate:    &u.BirthDate,
		Gender:       &u.Gender,
		ZipCode:      &u.ZipCode,
		Address1:     &u.Address1,
		Address2:     &u.Address2,
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	body := m.renderBody()
	if m.modal.IsOpen() {
		return m.modal.View(m.width, m.height)
	}
	return body
}
