package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/log"
	"github.com/wetube/tube/internal/service"
	"github.com/wetube/tube/internal/session"
	"github.com/wetube/tube/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	logger := log.NullLogger()
	st, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sess := session.NewStore(st, logger)
	layout := session.NewLayoutStore(st, logger)
	client := api.NewClient("http://localhost:4000/api", "", "test-client", sess.Token, logger)
	catalog := service.NewCatalog(client, logger)

	return NewModel(client, catalog, sess, layout, 12, logger)
}

func TestRequirementFor(t *testing.T) {
	tests := []struct {
		route Route
		want  session.Requirement
	}{
		{RouteHome, session.RequireNone},
		{RouteSearch, session.RequireNone},
		{RouteVideo, session.RequireNone},
		{RouteChannel, session.RequireNone},
		{RouteNotices, session.RequireNone},
		{RouteSignIn, session.RequireNone},
		{RouteSubscriptions, session.RequireLoggedIn},
		{RouteHistory, session.RequireLoggedIn},
		{RouteLiked, session.RequireLoggedIn},
		{RouteUpload, session.RequireLoggedIn},
		{RouteProfile, session.RequireLoggedIn},
		{RouteInquiries, session.RequireLoggedIn},
		{RouteNoticeEdit, session.RequireAdmin},
		{RouteInquiryAnswer, session.RequireAdmin},
		{RouteAdminDashboard, session.RequireAdmin},
		{RouteAdminUsers, session.RequireAdmin},
		{RouteAdminVideos, session.RequireAdmin},
	}
	for _, tt := range tests {
		if got := requirementFor(tt.route); got != tt.want {
			t.Errorf("requirementFor(%d) = %d, want %d", tt.route, got, tt.want)
		}
	}
}

func TestGuardedRouteWhileLoggedOut(t *testing.T) {
	m := newTestModel(t)

	cmd := m.enterRoute(RouteProfile, 0)
	if cmd != nil {
		t.Error("expected no load command for a blocked route")
	}
	if m.route != RouteHome {
		t.Errorf("route changed to %d, want to stay on home", m.route)
	}
	if !m.modal.IsOpen() {
		t.Error("expected login-required modal to open")
	}
}

func TestAdminRouteAsRegularUser(t *testing.T) {
	m := newTestModel(t)
	m.session.Login("tok", domain.User{ID: 1, Nickname: "viewer", Role: domain.RoleUser})
	m.route = RouteNotices

	m.enterRoute(RouteAdminUsers, 0)
	if m.route != RouteHome {
		t.Errorf("route = %d, want home redirect", m.route)
	}
	if m.modal.IsOpen() {
		t.Error("admin redirect must not open the login modal")
	}
}

func TestAdminRouteAsAdmin(t *testing.T) {
	m := newTestModel(t)
	m.session.Login("tok", domain.User{ID: 1, Nickname: "root", Role: domain.RoleAdmin})

	cmd := m.enterRoute(RouteAdminDashboard, 0)
	if m.route != RouteAdminDashboard {
		t.Errorf("route = %d, want dashboard", m.route)
	}
	if cmd == nil {
		t.Error("expected a dashboard load command")
	}
}

func TestLoggedInRouteAllowed(t *testing.T) {
	m := newTestModel(t)
	m.session.Login("tok", domain.User{ID: 7, Nickname: "u", Role: domain.RoleUser})

	m.enterRoute(RouteUpload, 0)
	if m.route != RouteUpload {
		t.Errorf("route = %d, want upload", m.route)
	}
	if m.formKind != formUpload {
		t.Errorf("formKind = %d, want upload form", m.formKind)
	}
}

func TestPagerRecoversAfterFailedFetch(t *testing.T) {
	m := newTestModel(t)

	if cmd := m.enterRoute(RouteNotices, 0); cmd == nil {
		t.Fatal("entering the notice board should arm a page fetch")
	}
	if !m.notices.Loading() {
		t.Fatal("page-1 fetch should be in flight")
	}

	m.Update(NoticesFailedMsg{Err: errors.New("boom")})
	if m.notices.Loading() {
		t.Error("failure should clear the in-flight flag")
	}
	if !m.notices.Begin(1) {
		t.Error("the same page must be re-triggerable after a failure")
	}
}

func TestAllPagersReleasedOnFailure(t *testing.T) {
	m := newTestModel(t)
	boom := errors.New("boom")

	m.inquiries.Begin(1)
	m.Update(InquiriesFailedMsg{Err: boom})
	if m.inquiries.Loading() {
		t.Error("inquiry pager stuck after failure")
	}

	m.adminUsers.Begin(1)
	m.Update(AdminUsersFailedMsg{Err: boom})
	if m.adminUsers.Loading() {
		t.Error("admin user pager stuck after failure")
	}

	m.adminVideos.Begin(1)
	m.Update(AdminVideosFailedMsg{Err: boom})
	if m.adminVideos.Loading() {
		t.Error("admin video pager stuck after failure")
	}
}

func TestStaleFeedResponseDropped(t *testing.T) {
	m := newTestModel(t)
	fv := m.feeds[RouteSearch]

	// First query arms a fetch
	fv.Reset()
	fv.Feed.BeginInitial()
	stale := fv.Feed.Gen()

	// The user submits a new query before the response lands
	fv.Reset()
	fv.Feed.BeginInitial()
	fresh := fv.Feed.Gen()

	m.Update(FeedPageLoadedMsg{
		Route:  RouteSearch,
		Gen:    stale,
		Page:   1,
		Videos: []domain.Video{{ID: 1}, {ID: 2}, {ID: 3}},
		More:   true,
	})
	if got := len(fv.Feed.Items()); got != 0 {
		t.Fatalf("items = %d after stale response, want 0", got)
	}

	m.Update(FeedPageLoadedMsg{
		Route:  RouteSearch,
		Gen:    fresh,
		Page:   1,
		Videos: []domain.Video{{ID: 9}},
	})
	if got := len(fv.Feed.Items()); got != 1 {
		t.Errorf("items = %d after fresh response, want 1", got)
	}
}

func TestCommentLoadFailureClearsLoading(t *testing.T) {
	m := newTestModel(t)
	m.video = &domain.Video{ID: 7}
	m.comments.SetLoading(true)

	m.Update(CommentsLoadedMsg{VideoID: 7, Err: errors.New("boom")})
	if m.comments.Loading() {
		t.Error("comment pane should stop loading when the fetch fails")
	}
}

func TestNarrowWindowClosesSidebar(t *testing.T) {
	m := newTestModel(t)
	if !m.layout.IsSidebarOpen() {
		t.Fatal("sidebar should default to open")
	}

	m.Update(tea.WindowSizeMsg{Width: narrowWidth - 1, Height: 24})
	if m.layout.IsSidebarOpen() {
		t.Error("sidebar should close below the narrow-width threshold")
	}
}
