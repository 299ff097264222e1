package tui

import (
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// FeedPageLoadedMsg carries one page of an infinite-scroll video feed. Gen
// is the feed generation captured when the fetch armed; the feed drops the
// page when its generation has moved on since.
type FeedPageLoadedMsg struct {
	Route  Route
	Gen    int
	Page   int
	Videos []domain.Video
	More   bool
}

// FeedPageFailedMsg reports a failed page fetch for a feed route.
type FeedPageFailedMsg struct {
	Route Route
	Gen   int
	Err   error
}

// VideoLoadedMsg carries a video detail payload.
type VideoLoadedMsg struct {
	Video *domain.Video
}

// CommentsLoadedMsg carries the comment list for the open video, or the
// fetch error. Either way it releases the pane's loading state.
type CommentsLoadedMsg struct {
	VideoID  int64
	Comments []domain.Comment
	Err      error
}

// CommentPostedMsg carries a newly created comment.
type CommentPostedMsg struct {
	VideoID int64
	Comment domain.Comment
}

// CommentDeletedMsg confirms a comment deletion.
type CommentDeletedMsg struct {
	VideoID   int64
	CommentID int64
}

// ChannelLoadedMsg carries a channel page payload.
type ChannelLoadedMsg struct {
	Channel *domain.Channel
}

// LikeToggledMsg is the server's answer to a like toggle.
type LikeToggledMsg struct {
	VideoID int64
	Result  *api.LikeResult
	Err     error
}

// SubscribeToggledMsg is the server's answer to a subscribe toggle.
type SubscribeToggledMsg struct {
	ChannelID  int64
	Subscribed bool
	Err        error
}

// LoginDoneMsg reports the outcome of a sign-in attempt.
type LoginDoneMsg struct {
	Token string
	User  *domain.User
	Err   error
}

// SignupDoneMsg reports the outcome of a sign-up attempt.
type SignupDoneMsg struct {
	Err error
}

// ProfileSavedMsg carries the updated profile after an edit.
type ProfileSavedMsg struct {
	User *domain.User
	Err  error
}

// UploadDoneMsg reports the outcome of a video upload.
type UploadDoneMsg struct {
	Video *domain.Video
	Err   error
}

// NoticesLoadedMsg carries one page of the notice board.
type NoticesLoadedMsg struct {
	Page *domain.NoticePage
}

// NoticesFailedMsg reports a failed notice page fetch so the pager can
// release its in-flight flag.
type NoticesFailedMsg struct {
	Err error
}

// NoticeLoadedMsg carries a single notice.
type NoticeLoadedMsg struct {
	Notice *domain.Notice
}

// NoticeSavedMsg confirms a notice create or update.
type NoticeSavedMsg struct {
	Notice *domain.Notice
	Err    error
}

// NoticeDeletedMsg confirms a notice deletion.
type NoticeDeletedMsg struct {
	NoticeID int64
}

// InquiriesLoadedMsg carries one page of inquiries.
type InquiriesLoadedMsg struct {
	Page *domain.InquiryPage
}

// InquiriesFailedMsg reports a failed inquiry page fetch.
type InquiriesFailedMsg struct {
	Err error
}

// InquiryLoadedMsg carries a single inquiry.
type InquiryLoadedMsg struct {
	Inquiry *domain.Inquiry
}

// InquirySavedMsg confirms an inquiry create, update or answer.
type InquirySavedMsg struct {
	Inquiry *domain.Inquiry
	Err     error
}

// InquiryDeletedMsg confirms an inquiry deletion.
type InquiryDeletedMsg struct {
	InquiryID int64
}

// DashboardLoadedMsg carries the admin dashboard.
type DashboardLoadedMsg struct {
	Dashboard *domain.Dashboard
}

// AdminUsersLoadedMsg carries one page of the admin user table.
type AdminUsersLoadedMsg struct {
	Page *domain.AdminUserPage
}

// AdminUsersFailedMsg reports a failed admin user page fetch.
type AdminUsersFailedMsg struct {
	Err error
}

// AdminVideosLoadedMsg carries one page of the admin video table.
type AdminVideosLoadedMsg struct {
	Page *domain.AdminVideoPage
}

// AdminVideosFailedMsg reports a failed admin video page fetch.
type AdminVideosFailedMsg struct {
	Err error
}

// AdminVideoDeletedMsg confirms an admin video deletion.
type AdminVideoDeletedMsg struct {
	VideoID int64
}

// SessionExpiredMsg is emitted when the backend rejects the saved token.
type SessionExpiredMsg struct{}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message.
type ClearStatusMsg struct{}

// TickMsg drives spinner animation.
type TickMsg struct{}
