package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/service"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoadFeedPageCmd fetches one page for an infinite-scroll feed route. gen is
// the feed generation captured when the fetch armed.
func LoadFeedPageCmd(client *api.Client, route Route, query string, gen, page, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if route == RouteSearch {
			res, err := client.SearchVideos(ctx, query, page, limit)
			if err != nil {
				return FeedPageFailedMsg{Route: route, Gen: gen, Err: err}
			}
			return FeedPageLoadedMsg{Route: route, Gen: gen, Page: res.Page, Videos: res.Videos, More: res.HasNextPage}
		}

		fetch := client.ListVideos
		switch route {
		case RouteHistory:
			fetch = client.WatchHistory
		case RouteLiked:
			fetch = client.LikedVideos
		case RouteSubscriptions:
			fetch = client.SubscribedVideos
		}

		res, err := fetch(ctx, page, limit)
		if err != nil {
			return FeedPageFailedMsg{Route: route, Gen: gen, Err: err}
		}
		return FeedPageLoadedMsg{Route: route, Gen: gen, Page: res.Page, Videos: res.Videos, More: res.HasNextPage}
	}
}

// LoadVideoCmd fetches a video detail, served from the catalog cache when warm.
func LoadVideoCmd(catalog *service.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		video, err := catalog.Video(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading video"}
		}
		return VideoLoadedMsg{Video: video}
	}
}

// LoadCommentsCmd fetches the comment list for a video.
func LoadCommentsCmd(client *api.Client, videoID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		comments, err := client.ListComments(ctx, videoID)
		return CommentsLoadedMsg{VideoID: videoID, Comments: comments, Err: err}
	}
}

// PostCommentCmd creates a comment on a video.
func PostCommentCmd(client *api.Client, videoID int64, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		comment, err := client.CreateComment(ctx, videoID, content)
		if err != nil {
			return ErrMsg{Err: err, Context: "posting comment"}
		}
		return CommentPostedMsg{VideoID: videoID, Comment: *comment}
	}
}

// DeleteCommentCmd removes a comment.
func DeleteCommentCmd(client *api.Client, videoID, commentID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteComment(ctx, commentID); err != nil {
			return ErrMsg{Err: err, Context: "deleting comment"}
		}
		return CommentDeletedMsg{VideoID: videoID, CommentID: commentID}
	}
}

// LoadChannelCmd fetches a channel page, served from the catalog cache when warm.
func LoadChannelCmd(catalog *service.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		channel, err := catalog.Channel(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading channel"}
		}
		return ChannelLoadedMsg{Channel: channel}
	}
}

// ToggleLikeCmd sends the like toggle; the optimistic flip already happened.
func ToggleLikeCmd(client *api.Client, videoID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.ToggleLike(ctx, videoID)
		return LikeToggledMsg{VideoID: videoID, Result: result, Err: err}
	}
}

// ToggleSubscribeCmd sends the subscribe toggle; the optimistic flip already happened.
func ToggleSubscribeCmd(client *api.Client, channelID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		subscribed, err := client.ToggleSubscription(ctx, channelID)
		return SubscribeToggledMsg{ChannelID: channelID, Subscribed: subscribed, Err: err}
	}
}

// LoginCmd attempts a sign-in.
func LoginCmd(client *api.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.Login(ctx, username, password)
		if err != nil {
			return LoginDoneMsg{Err: err}
		}
		return LoginDoneMsg{Token: result.Token, User: &result.User}
	}
}

// SignupCmd checks name availability, then attempts account creation.
func SignupCmd(client *api.Client, req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if available, err := client.CheckUsername(ctx, req.Username); err != nil {
			return SignupDoneMsg{Err: err}
		} else if !available {
			return SignupDoneMsg{Err: fmt.Errorf("username %q is already taken", req.Username)}
		}
		if available, err := client.CheckNickname(ctx, req.Nickname); err != nil {
			return SignupDoneMsg{Err: err}
		} else if !available {
			return SignupDoneMsg{Err: fmt.Errorf("nickname %q is already taken", req.Nickname)}
		}

		return SignupDoneMsg{Err: client.Signup(ctx, req)}
	}
}

// SaveProfileCmd submits a profile edit.
func SaveProfileCmd(client *api.Client, update api.ProfileUpdate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := client.UpdateProfile(ctx, update)
		return ProfileSavedMsg{User: user, Err: err}
	}
}

// UploadVideoCmd streams a video upload. Uploads get a longer deadline.
// The command owns the form's file handles and closes them once the
// request settles.
func UploadVideoCmd(client *api.Client, req api.UploadRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		video, err := client.UploadVideo(ctx, req)
		if c, ok := req.Video.(io.Closer); ok {
			c.Close()
		}
		if c, ok := req.Thumbnail.(io.Closer); ok {
			c.Close()
		}
		return UploadDoneMsg{Video: video, Err: err}
	}
}

// LoadNoticesCmd fetches one page of the notice board.
func LoadNoticesCmd(client *api.Client, page, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.ListNotices(ctx, page, limit)
		if err != nil {
			return NoticesFailedMsg{Err: err}
		}
		return NoticesLoadedMsg{Page: result}
	}
}

// LoadNoticeCmd fetches a single notice, served from the catalog cache when warm.
func LoadNoticeCmd(catalog *service.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		notice, err := catalog.Notice(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading notice"}
		}
		return NoticeLoadedMsg{Notice: notice}
	}
}

// SaveNoticeCmd creates a notice, or updates it when id is nonzero.
func SaveNoticeCmd(client *api.Client, id int64, title, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if id == 0 {
			n, e := client.CreateNotice(ctx, title, content)
			return NoticeSavedMsg{Notice: n, Err: e}
		}
		n, e := client.UpdateNotice(ctx, id, title, content)
		return NoticeSavedMsg{Notice: n, Err: e}
	}
}

// DeleteNoticeCmd removes a notice.
func DeleteNoticeCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteNotice(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting notice"}
		}
		return NoticeDeletedMsg{NoticeID: id}
	}
}

// LoadInquiriesCmd fetches one page of inquiries; admins see everyone's.
func LoadInquiriesCmd(client *api.Client, admin bool, page, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		fetch := client.ListMyInquiries
		if admin {
			fetch = client.ListAllInquiries
		}
		result, err := fetch(ctx, page, limit)
		if err != nil {
			return InquiriesFailedMsg{Err: err}
		}
		return InquiriesLoadedMsg{Page: result}
	}
}

// LoadInquiryCmd fetches a single inquiry.
func LoadInquiryCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		inquiry, err := client.GetInquiry(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading inquiry"}
		}
		return InquiryLoadedMsg{Inquiry: inquiry}
	}
}

// SaveInquiryCmd creates an inquiry, or updates it when id is nonzero.
func SaveInquiryCmd(client *api.Client, id int64, title, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if id == 0 {
			inq, err := client.CreateInquiry(ctx, title, content)
			return InquirySavedMsg{Inquiry: inq, Err: err}
		}
		inq, err := client.UpdateInquiry(ctx, id, title, content)
		return InquirySavedMsg{Inquiry: inq, Err: err}
	}
}

// DeleteInquiryCmd removes an inquiry.
func DeleteInquiryCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteInquiry(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting inquiry"}
		}
		return InquiryDeletedMsg{InquiryID: id}
	}
}

// AnswerInquiryCmd posts an admin answer to an inquiry.
func AnswerInquiryCmd(client *api.Client, id int64, answer string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		inq, err := client.AnswerInquiry(ctx, id, answer)
		return InquirySavedMsg{Inquiry: inq, Err: err}
	}
}

// DeleteAnswerCmd removes an admin answer and reloads the inquiry.
func DeleteAnswerCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteAnswer(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "removing answer"}
		}
		inq, err := client.GetInquiry(ctx, id)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading inquiry"}
		}
		return InquiryLoadedMsg{Inquiry: inq}
	}
}

// LoadDashboardCmd fetches the admin dashboard.
func LoadDashboardCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		dash, err := client.GetDashboard(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading dashboard"}
		}
		return DashboardLoadedMsg{Dashboard: dash}
	}
}

// LoadAdminUsersCmd fetches one page of the admin user table.
func LoadAdminUsersCmd(client *api.Client, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.ListAdminUsers(ctx, page)
		if err != nil {
			return AdminUsersFailedMsg{Err: err}
		}
		return AdminUsersLoadedMsg{Page: result}
	}
}

// LoadAdminVideosCmd fetches one page of the admin video table.
func LoadAdminVideosCmd(client *api.Client, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := client.ListAdminVideos(ctx, page)
		if err != nil {
			return AdminVideosFailedMsg{Err: err}
		}
		return AdminVideosLoadedMsg{Page: result}
	}
}

// DeleteAdminVideoCmd removes a video through the admin endpoint. The
// video's comments are purged first so the removal never leaves orphans.
func DeleteAdminVideoCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteVideoComments(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting video comments"}
		}
		if err := client.DeleteAdminVideo(ctx, id); err != nil {
			return ErrMsg{Err: err, Context: "deleting video"}
		}
		return AdminVideoDeletedMsg{VideoID: id}
	}
}

// TickCmd drives the spinner.
func TickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status bar after a delay.
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
