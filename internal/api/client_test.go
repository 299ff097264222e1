package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wetube/tube/internal/domain"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", "client-123", func() string { return token }, nullLogger())
}

func TestHeaderInjection(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"videos":[],"total":0,"page":1,"totalPages":0,"hasNextPage":false}`))
	}, "tok-abc")

	if _, err := c.ListVideos(context.Background(), 1, 12); err != nil {
		t.Fatalf("ListVideos: %v", err)
	}

	if v := got.Get("Authorization"); v != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", v)
	}
	if v := got.Get("X-Client-Key"); v != "test-key" {
		t.Errorf("X-Client-Key = %q", v)
	}
	if v := got.Get("X-Client-Id"); v != "client-123" {
		t.Errorf("X-Client-Id = %q", v)
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"videos":[],"total":0,"page":1,"totalPages":0,"hasNextPage":false}`))
	}, "")

	if _, err := c.ListVideos(context.Background(), 1, 12); err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if v := got.Get("Authorization"); v != "" {
		t.Errorf("Authorization = %q, want empty", v)
	}
}

func TestUnauthorizedFiresHookAndMaps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale-token")

	var hookFired bool
	c.SetUnauthorizedHook(func() { hookFired = true })

	_, err := c.GetVideo(context.Background(), 1)
	if !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
	if !hookFired {
		t.Error("unauthorized hook should fire on 401")
	}
}

func TestValidationMessageSurfacedVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"title is required"}`))
	}, "tok")

	_, err := c.CreateInquiry(context.Background(), "", "")

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *domain.APIError", err)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("message = %q, want server message verbatim", apiErr.Message)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.Status)
	}
}

func TestNotFoundAndForbiddenMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusForbidden, domain.ErrForbidden},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}, "tok")

		if _, err := c.GetNotice(context.Background(), 1); !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestTransportFailureMapsToServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on

	c := NewClient(srv.URL, "k", "id", nil, nullLogger())
	if _, err := c.ListVideos(context.Background(), 1, 12); !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("err = %v, want ErrServerOffline", err)
	}
}

func TestToggleLikeSendsOnlyEntity(t *testing.T) {
	var method, path string
	var bodyLen int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		bodyLen = r.ContentLength
		w.Write([]byte(`{"isLiked":true,"likeCount":5}`))
	}, "tok")

	res, err := c.ToggleLike(context.Background(), 42)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}

	if method != http.MethodPost || path != "/videos/42/like" {
		t.Errorf("request = %s %s, want POST /videos/42/like", method, path)
	}
	if bodyLen > 0 {
		t.Error("toggle request should not tell the server a direction")
	}
	if !res.IsLiked || res.LikeCount == nil || *res.LikeCount != 5 {
		t.Errorf("result = %+v, want liked with echoed count 5", res)
	}
}

func TestToggleLikeWithoutEcho(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isLiked":false}`))
	}, "tok")

	res, err := c.ToggleLike(context.Background(), 42)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if res.LikeCount != nil {
		t.Errorf("LikeCount = %v, want nil when the server omits it", *res.LikeCount)
	}
}

func TestSearchVideosQuery(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"videos":[{"id":1,"title":"go"}],"total":1,"page":2,"totalPages":3,"hasNextPage":true}`))
	}, "")

	page, err := c.SearchVideos(context.Background(), "go talks", 2, 12)
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}

	if !strings.Contains(query, "q=go+talks") || !strings.Contains(query, "page=2") {
		t.Errorf("query = %q, want q and page params", query)
	}
	if len(page.Videos) != 1 || !page.HasNextPage || page.TotalPages != 3 {
		t.Errorf("page = %+v", page)
	}
}

func TestUploadVideoMultipart(t *testing.T) {
	var gotTitle, gotDesc, gotFile, gotThumb string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotTitle = r.FormValue("title")
		gotDesc = r.FormValue("description")
		if f, hdr, err := r.FormFile("video"); err == nil {
			data, _ := io.ReadAll(f)
			gotFile = hdr.Filename + ":" + string(data)
			f.Close()
		}
		if f, hdr, err := r.FormFile("thumbnail"); err == nil {
			gotThumb = hdr.Filename
			f.Close()
		}
		w.Write([]byte(`{"id":10,"title":"clip"}`))
	}, "tok")

	video, err := c.UploadVideo(context.Background(), UploadRequest{
		Title:         "clip",
		Description:   "desc",
		VideoName:     "clip.mp4",
		Video:         strings.NewReader("video-bytes"),
		ThumbnailName: "thumb.png",
		Thumbnail:     strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}

	if gotTitle != "clip" || gotDesc != "desc" {
		t.Errorf("fields = %q/%q", gotTitle, gotDesc)
	}
	if gotFile != "clip.mp4:video-bytes" {
		t.Errorf("video part = %q", gotFile)
	}
	if gotThumb != "thumb.png" {
		t.Errorf("thumbnail part = %q", gotThumb)
	}
	if video.ID != 10 {
		t.Errorf("video id = %d, want 10", video.ID)
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"jwt-1","user":{"id":3,"username":"june","nickname":"junetube","role":"USER"}}`))
	}, "")

	res, err := c.Login(context.Background(), "june", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "jwt-1" || res.User.Username != "june" || res.User.Role != domain.RoleUser {
		t.Errorf("result = %+v", res)
	}
}
