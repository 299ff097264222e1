package tui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/log"
)

func newCommandClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, "test-key", "client-123", func() string { return "" }, log.NullLogger())
}

func TestLoginCmdSignsInTheSession(t *testing.T) {
	client := newCommandClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"id":3,"username":"mina","nickname":"Mina","role":"USER"}}`))
	})

	msg := LoginCmd(client, "mina", "pw")()
	done, ok := msg.(LoginDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want LoginDoneMsg", msg)
	}
	if done.Err != nil {
		t.Fatalf("Err = %v", done.Err)
	}
	if done.Token != "tok-1" {
		t.Errorf("Token = %q, want tok-1", done.Token)
	}
	if done.User == nil || done.User.Nickname != "Mina" {
		t.Fatalf("User = %+v, want nickname Mina", done.User)
	}

	// Feeding the message through the model completes the sign-in
	m := newTestModel(t)
	m.openForm(formSignIn, 0)
	m.Update(msg)
	if !m.session.IsLoggedIn() {
		t.Error("session should be logged in after LoginDoneMsg")
	}
	if snap := m.session.Snapshot(); snap.User == nil || snap.User.ID != 3 {
		t.Errorf("session user = %+v, want id 3", snap.User)
	}
	if m.route != RouteHome {
		t.Errorf("route = %d after sign-in, want home", m.route)
	}
}

type closeSpy struct {
	io.Reader
	closed bool
}

func (c *closeSpy) Close() error {
	c.closed = true
	return nil
}

func TestUploadVideoCmdClosesFileHandles(t *testing.T) {
	client := newCommandClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.Write([]byte(`{"id":42,"title":"clip"}`))
	})

	video := &closeSpy{Reader: strings.NewReader("video-bytes")}
	thumb := &closeSpy{Reader: strings.NewReader("thumb-bytes")}

	msg := UploadVideoCmd(client, api.UploadRequest{
		Title:         "clip",
		VideoName:     "clip.mp4",
		Video:         video,
		ThumbnailName: "clip.jpg",
		Thumbnail:     thumb,
	})()

	done, ok := msg.(UploadDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want UploadDoneMsg", msg)
	}
	if done.Err != nil {
		t.Fatalf("Err = %v", done.Err)
	}
	if !video.closed || !thumb.closed {
		t.Errorf("closed = (%v, %v), want both file handles closed", video.closed, thumb.closed)
	}
}

func TestUploadVideoCmdClosesHandlesOnFailure(t *testing.T) {
	client := newCommandClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusInternalServerError)
	})

	video := &closeSpy{Reader: strings.NewReader("video-bytes")}
	msg := UploadVideoCmd(client, api.UploadRequest{
		Title:     "clip",
		VideoName: "clip.mp4",
		Video:     video,
	})()

	done := msg.(UploadDoneMsg)
	if done.Err == nil {
		t.Fatal("Err = nil, want upload failure")
	}
	if !video.closed {
		t.Error("video handle should close when the upload fails")
	}
}
