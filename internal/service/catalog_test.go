package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/wetube/tube/internal/api"
)

func newCatalog(t *testing.T, handler http.HandlerFunc) (*Catalog, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(srv.URL, "k", "id", nil, logger)
	return NewCatalog(client, logger), &hits
}

func TestVideoDetailCached(t *testing.T) {
	c, hits := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"clip"}`))
	})

	ctx := context.Background()
	if _, err := c.Video(ctx, 1); err != nil {
		t.Fatalf("Video: %v", err)
	}
	if _, err := c.Video(ctx, 1); err != nil {
		t.Fatalf("Video: %v", err)
	}

	if *hits != 1 {
		t.Errorf("backend hits = %d, want 1 (second read cached)", *hits)
	}
}

func TestInvalidateVideoForcesRefetch(t *testing.T) {
	c, hits := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"clip"}`))
	})

	ctx := context.Background()
	c.Video(ctx, 1)
	c.InvalidateVideo(1)
	c.Video(ctx, 1)

	if *hits != 2 {
		t.Errorf("backend hits = %d, want 2 after invalidation", *hits)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	c, hits := newCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id":2,"nickname":"chan"}`))
	})

	ctx := context.Background()
	if _, err := c.Channel(ctx, 2); err == nil {
		t.Fatal("expected error from first fetch")
	}

	fail.Store(false)
	if _, err := c.Channel(ctx, 2); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if *hits != 2 {
		t.Errorf("backend hits = %d, want 2", *hits)
	}
}
