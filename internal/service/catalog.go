// Package service fronts the API client with a short-lived in-memory cache
// for detail reads. Nothing here is persisted; the only durable client
// state is the session and the sidebar preference.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/domain"
)

const (
	detailTTL       = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

// Catalog serves video, channel, and notice reads. Repeat detail fetches
// within the TTL hit the cache; every write path invalidates the entries it
// touches.
type Catalog struct {
	client *api.Client
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewCatalog creates a catalog service over the API client.
func NewCatalog(client *api.Client, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		client: client,
		cache:  gocache.New(detailTTL, cleanupInterval),
		logger: logger,
	}
}

func videoKey(id int64) string   { return fmt.Sprintf("video:%d", id) }
func channelKey(id int64) string { return fmt.Sprintf("channel:%d", id) }
func noticeKey(id int64) string  { return fmt.Sprintf("notice:%d", id) }

// Video returns a video detail, cached briefly.
func (s *Catalog) Video(ctx context.Context, id int64) (*domain.Video, error) {
	if v, ok := s.cache.Get(videoKey(id)); ok {
		return v.(*domain.Video), nil
	}

	video, err := s.client.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(videoKey(id), video)
	return video, nil
}

// Channel returns a channel page, cached briefly.
func (s *Catalog) Channel(ctx context.Context, id int64) (*domain.Channel, error) {
	if v, ok := s.cache.Get(channelKey(id)); ok {
		return v.(*domain.Channel), nil
	}

	channel, err := s.client.GetChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(channelKey(id), channel)
	return channel, nil
}

// Notice returns a notice detail, cached briefly.
func (s *Catalog) Notice(ctx context.Context, id int64) (*domain.Notice, error) {
	if v, ok := s.cache.Get(noticeKey(id)); ok {
		return v.(*domain.Notice), nil
	}

	notice, err := s.client.GetNotice(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(noticeKey(id), notice)
	return notice, nil
}

// InvalidateVideo drops a cached video detail. Called after a like toggle
// so the next fetch reflects the confirmed state.
func (s *Catalog) InvalidateVideo(id int64) {
	s.cache.Delete(videoKey(id))
}

// InvalidateChannel drops a cached channel page after a subscription change.
func (s *Catalog) InvalidateChannel(id int64) {
	s.cache.Delete(channelKey(id))
}

// InvalidateNotice drops a cached notice after an edit or delete.
func (s *Catalog) InvalidateNotice(id int64) {
	s.cache.Delete(noticeKey(id))
}

// InvalidateAll empties the cache; used on logout since detail payloads
// embed viewer-specific flags.
func (s *Catalog) InvalidateAll() {
	s.cache.Flush()
}
