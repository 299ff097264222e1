package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/wetube/tube/internal/domain"
)

// ListVideos returns one page of the public video feed.
func (c *Client) ListVideos(ctx context.Context, page, limit int) (*domain.VideoPage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/videos", pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}

	var out domain.VideoPage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideo returns a video's detail, including the caller's like state when
// authenticated.
func (c *Client) GetVideo(ctx context.Context, id int64) (*domain.Video, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/videos/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out domain.Video
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LikeResult is the like-toggle response. The backend decides the new state;
// LikeCount is echoed when it returns a fresh count.
type LikeResult struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount *int `json:"likeCount,omitempty"`
}

// ToggleLike toggles the caller's like on a video. The request names only
// the entity; the direction is the server's decision.
func (c *Client) ToggleLike(ctx context.Context, videoID int64) (*LikeResult, error) {
	body, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/videos/%d/like", videoID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out LikeResult
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WatchHistory returns one page of the caller's watch history.
func (c *Client) WatchHistory(ctx context.Context, page, limit int) (*domain.VideoPage, error) {
	return c.videoPage(ctx, "/videos/history", pageQuery(page, limit))
}

// LikedVideos returns one page of the videos the caller has liked.
func (c *Client) LikedVideos(ctx context.Context, page, limit int) (*domain.VideoPage, error) {
	return c.videoPage(ctx, "/videos/liked", pageQuery(page, limit))
}

// SubscribedVideos returns one page of uploads from subscribed channels.
func (c *Client) SubscribedVideos(ctx context.Context, page, limit int) (*domain.VideoPage, error) {
	return c.videoPage(ctx, "/videos/subscribed", pageQuery(page, limit))
}

// SearchVideos returns one page of results for a query.
func (c *Client) SearchVideos(ctx context.Context, query string, page, limit int) (*domain.VideoPage, error) {
	q := pageQuery(page, limit)
	q.Set("q", query)
	return c.videoPage(ctx, "/videos/search", q)
}

func (c *Client) videoPage(ctx context.Context, path string, query url.Values) (*domain.VideoPage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var out domain.VideoPage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadRequest carries the form fields and file streams for a video upload.
// Binary handling is entirely the backend's concern; the client only streams.
type UploadRequest struct {
	Title       string
	Description string

	VideoName string
	Video     io.Reader

	ThumbnailName string
	Thumbnail     io.Reader
}

// UploadVideo posts a new video as multipart/form-data.
func (c *Client) UploadVideo(ctx context.Context, upload UploadRequest) (*domain.Video, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, upload)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	body, err := c.doMultipart(ctx, http.MethodPost, "/videos", mw.FormDataContentType(), pr)
	if err != nil {
		return nil, err
	}

	var out domain.Video
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func writeUploadForm(mw *multipart.Writer, upload UploadRequest) error {
	if err := mw.WriteField("title", upload.Title); err != nil {
		return err
	}
	if err := mw.WriteField("description", upload.Description); err != nil {
		return err
	}

	fw, err := mw.CreateFormFile("video", filepath.Base(upload.VideoName))
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, upload.Video); err != nil {
		return err
	}

	if upload.Thumbnail != nil {
		fw, err = mw.CreateFormFile("thumbnail", filepath.Base(upload.ThumbnailName))
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, upload.Thumbnail); err != nil {
			return err
		}
	}
	return nil
}
