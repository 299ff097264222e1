package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// ListComments returns all comments on a video, newest first.
func (c *Client) ListComments(ctx context.Context, videoID int64) ([]domain.Comment, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/videos/%d/comments", videoID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out []domain.Comment
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a comment on a video.
func (c *Client) CreateComment(ctx context.Context, videoID int64, content string) (*domain.Comment, error) {
	payload := map[string]string{"content": content}
	body, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/videos/%d/comments", videoID), nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Comment
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a single comment by its own id.
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, nil)
	return err
}

// DeleteVideoComments removes all of the caller's comments on a video.
func (c *Client) DeleteVideoComments(ctx context.Context, videoID int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/videos/%d/comments", videoID), nil, nil)
	return err
}
