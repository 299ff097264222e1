package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// ListNotices returns one page of the notice board.
func (c *Client) ListNotices(ctx context.Context, page, limit int) (*domain.NoticePage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/notices", pageQuery(page, limit), nil)
	if err != nil {
		return nil, err
	}

	var out domain.NoticePage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNotice returns one notice and bumps its view count server-side.
func (c *Client) GetNotice(ctx context.Context, id int64) (*domain.Notice, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/notices/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out domain.Notice
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNotice posts a new notice (admin only, enforced server-side).
func (c *Client) CreateNotice(ctx context.Context, title, content string) (*domain.Notice, error) {
	payload := map[string]string{"title": title, "content": content}
	body, err := c.doRequest(ctx, http.MethodPost, "/notices", nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Notice
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotice edits an existing notice.
func (c *Client) UpdateNotice(ctx context.Context, id int64, title, content string) (*domain.Notice, error) {
	payload := map[string]string{"title": title, "content": content}
	body, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/notices/%d", id), nil, payload)
	if err != nil {
		return nil, err
	}

	var out domain.Notice
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNotice removes a notice.
func (c *Client) DeleteNotice(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/notices/%d", id), nil, nil)
	return err
}
