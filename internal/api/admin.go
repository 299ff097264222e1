package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// GetDashboard returns the admin dashboard stats and recent rows.
func (c *Client) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/admin/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var out domain.Dashboard
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdminUsers returns one page of the user management table.
func (c *Client) ListAdminUsers(ctx context.Context, page int) (*domain.AdminUserPage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/admin/users", pageQuery(page, 0), nil)
	if err != nil {
		return nil, err
	}

	var out domain.AdminUserPage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAdminVideos returns one page of the video management table.
func (c *Client) ListAdminVideos(ctx context.Context, page int) (*domain.AdminVideoPage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/admin/videos", pageQuery(page, 0), nil)
	if err != nil {
		return nil, err
	}

	var out domain.AdminVideoPage
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAdminVideo removes any user's video.
func (c *Client) DeleteAdminVideo(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/videos/%d", id), nil, nil)
	return err
}
