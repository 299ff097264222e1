package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// GetChannel returns a channel page with its uploads and the caller's
// subscription state.
func (c *Client) GetChannel(ctx context.Context, channelID int64) (*domain.Channel, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/channels/%d", channelID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out domain.Channel
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleSubscription toggles the caller's subscription to a channel and
// returns the server-confirmed state.
func (c *Client) ToggleSubscription(ctx context.Context, channelID int64) (bool, error) {
	body, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/subscriptions/%d", channelID), nil, nil)
	if err != nil {
		return false, err
	}

	var out struct {
		IsSubscribed bool `json:"isSubscribed"`
	}
	if err := decode(body, &out); err != nil {
		return false, err
	}
	return out.IsSubscribed, nil
}
