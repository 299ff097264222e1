package api

import (
	"context"
	"net/http"

	"github.com/wetube/tube/internal/domain"
)

// LoginResult is the successful auth response: the token plus the profile
// the session store caches.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := map[string]string{"username": username, "password": password}
	body, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, payload)
	if err != nil {
		return nil, err
	}

	var out LoginResult
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupRequest carries the registration form.
type SignupRequest struct {
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	Nickname    string        `json:"nickname"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber,omitempty"`
	BirthDate   string        `json:"birthDate,omitempty"`
	Gender      domain.Gender `json:"gender,omitempty"`
	ZipCode     string        `json:"zipCode,omitempty"`
	Address1    string        `json:"address1,omitempty"`
	Address2    string        `json:"address2,omitempty"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", nil, req)
	return err
}

// CheckUsername reports whether a username is still available.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	return c.checkAvailability(ctx, "/auth/check-username", map[string]string{"username": username})
}

// CheckNickname reports whether a nickname is still available.
func (c *Client) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	return c.checkAvailability(ctx, "/auth/check-nickname", map[string]string{"nickname": nickname})
}

func (c *Client) checkAvailability(ctx context.Context, path string, payload map[string]string) (bool, error) {
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return false, err
	}

	var out struct {
		Available bool `json:"available"`
	}
	if err := decode(body, &out); err != nil {
		return false, err
	}
	return out.Available, nil
}

// ProfileUpdate carries the profile fields to change. Nil fields are
// omitted from the request and remain unchanged server-side.
type ProfileUpdate struct {
	Nickname     *string        `json:"nickname,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Password     *string        `json:"password,omitempty"`
	ProfileImage *string        `json:"profileImage,omitempty"`
	PhoneNumber  *string        `json:"phoneNumber,omitempty"`
	BirthDate    *string        `json:"birthDate,omitempty"`
	Gender       *domain.Gender `json:"gender,omitempty"`
	ZipCode      *string        `json:"zipCode,omitempty"`
	Address1     *string        `json:"address1,omitempty"`
	Address2     *string        `json:"address2,omitempty"`
}

// UpdateProfile patches the caller's profile and returns the updated user
// for the session store to merge.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.User, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, "/auth/profile", nil, update)
	if err != nil {
		return nil, err
	}

	var out domain.User
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
