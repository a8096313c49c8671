package client

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/pevans/snooze/stories"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Signup creates an account and returns it along with a login token. A taken
// username fails with ErrValidation.
func (c *Client) Signup(ctx context.Context, username, password, name string) (*Account, string, error) {
	body := map[string]credentials{
		"user": {Username: username, Password: password, Name: name},
	}
	return c.authenticate(ctx, "/signup", body)
}

// Login authenticates with username and password. The returned account
// includes the user's favorites and own stories. Bad credentials fail with
// ErrAuth.
func (c *Client) Login(ctx context.Context, username, password string) (*Account, string, error) {
	body := map[string]credentials{
		"user": {Username: username, Password: password},
	}
	return c.authenticate(ctx, "/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Account, string, error) {
	var out authResponse
	req := c.request(ctx).SetBody(body).SetResult(&out)
	if err := c.do(req, resty.MethodPost, path); err != nil {
		return nil, "", err
	}

	normalize(&out.User)
	return &out.User, out.Token, nil
}

// FetchUser fetches the profile of username using token as the credential.
// When either argument is empty it returns nil without making a request; an
// absent session is not an error.
func (c *Client) FetchUser(ctx context.Context, token, username string) (*Account, error) {
	if token == "" || username == "" {
		return nil, nil
	}

	var out userResponse
	req := c.request(ctx).
		SetPathParam("username", username).
		SetQueryParam("token", token).
		SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/users/{username}"); err != nil {
		return nil, err
	}

	normalize(&out.User)
	return &out.User, nil
}

// AddFavorite marks a story as a favorite of username and returns the
// server's updated favorites.
func (c *Client) AddFavorite(ctx context.Context, token, username, storyID string) ([]stories.Story, error) {
	return c.favorite(ctx, resty.MethodPost, token, username, storyID)
}

// RemoveFavorite unmarks a favorite of username and returns the server's
// updated favorites.
func (c *Client) RemoveFavorite(ctx context.Context, token, username, storyID string) ([]stories.Story, error) {
	return c.favorite(ctx, resty.MethodDelete, token, username, storyID)
}

func (c *Client) favorite(ctx context.Context, method, token, username, storyID string) ([]stories.Story, error) {
	var out userResponse
	req := c.request(ctx).
		SetPathParams(map[string]string{
			"username": username,
			"storyId":  storyID,
		}).
		SetBody(tokenBody{Token: token}).
		SetResult(&out)
	if err := c.do(req, method, "/users/{username}/favorites/{storyId}"); err != nil {
		return nil, err
	}

	normalize(&out.User)
	return out.User.Favorites, nil
}

// normalize replaces missing collections with empty ones.
func normalize(acct *Account) {
	if acct.Favorites == nil {
		acct.Favorites = []stories.Story{}
	}
	if acct.Stories == nil {
		acct.Stories = []stories.Story{}
	}
}
