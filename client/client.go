// Package client talks to the Hack-or-Snooze HTTP API and decodes its
// responses into stories and accounts. It does no retrying or caching.
package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pevans/snooze/stories"
)

// DefaultBaseURL is the public Hack-or-Snooze API.
const DefaultBaseURL = "https://hack-or-snooze-v3.herokuapp.com"

// Client issues requests against the API.
type Client struct {
	http *resty.Client
	log  *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithLogger sends request diagnostics to log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.log = log
		c.http.SetLogger(log)
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "snooze/1.0"),
		log: zap.NewNop().Sugar(),
	}
	c.http.SetLogger(c.log)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Account is a user profile as the API returns it, including the user's
// favorites and own stories.
type Account struct {
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Favorites []stories.Story `json:"favorites"`
	Stories   []stories.Story `json:"stories"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type storiesResponse struct {
	Stories []stories.Story `json:"stories"`
}

type storyResponse struct {
	Story stories.Story `json:"story"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

type userResponse struct {
	Message string  `json:"message,omitempty"`
	User    Account `json:"user"`
}

// do executes req against path and converts transport failures and error
// statuses into the client's error categories.
func (c *Client) do(req *resty.Request, method, path string) error {
	start := time.Now()
	resp, err := req.SetError(&errorBody{}).Execute(method, path)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}

	c.log.Debugw("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)

	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{
		Kind:   kindForStatus(resp.StatusCode()),
		Status: resp.StatusCode(),
	}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Title = body.Error.Title
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// FetchStories fetches up to limit stories of the global feed starting at
// offset. No authentication is required.
func (c *Client) FetchStories(ctx context.Context, offset, limit int) ([]stories.Story, error) {
	if limit <= 0 {
		limit = stories.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var out storiesResponse
	req := c.request(ctx).
		SetQueryParam("skip", strconv.Itoa(offset)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/stories"); err != nil {
		return nil, err
	}

	if out.Stories == nil {
		out.Stories = []stories.Story{}
	}
	return out.Stories, nil
}

// GetStory fetches a single story by ID.
func (c *Client) GetStory(ctx context.Context, storyID string) (*stories.Story, error) {
	var out storyResponse
	req := c.request(ctx).
		SetPathParam("storyId", storyID).
		SetResult(&out)
	if err := c.do(req, resty.MethodGet, "/stories/{storyId}"); err != nil {
		return nil, err
	}
	return &out.Story, nil
}

// CreateStory posts a new story as the user identified by token and returns
// it with its server-assigned ID and timestamps.
func (c *Client) CreateStory(ctx context.Context, token string, draft stories.Draft) (*stories.Story, error) {
	body := struct {
		Token string        `json:"token"`
		Story stories.Draft `json:"story"`
	}{Token: token, Story: draft}

	var out storyResponse
	req := c.request(ctx).SetBody(body).SetResult(&out)
	if err := c.do(req, resty.MethodPost, "/stories"); err != nil {
		return nil, err
	}
	return &out.Story, nil
}

// DeleteStory deletes a story owned by the user identified by token.
func (c *Client) DeleteStory(ctx context.Context, token, storyID string) error {
	req := c.request(ctx).
		SetPathParam("storyId", storyID).
		SetBody(tokenBody{Token: token})
	return c.do(req, resty.MethodDelete, "/stories/{storyId}")
}
