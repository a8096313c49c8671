// Package users models the authenticated user: profile fields, the login
// token, favorites and the stories the user posted.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/pevans/snooze/client"
	"github.com/pevans/snooze/stories"
)

// API is the part of the remote client a User needs.
type API interface {
	Signup(ctx context.Context, username, password, name string) (*client.Account, string, error)
	Login(ctx context.Context, username, password string) (*client.Account, string, error)
	FetchUser(ctx context.Context, token, username string) (*client.Account, error)
	AddFavorite(ctx context.Context, token, username, storyID string) ([]stories.Story, error)
	RemoveFavorite(ctx context.Context, token, username, storyID string) ([]stories.Story, error)
	DeleteStory(ctx context.Context, token, storyID string) error
}

// User is a logged-in account. Favorites and own stories change only through
// the methods below.
type User struct {
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Token     string

	api       API
	favorites []stories.Story
	own       []stories.Story
}

func newUser(api API, acct *client.Account, token string) *User {
	u := &User{Token: token, api: api}
	u.apply(acct)
	return u
}

func (u *User) apply(acct *client.Account) {
	u.Username = acct.Username
	u.Name = acct.Name
	u.CreatedAt = acct.CreatedAt
	u.UpdatedAt = acct.UpdatedAt
	u.favorites = append([]stories.Story{}, acct.Favorites...)
	u.own = append([]stories.Story{}, acct.Stories...)
}

// Create signs up a new account and returns it logged in.
func Create(ctx context.Context, api API, username, password, name string) (*User, error) {
	acct, token, err := api.Signup(ctx, username, password, name)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up %q: %w", username, err)
	}
	return newUser(api, acct, token), nil
}

// Login authenticates with username and password.
func Login(ctx context.Context, api API, username, password string) (*User, error) {
	acct, token, err := api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to log in %q: %w", username, err)
	}
	return newUser(api, acct, token), nil
}

// GetLoggedInUser restores a user from saved credentials. It returns nil
// without an error when either credential is missing.
func GetLoggedInUser(ctx context.Context, api API, token, username string) (*User, error) {
	if token == "" || username == "" {
		return nil, nil
	}

	acct, err := api.FetchUser(ctx, token, username)
	if err != nil {
		return nil, fmt.Errorf("failed to restore user %q: %w", username, err)
	}
	if acct == nil {
		return nil, nil
	}
	return newUser(api, acct, token), nil
}

// Favorites returns a copy of the user's favorites.
func (u *User) Favorites() []stories.Story {
	return append([]stories.Story{}, u.favorites...)
}

// OwnStories returns a copy of the stories the user posted.
func (u *User) OwnStories() []stories.Story {
	return append([]stories.Story{}, u.own...)
}

// HasFavorited reports whether storyID is among the user's favorites.
func (u *User) HasFavorited(storyID string) bool {
	return stories.Contains(u.favorites, storyID)
}

// Owns reports whether storyID is one of the user's own stories.
func (u *User) Owns(storyID string) bool {
	return stories.Contains(u.own, storyID)
}

// AddFavorite favorites a story. Favorites are replaced with the server's
// list; on failure they are left as they were.
func (u *User) AddFavorite(ctx context.Context, storyID string) error {
	favs, err := u.api.AddFavorite(ctx, u.Token, u.Username, storyID)
	if err != nil {
		return fmt.Errorf("failed to add favorite %s: %w", storyID, err)
	}
	u.favorites = append([]stories.Story{}, favs...)
	return nil
}

// RemoveFavorite unfavorites a story, with the same reconciliation as
// AddFavorite.
func (u *User) RemoveFavorite(ctx context.Context, storyID string) error {
	favs, err := u.api.RemoveFavorite(ctx, u.Token, u.Username, storyID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", storyID, err)
	}
	u.favorites = append([]stories.Story{}, favs...)
	return nil
}

// ToggleFavorite adds or removes the favorite depending on its current state
// and reports whether the story is a favorite afterwards.
func (u *User) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	if u.HasFavorited(storyID) {
		if err := u.RemoveFavorite(ctx, storyID); err != nil {
			return true, err
		}
		return u.HasFavorited(storyID), nil
	}

	if err := u.AddFavorite(ctx, storyID); err != nil {
		return false, err
	}
	return u.HasFavorited(storyID), nil
}

// DeleteStory deletes one of the user's stories on the server, then drops it
// from own stories and favorites.
func (u *User) DeleteStory(ctx context.Context, storyID string) error {
	if err := u.api.DeleteStory(ctx, u.Token, storyID); err != nil {
		return fmt.Errorf("failed to delete story %s: %w", storyID, err)
	}
	u.own = stories.Without(u.own, storyID)
	u.favorites = stories.Without(u.favorites, storyID)
	return nil
}

// AddOwnStory records a story the user just posted, newest first.
func (u *User) AddOwnStory(s stories.Story) {
	if stories.Contains(u.own, s.StoryID) {
		return
	}
	u.own = append([]stories.Story{s}, u.own...)
}

// Refresh refetches the profile and replaces every field with the server's
// copy.
func (u *User) Refresh(ctx context.Context) error {
	acct, err := u.api.FetchUser(ctx, u.Token, u.Username)
	if err != nil {
		return fmt.Errorf("failed to refresh user %q: %w", u.Username, err)
	}
	if acct == nil {
		return fmt.Errorf("failed to refresh user: %w", client.ErrAuth)
	}
	u.apply(acct)
	return nil
}
