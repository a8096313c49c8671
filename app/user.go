package app

import (
	"context"

	"github.com/pevans/snooze/stories"
)

// Favorites returns the current user's favorites, or nothing when anonymous.
func (a *App) Favorites() []stories.Story {
	user := a.CurrentUser()
	if user == nil {
		return []stories.Story{}
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.Favorites()
}

// OwnStories returns the stories the current user posted.
func (a *App) OwnStories() []stories.Story {
	user := a.CurrentUser()
	if user == nil {
		return []stories.Story{}
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.OwnStories()
}

// IsFavorite reports whether the current user favorited storyID.
func (a *App) IsFavorite(storyID string) bool {
	user := a.CurrentUser()
	if user == nil {
		return false
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.HasFavorited(storyID)
}

// AddFavorite favorites a story for the current user.
func (a *App) AddFavorite(ctx context.Context, storyID string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.AddFavorite(ctx, storyID)
}

// RemoveFavorite unfavorites a story for the current user.
func (a *App) RemoveFavorite(ctx context.Context, storyID string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.RemoveFavorite(ctx, storyID)
}

// ToggleFavorite flips the favorite state of a story and reports the new
// state.
func (a *App) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	user, err := a.requireUser()
	if err != nil {
		return false, err
	}

	a.userMu.Lock()
	defer a.userMu.Unlock()
	return user.ToggleFavorite(ctx, storyID)
}

// DeleteStory deletes one of the current user's stories and drops it from
// the feed.
func (a *App) DeleteStory(ctx context.Context, storyID string) error {
	user, err := a.requireUser()
	if err != nil {
		return err
	}

	a.userMu.Lock()
	err = user.DeleteStory(ctx, storyID)
	a.userMu.Unlock()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.feed.Remove(storyID)
	a.mu.Unlock()

	a.log.Infow("story deleted", "storyId", storyID)
	return nil
}
