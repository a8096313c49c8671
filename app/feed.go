package app

import (
	"context"

	"github.com/pevans/snooze/stories"
)

// LoadFeed fetches the first page of the feed, replacing whatever was loaded,
// and rewinds infinite scrolling to the second page.
func (a *App) LoadFeed(ctx context.Context) ([]stories.Story, error) {
	list, err := stories.GetStories(ctx, a.api, a.pageSize)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.feed = list
	a.pager = stories.NewPager(a.api, a.pageSize, a.pageSize)
	a.mu.Unlock()

	a.log.Debugw("feed loaded", "stories", list.Len())
	return list.Stories(), nil
}

// LoadMore fetches the next page and appends it to the feed. It returns only
// the new stories. Before any LoadFeed it fetches the first page. Concurrent
// calls for the same page, and a page that arrives after LoadFeed replaced
// the feed, get stories.ErrFetchInProgress and must not render anything.
func (a *App) LoadMore(ctx context.Context) ([]stories.Story, error) {
	a.mu.Lock()
	pager := a.pager
	a.mu.Unlock()

	page, err := pager.Next(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	if a.pager != pager {
		a.mu.Unlock()
		a.log.Debugw("dropping page for a replaced feed", "offset", page.Offset)
		return nil, stories.ErrFetchInProgress
	}
	a.feed.Append(page.Stories...)
	a.mu.Unlock()

	a.log.Debugw("feed page loaded", "offset", page.Offset, "stories", len(page.Stories))
	return page.Stories, nil
}

// Exhausted reports whether the last page loaded was the end of the feed.
func (a *App) Exhausted() bool {
	a.mu.Lock()
	pager := a.pager
	a.mu.Unlock()
	return pager.Exhausted()
}

// Feed returns the loaded feed.
func (a *App) Feed() []stories.Story {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.feed.Stories()
}

// Submit posts a new story as the current user, puts it at the top of the
// feed and records it as one of the user's stories.
func (a *App) Submit(ctx context.Context, draft stories.Draft) (*stories.Story, error) {
	user, err := a.requireUser()
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	feed := a.feed
	a.mu.Unlock()

	story, err := feed.AddStory(ctx, a.api, user.Token, draft)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.feed.Prepend(*story)
	a.mu.Unlock()

	a.userMu.Lock()
	user.AddOwnStory(*story)
	a.userMu.Unlock()

	a.log.Infow("story submitted", "storyId", story.StoryID, "title", story.Title)
	return story, nil
}

// Source returns the feed source, for one-off fetches outside the pager.
func (a *App) Source() stories.Source {
	return a.api
}
