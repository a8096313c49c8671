package stories

import (
	"context"
	"fmt"
)

// DefaultPageSize is the number of stories requested per feed page.
const DefaultPageSize = 25

// Source fetches one page of the global feed.
type Source interface {
	FetchStories(ctx context.Context, offset, limit int) ([]Story, error)
}

// Publisher creates stories on behalf of an authenticated user.
type Publisher interface {
	CreateStory(ctx context.Context, token string, draft Draft) (*Story, error)
}

// StoryList is one page (plus any appended pages) of the global feed.
type StoryList struct {
	stories  []Story
	offset   int
	pageSize int
}

// NewStoryList creates a story list holding the given stories.
func NewStoryList(pageSize int, list ...Story) *StoryList {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &StoryList{
		stories:  append([]Story(nil), list...),
		pageSize: pageSize,
	}
}

// GetStories fetches the first page of the feed into a new StoryList.
func GetStories(ctx context.Context, src Source, pageSize int) (*StoryList, error) {
	list := NewStoryList(pageSize)
	if err := list.Fetch(ctx, src, 0); err != nil {
		return nil, err
	}
	return list, nil
}

// Fetch replaces the list's contents with the page starting at offset. The
// list is left unchanged if the fetch fails.
func (l *StoryList) Fetch(ctx context.Context, src Source, offset int) error {
	page, err := src.FetchStories(ctx, offset, l.pageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch stories: %w", err)
	}

	l.stories = append([]Story(nil), page...)
	l.offset = offset
	return nil
}

// Append adds more stories to the end of the list.
func (l *StoryList) Append(more ...Story) {
	l.stories = append(l.stories, more...)
}

// Prepend adds a story to the front of the list.
func (l *StoryList) Prepend(s Story) {
	l.stories = append([]Story{s}, l.stories...)
}

// Remove drops the story with the given ID. It reports whether anything was
// removed.
func (l *StoryList) Remove(storyID string) bool {
	if indexOf(l.stories, storyID) < 0 {
		return false
	}
	l.stories = Without(l.stories, storyID)
	return true
}

// Get returns the story with the given ID.
func (l *StoryList) Get(storyID string) (Story, bool) {
	i := indexOf(l.stories, storyID)
	if i < 0 {
		return Story{}, false
	}
	return l.stories[i], true
}

// AddStory validates the draft and posts it through pub. The created story
// is returned for the caller to place; the list itself is not modified.
func (l *StoryList) AddStory(ctx context.Context, pub Publisher, token string, draft Draft) (*Story, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	story, err := pub.CreateStory(ctx, token, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to add story: %w", err)
	}

	return story, nil
}

// Stories returns a copy of the stories in the list.
func (l *StoryList) Stories() []Story {
	return append([]Story(nil), l.stories...)
}

// Len returns the number of stories in the list.
func (l *StoryList) Len() int {
	return len(l.stories)
}

// Offset returns the offset the list was last fetched from.
func (l *StoryList) Offset() int {
	return l.offset
}

// PageSize returns the number of stories requested per page.
func (l *StoryList) PageSize() int {
	return l.pageSize
}
