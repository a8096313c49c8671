// Package fakeapi is an in-memory implementation of the Hack-or-Snooze API.
// It serves the same routes and JSON shapes as the real service and is used
// for tests and local development.
package fakeapi

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pevans/snooze/stories"
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStoryNotFound      = errors.New("story not found")
	ErrNotOwner           = errors.New("only the author may delete a story")
)

type account struct {
	username     string
	name         string
	passwordHash []byte
	createdAt    time.Time
	updatedAt    time.Time
	favorites    []string
}

// store holds users and stories. Stories are kept newest first.
type store struct {
	mu      sync.Mutex
	users   map[string]*account
	stories []stories.Story
	now     func() time.Time
}

func newStore() *store {
	return &store{
		users: make(map[string]*account),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *store) createUser(username, password, name string) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrUserExists
	}

	now := s.now()
	acct := &account{
		username:     username,
		name:         name,
		passwordHash: hash,
		createdAt:    now,
		updatedAt:    now,
	}
	s.users[username] = acct
	return acct, nil
}

func (s *store) checkPassword(username, password string) error {
	s.mu.Lock()
	acct, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// profile renders an account with its favorites and own stories resolved.
func (s *store) profile(username string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	favorites := []stories.Story{}
	for _, id := range acct.favorites {
		if story, found := s.findLocked(id); found {
			favorites = append(favorites, story)
		}
	}

	own := []stories.Story{}
	for _, story := range s.stories {
		if story.Username == username {
			own = append(own, story)
		}
	}

	return map[string]any{
		"username":  acct.username,
		"name":      acct.name,
		"createdAt": acct.createdAt,
		"updatedAt": acct.updatedAt,
		"favorites": favorites,
		"stories":   own,
	}, nil
}

func (s *store) listStories(skip, limit int) []stories.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	if skip >= len(s.stories) {
		return []stories.Story{}
	}
	end := min(skip+limit, len(s.stories))
	return slices.Clone(s.stories[skip:end])
}

func (s *store) addStory(username string, draft stories.Draft) stories.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	story := stories.Story{
		StoryID:   uuid.NewString(),
		Title:     strings.TrimSpace(draft.Title),
		Author:    strings.TrimSpace(draft.Author),
		URL:       strings.TrimSpace(draft.URL),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.stories = append([]stories.Story{story}, s.stories...)
	return story
}

func (s *store) getStory(storyID string) (stories.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, ok := s.findLocked(storyID)
	if !ok {
		return stories.Story{}, ErrStoryNotFound
	}
	return story, nil
}

func (s *store) deleteStory(username, storyID string) (stories.Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, ok := s.findLocked(storyID)
	if !ok {
		return stories.Story{}, ErrStoryNotFound
	}
	if story.Username != username {
		return stories.Story{}, ErrNotOwner
	}

	s.stories = stories.Without(s.stories, storyID)
	for _, acct := range s.users {
		acct.favorites = slices.DeleteFunc(acct.favorites, func(id string) bool { return id == storyID })
	}
	return story, nil
}

// addFavorite appends storyID to the user's favorites. Repeating it is a
// no-op.
func (s *store) addFavorite(username, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if _, found := s.findLocked(storyID); !found {
		return ErrStoryNotFound
	}
	if !slices.Contains(acct.favorites, storyID) {
		acct.favorites = append(acct.favorites, storyID)
		acct.updatedAt = s.now()
	}
	return nil
}

func (s *store) removeFavorite(username, storyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if _, found := s.findLocked(storyID); !found {
		return ErrStoryNotFound
	}
	acct.favorites = slices.DeleteFunc(acct.favorites, func(id string) bool { return id == storyID })
	acct.updatedAt = s.now()
	return nil
}

func (s *store) findLocked(storyID string) (stories.Story, bool) {
	for _, story := range s.stories {
		if story.StoryID == storyID {
			return story, true
		}
	}
	return stories.Story{}, false
}
