package stories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDraft is returned when a draft is missing a field or carries a
// malformed URL.
var ErrInvalidDraft = errors.New("invalid story draft")

var validate = validator.New()

// Story represents a single story as returned by the API. Field names match
// the API's JSON so a decoded story encodes back to the same record.
type Story struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hostname returns the host part of the story URL without a leading "www.".
// URLs without a scheme are treated as starting with the host.
func (s Story) Hostname() string {
	rest := s.URL
	if _, after, found := strings.Cut(rest, "://"); found {
		rest = after
	}
	host, _, _ := strings.Cut(rest, "/")

	return strings.TrimPrefix(host, "www.")
}

// Draft holds the fields a user submits to create a story.
type Draft struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
}

// Validate checks that every field is present and that URL is absolute.
func (d Draft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	d.URL = strings.TrimSpace(d.URL)

	if err := validate.Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidDraft, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	return nil
}

// Contains reports whether a story with the given ID is in the slice.
func Contains(list []Story, storyID string) bool {
	return indexOf(list, storyID) >= 0
}

// Without returns a copy of list with every story matching storyID dropped.
func Without(list []Story, storyID string) []Story {
	out := make([]Story, 0, len(list))
	for _, s := range list {
		if s.StoryID != storyID {
			out = append(out, s)
		}
	}
	return out
}

// IDs returns the story IDs of list in order.
func IDs(list []Story) []string {
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.StoryID
	}
	return ids
}

func indexOf(list []Story, storyID string) int {
	for i, s := range list {
		if s.StoryID == storyID {
			return i
		}
	}
	return -1
}
