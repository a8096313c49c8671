package stories

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStory_JSONRoundTrip verifies a raw API record decodes and re-encodes
// with the same identifying fields
func TestStory_JSONRoundTrip(t *testing.T) {
	raw := `{
		"storyId": "s1",
		"title": "T",
		"author": "A",
		"url": "http://x.com",
		"username": "u1",
		"createdAt": "2019-12-24T21:46:41.545Z",
		"updatedAt": "2019-12-24T21:46:41.545Z"
	}`

	var story Story
	require.NoError(t, json.Unmarshal([]byte(raw), &story))

	data, err := json.Marshal(story)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, "s1", back["storyId"])
	assert.Equal(t, "T", back["title"])
	assert.Equal(t, "A", back["author"])
	assert.Equal(t, "http://x.com", back["url"])
	assert.Equal(t, "u1", back["username"])
	assert.Equal(t, time.Date(2019, 12, 24, 21, 46, 41, 545000000, time.UTC), story.CreatedAt.UTC())
}

// TestStory_Hostname verifies hostname extraction for display
func TestStory_Hostname(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.example.com/article/1", "example.com"},
		{"http://news.ycombinator.com", "news.ycombinator.com"},
		{"example.org/path", "example.org"},
		{"www.example.net", "example.net"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, Story{URL: tt.url}.Hostname())
		})
	}
}

// TestDraft_Validate verifies required fields and URL syntax
func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		expectErr bool
	}{
		{
			name:  "complete draft",
			draft: Draft{Title: "T", Author: "A", URL: "http://x.com"},
		},
		{
			name:      "missing title",
			draft:     Draft{Author: "A", URL: "http://x.com"},
			expectErr: true,
		},
		{
			name:      "blank author",
			draft:     Draft{Title: "T", Author: "   ", URL: "http://x.com"},
			expectErr: true,
		},
		{
			name:      "malformed url",
			draft:     Draft{Title: "T", Author: "A", URL: "not a url"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidDraft)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestContainsAndWithout verifies the identity helpers used by collections
func TestContainsAndWithout(t *testing.T) {
	list := []Story{{StoryID: "s1"}, {StoryID: "s2"}, {StoryID: "s3"}}

	assert.True(t, Contains(list, "s2"))
	assert.False(t, Contains(list, "s4"))

	rest := Without(list, "s2")
	assert.Equal(t, []string{"s1", "s3"}, IDs(rest))
	assert.Len(t, list, 3, "Without should not modify the input")
}
