package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/snooze/stories"
)

// Test helper: two sample stories
func sampleStories() []stories.Story {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []stories.Story{
		{StoryID: "abcdef123456", Title: "First", Author: "Ann", URL: "https://www.example.com/a", Username: "u1", CreatedAt: created},
		{StoryID: "s2", Title: "Second", Author: "Bob", URL: "http://news.ycombinator.com/item", Username: "u2", CreatedAt: created},
	}
}

// TestPrintStoriesTable_MarksFavorites verifies the heart and hostname
func TestPrintStoriesTable_MarksFavorites(t *testing.T) {
	var buf bytes.Buffer
	printStoriesTable(&buf, sampleStories(), 0, func(id string) bool { return id == "s2" })

	out := buf.String()
	assert.Contains(t, out, "Showing 1-2")
	assert.Contains(t, out, "  First (example.com)")
	assert.Contains(t, out, "♥ Second (news.ycombinator.com)")
	assert.Contains(t, out, "by Ann | posted by u1 | 2024-01-15 10:30")
}

// TestPrintStoriesTable_Empty verifies the empty message
func TestPrintStoriesTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	printStoriesTable(&buf, nil, 0, nil)
	assert.Equal(t, "No stories to display.\n", buf.String())
}

// TestPrintStoriesCompact_ShortID verifies IDs are truncated
func TestPrintStoriesCompact_ShortID(t *testing.T) {
	var buf bytes.Buffer
	printStoriesCompact(&buf, sampleStories(), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "abcdef12   First (example.com)", lines[0])
}

// TestPrintStoriesCompact_LongTitle verifies long headlines are cut on
// character boundaries
func TestPrintStoriesCompact_LongTitle(t *testing.T) {
	list := []stories.Story{{StoryID: "s1", Title: strings.Repeat("é", 80), URL: "https://example.com/"}}

	var buf bytes.Buffer
	printStoriesCompact(&buf, list, nil)

	out := strings.TrimSuffix(buf.String(), "\n")
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "s1   "+strings.Repeat("é", 67)+"...", out)
}

// TestTruncate verifies truncation counts characters, not bytes
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "éééé...", truncate(strings.Repeat("é", 20), 7))
	assert.Equal(t, 7, utf8.RuneCountInString(truncate(strings.Repeat("é", 20), 7)))
}

// TestPrintStoriesJSON verifies the JSON envelope
func TestPrintStoriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStoriesJSON(&buf, sampleStories(), 25))

	var out struct {
		Stories []stories.Story `json:"stories"`
		Offset  int             `json:"offset"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 25, out.Offset)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "abcdef123456", out.Stories[0].StoryID)
}

// TestPrintStories_InvalidFormat verifies unknown formats are rejected
func TestPrintStories_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	err := printStories(&buf, "xml", sampleStories(), 0, nil)
	assert.Error(t, err)
}

// TestWrapText verifies wrapping at word boundaries
func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "", wrapText("", 10))
}

// TestFilter verifies the favorites filter
func TestFilter(t *testing.T) {
	got := filter(sampleStories(), func(id string) bool { return id == "s2" })
	assert.Equal(t, []string{"s2"}, stories.IDs(got))
}
