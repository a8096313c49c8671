package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pevans/snooze/stories"
)

// marker returns the favorite marker for a story.
type marker func(storyID string) bool

// heart returns the favorite marker column for a story.
func heart(s stories.Story, favorite marker) string {
	if favorite != nil && favorite(s.StoryID) {
		return "♥"
	}
	return " "
}

// headline renders a story's title followed by its hostname.
func headline(s stories.Story) string {
	return fmt.Sprintf("%s (%s)", s.Title, s.Hostname())
}

// printStoriesTable prints stories in human-readable format
func printStoriesTable(w io.Writer, list []stories.Story, offset int, favorite marker) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No stories to display.")
		return
	}

	fmt.Fprintf(w, "Showing %d-%d\n\n", offset+1, offset+len(list))

	for _, s := range list {
		fmt.Fprintf(w, "%s %s\n", heart(s, favorite), strings.ReplaceAll(wrapText(headline(s), 76), "\n", "\n  "))
		fmt.Fprintf(w, "   by %s | posted by %s | %s\n",
			s.Author,
			s.Username,
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
		fmt.Fprintf(w, "   URL: %s\n", s.URL)
		fmt.Fprintf(w, "   ID: %s\n", s.StoryID)
		fmt.Fprintln(w)
	}
}

// printStoriesJSON prints stories in JSON format
func printStoriesJSON(w io.Writer, list []stories.Story, offset int) error {
	output := map[string]any{
		"stories": list,
		"offset":  offset,
		"count":   len(list),
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(data))
	return nil
}

// printStoriesCompact prints one line per story
func printStoriesCompact(w io.Writer, list []stories.Story, favorite marker) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No stories to display.")
		return
	}

	for _, s := range list {
		shortID := s.StoryID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s %s %s\n", shortID, heart(s, favorite), truncate(headline(s), 70))
	}
}

// printStories dispatches on the -format flag
func printStories(w io.Writer, format string, list []stories.Story, offset int, favorite marker) error {
	switch format {
	case "table":
		printStoriesTable(w, list, offset, favorite)
	case "json":
		return printStoriesJSON(w, list, offset)
	case "compact":
		printStoriesCompact(w, list, favorite)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or compact)", format)
	}
	return nil
}

// wrapText wraps text to a maximum line width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}

// truncate shortens s to at most n runes, ending it with "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
