package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pevans/snooze/app"
	"github.com/pevans/snooze/discovery"
	"github.com/pevans/snooze/stories"
)

func handleSubmit(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	title := fs.String("title", "", "Story title (looked up from the page if omitted)")
	author := fs.String("author", "", "Story author (default: your name)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.LoggedIn() {
		return failed(app.ErrNotLoggedIn, "submit story")
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		return usageError("URL is required", "snooze submit [-title T] [-author A] <url or text containing a url>")
	}

	url, err := discovery.ExtractURL(text)
	if err != nil {
		return failed(err, "find a URL")
	}

	if *title == "" {
		found, err := discovery.LookupTitle(ctx, url)
		if err != nil {
			return fmt.Errorf("failed to look up title (pass -title): %w", err)
		}
		*title = found
	}
	if *author == "" {
		*author = a.CurrentUser().Name
	}

	story, err := a.Submit(ctx, stories.Draft{Title: *title, Author: *author, URL: url})
	if err != nil {
		return failed(err, "submit story")
	}

	fmt.Printf("✓ Submitted story: %s\n", story.StoryID)
	fmt.Printf("  Title: %s\n", story.Title)
	fmt.Printf("  Author: %s\n", story.Author)
	fmt.Printf("  URL: %s\n", story.URL)
	return nil
}

func handleFavorite(ctx context.Context, a *app.App, args []string) error {
	storyID, err := requireArg(args, "story ID", "snooze favorite <story-id>")
	if err != nil {
		return err
	}
	if err := a.AddFavorite(ctx, storyID); err != nil {
		return failed(err, "add favorite")
	}
	fmt.Printf("♥ Favorited %s\n", storyID)
	return nil
}

func handleUnfavorite(ctx context.Context, a *app.App, args []string) error {
	storyID, err := requireArg(args, "story ID", "snooze unfavorite <story-id>")
	if err != nil {
		return err
	}
	if err := a.RemoveFavorite(ctx, storyID); err != nil {
		return failed(err, "remove favorite")
	}
	fmt.Printf("✓ Unfavorited %s\n", storyID)
	return nil
}

func handleDelete(ctx context.Context, a *app.App, args []string) error {
	storyID, err := requireArg(args, "story ID", "snooze delete <story-id>")
	if err != nil {
		return err
	}
	if err := a.DeleteStory(ctx, storyID); err != nil {
		return failed(err, "delete story")
	}
	fmt.Printf("✓ Deleted story: %s\n", storyID)
	return nil
}

func handleImport(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	maxEntries := fs.Int("max", 5, "Maximum number of entries to post (0 for all)")
	dryRun := fs.Bool("dry-run", false, "List the entries without posting them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	feedURL, err := requireArg(fs.Args(), "feed URL", "snooze import [-max N] [-dry-run] <feed-url>")
	if err != nil {
		return err
	}
	if !*dryRun && !a.LoggedIn() {
		return failed(app.ErrNotLoggedIn, "import feed")
	}

	feed, err := discovery.FetchFeed(ctx, feedURL)
	if err != nil {
		return failed(err, "fetch feed")
	}

	drafts := discovery.FeedToDrafts(feed, *maxEntries)
	if len(drafts) == 0 {
		fmt.Println("No entries to import.")
		return nil
	}

	posted, skipped := 0, 0
	for _, draft := range drafts {
		if *dryRun {
			fmt.Printf("  %s (%s)\n", draft.Title, draft.URL)
			continue
		}

		story, err := a.Submit(ctx, draft)
		if err != nil && app.Recoverable(err) {
			skipped++
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", wrapText(draft.Title+": "+describe(err), 76))
			continue
		}
		if err != nil {
			return failed(err, "import feed")
		}

		posted++
		fmt.Printf("  ✓ %s\n", story.Title)
	}

	if !*dryRun {
		fmt.Printf("\nImported %d of %d entries from %s", posted, len(drafts), feed.Title)
		if skipped > 0 {
			fmt.Printf(" (%d failed)", skipped)
		}
		fmt.Println()
	}
	return nil
}
