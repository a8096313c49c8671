package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pevans/snooze/app"
	"github.com/pevans/snooze/stories"
)

func handleFeed(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	offset := fs.Int("offset", 0, "Number of stories to skip")
	limit := fs.Int("limit", 0, "Maximum number of stories to display (default: configured page size)")
	format := fs.String("format", "table", "Output format: table, json, compact")
	favoritesOnly := fs.Bool("favorites", false, "Show only stories you favorited")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *offset < 0 {
		return usageError("-offset must not be negative", "snooze feed [-offset N] [-limit N] [-format F] [-favorites]")
	}
	if *favoritesOnly && !a.LoggedIn() {
		return failed(app.ErrNotLoggedIn, "filter favorites")
	}

	var list []stories.Story
	if *offset == 0 && *limit == 0 {
		loaded, err := a.LoadFeed(ctx)
		if err != nil {
			return failed(err, "fetch stories")
		}
		list = loaded
	} else {
		// An explicit window bypasses the app's paging state.
		feed := stories.NewStoryList(*limit)
		if err := feed.Fetch(ctx, a.Source(), *offset); err != nil {
			return failed(err, "fetch stories")
		}
		list = feed.Stories()
	}

	if *favoritesOnly {
		list = filter(list, a.IsFavorite)
	}

	return failed(printStories(os.Stdout, *format, list, *offset, a.IsFavorite), "print stories")
}

func handleBrowse(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	format := fs.String("format", "table", "Output format: table, compact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.LoadFeed(ctx)
	if err != nil {
		return failed(err, "fetch stories")
	}
	shown := 0
	if err := printStories(os.Stdout, *format, list, shown, a.IsFavorite); err != nil {
		return failed(err, "print stories")
	}
	shown += len(list)

	for {
		if a.Exhausted() || len(list) == 0 {
			fmt.Println("-- end of feed --")
			return nil
		}

		fmt.Print("-- Enter for more, q to quit -- ")
		line, err := stdin.ReadString('\n')
		if err != nil || strings.EqualFold(strings.TrimSpace(line), "q") {
			return nil
		}

		more, err := a.LoadMore(ctx)
		if errors.Is(err, stories.ErrFetchInProgress) {
			continue
		}
		if err != nil && app.Recoverable(err) {
			fmt.Fprintf(os.Stderr, "Error: failed to load more stories: %s\n", describe(err))
			continue
		}
		if err != nil {
			return failed(err, "load more stories")
		}

		if len(more) == 0 {
			fmt.Println("-- end of feed --")
			return nil
		}
		if err := printStories(os.Stdout, *format, more, shown, a.IsFavorite); err != nil {
			return failed(err, "print stories")
		}
		shown += len(more)
	}
}

func handleFavorites(ctx context.Context, a *app.App, args []string) error {
	return listUserStories(a, "favorites", args, a.Favorites)
}

func handleMine(ctx context.Context, a *app.App, args []string) error {
	return listUserStories(a, "mine", args, a.OwnStories)
}

func listUserStories(a *app.App, name string, args []string, get func() []stories.Story) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	format := fs.String("format", "table", "Output format: table, json, compact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.LoggedIn() {
		return failed(app.ErrNotLoggedIn, "list stories")
	}

	return failed(printStories(os.Stdout, *format, get(), 0, a.IsFavorite), "print stories")
}

func filter(list []stories.Story, keep func(storyID string) bool) []stories.Story {
	out := make([]stories.Story, 0, len(list))
	for _, s := range list {
		if keep(s.StoryID) {
			out = append(out, s)
		}
	}
	return out
}
