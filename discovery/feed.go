// Package discovery finds stories to post: entries of RSS/Atom feeds, page
// titles for bare links, and links embedded in free text.
package discovery

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pevans/snooze/stories"
)

// FetchFeed fetches and parses an RSS or Atom feed from the given URL. The
// format is detected automatically.
func FetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	feed, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// ParseFeed parses an RSS or Atom document from r.
func ParseFeed(r io.Reader) (*gofeed.Feed, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// FeedItemToDraft converts a feed entry to a story draft. The author is the
// first of: the item's author, its other authors, its Dublin Core creator,
// the feed title.
func FeedItemToDraft(item *gofeed.Item, feedTitle string) stories.Draft {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "(No title)"
	}

	return stories.Draft{
		Title:  title,
		Author: itemAuthor(item, feedTitle),
		URL:    strings.TrimSpace(item.Link),
	}
}

func itemAuthor(item *gofeed.Item, feedTitle string) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			return author.Name
		}
	}
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if creator != "" {
				return creator
			}
		}
	}
	if feedTitle != "" {
		return feedTitle
	}
	return "(Unknown)"
}

// FeedToDrafts converts up to limit feed entries to drafts, skipping entries
// without a link. A limit of zero or less converts every entry.
func FeedToDrafts(feed *gofeed.Feed, limit int) []stories.Draft {
	drafts := make([]stories.Draft, 0, len(feed.Items))
	for _, item := range feed.Items {
		if limit > 0 && len(drafts) == limit {
			break
		}
		if strings.TrimSpace(item.Link) == "" {
			continue
		}
		drafts = append(drafts, FeedItemToDraft(item, feed.Title))
	}
	return drafts
}
