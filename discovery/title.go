package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

const userAgent = "snooze/1.0 (Hack-or-Snooze client)"

// ErrNoTitle is returned by LookupTitle when the page names no title.
var ErrNoTitle = errors.New("page has no title")

// ErrNoURL is returned by ExtractURL when the text contains no link.
var ErrNoURL = errors.New("no URL found")

var httpClient = &http.Client{Timeout: 10 * time.Second}

// FetchHTML downloads a page and parses it.
func FetchHTML(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// DocumentTitle returns the og:title of doc, or its <title> when there is
// none.
func DocumentTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// LookupTitle fetches url and returns its title.
func LookupTitle(ctx context.Context, url string) (string, error) {
	doc, err := FetchHTML(ctx, url)
	if err != nil {
		return "", err
	}

	title := DocumentTitle(doc)
	if title == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTitle, url)
	}
	return title, nil
}

var strictURL = xurls.Strict()

// ExtractURL returns the first absolute URL in text, so a story can be
// submitted by pasting a sentence that contains a link.
func ExtractURL(text string) (string, error) {
	found := strictURL.FindString(text)
	if found == "" {
		return "", ErrNoURL
	}
	return strings.TrimRight(found, ".,;:!?"), nil
}
