package stories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrFetchInProgress is returned by Pager.Next when the page for the current
// offset is already being fetched (or was just fetched) by another caller.
var ErrFetchInProgress = errors.New("page fetch already in progress")

// Page is one page of stories fetched by a Pager.
type Page struct {
	Offset  int
	Stories []Story
}

// Pager walks the feed one page at a time for infinite scrolling. Each offset
// is requested at most once per successful fetch, and the offset only ever
// increases.
type Pager struct {
	src      Source
	pageSize int
	group    singleflight.Group

	mu        sync.Mutex
	next      int
	exhausted bool
}

// NewPager creates a pager whose first Next call fetches the page at start.
func NewPager(src Source, start, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		src:      src,
		pageSize: pageSize,
		next:     start,
	}
}

// Next fetches the page at the current offset and advances the offset on
// success. Callers that join a fetch started by someone else get
// ErrFetchInProgress and should not render anything. Once the feed is
// exhausted Next returns an empty page without a request.
func (p *Pager) Next(ctx context.Context) (Page, error) {
	p.mu.Lock()
	offset, exhausted := p.next, p.exhausted
	p.mu.Unlock()

	if exhausted {
		return Page{Offset: offset}, nil
	}

	leader := false
	v, err, _ := p.group.Do(strconv.Itoa(offset), func() (any, error) {
		leader = true

		p.mu.Lock()
		stale := p.next != offset
		p.mu.Unlock()
		if stale {
			return nil, ErrFetchInProgress
		}

		page, err := p.src.FetchStories(ctx, offset, p.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page at offset %d: %w", offset, err)
		}

		p.mu.Lock()
		p.next = offset + p.pageSize
		if len(page) < p.pageSize {
			p.exhausted = true
		}
		p.mu.Unlock()

		return page, nil
	})
	if err != nil {
		return Page{}, err
	}
	if !leader {
		return Page{}, ErrFetchInProgress
	}

	page, _ := v.([]Story)
	return Page{Offset: offset, Stories: page}, nil
}

// Offset returns the offset the next fetch will request.
func (p *Pager) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next
}

// Exhausted reports whether the last page fetched was short.
func (p *Pager) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}
