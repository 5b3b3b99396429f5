package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/state"
)

const (
	// DefaultFeaturedQuery lists well-known developers before the first search.
	DefaultFeaturedQuery = "followers:>10000"
	// DefaultFeaturedCount is how many featured users are requested.
	DefaultFeaturedCount = 4
)

// Options configures a Controller.
type Options struct {
	PageSize      int
	Debounce      time.Duration
	Timeout       time.Duration // per request; 0 leaves it to the client
	FeaturedQuery string
	FeaturedCount int
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = state.DefaultPageSize
	}
	o.PageSize = min(o.PageSize, github.MaxPerPage)
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if strings.TrimSpace(o.FeaturedQuery) == "" {
		o.FeaturedQuery = DefaultFeaturedQuery
	}
	if o.FeaturedCount <= 0 {
		o.FeaturedCount = DefaultFeaturedCount
	}
	return o
}

// Controller owns the search lifecycle. It is the only writer of the search,
// detail, and featured parts of the store.
//
// Fetches run on their own goroutines and are never aborted when superseded.
// Each one carries a sequence number instead, and its response is applied only
// while that number is still the latest one issued.
type Controller struct {
	fetcher   github.UserFetcher
	store     *state.Store
	opts      Options
	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	listSeq     uint64
	detailSeq   uint64
	featuredSeq uint64
	closed      bool
}

// New returns a Controller writing into store. Fetches stop when ctx is
// cancelled or Close is called.
func New(ctx context.Context, fetcher github.UserFetcher, store *state.Store, opts Options) *Controller {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		fetcher: fetcher,
		store:   store,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
	c.debouncer = NewDebouncer(opts.Debounce, c.commit)
	return c
}

// SetQuery shows raw immediately and commits it once typing pauses.
func (c *Controller) SetQuery(raw string) {
	c.store.UpdateSearch(func(s state.Search) state.Search { return s.WithRaw(raw) })
	c.debouncer.Trigger(raw)
}

// SearchNow sets raw and commits it without waiting for the debounce delay.
func (c *Controller) SearchNow(raw string) {
	c.SetQuery(raw)
	c.debouncer.Flush()
}

// commit runs when the debouncer settles. A blank query returns to idle
// without a request and invalidates any list response still in flight.
func (c *Controller) commit(raw string) {
	query := strings.TrimSpace(raw)
	if query == "" {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		c.listSeq++
		c.store.UpdateSearch(func(s state.Search) state.Search { return s.Cleared() })
		return
	}
	c.fetchList(query, 1)
}

// SetPage loads page n of the active query. Requests outside 1..totalPages,
// for the current page, or without an active query are ignored.
func (c *Controller) SetPage(n int) {
	snap := c.store.Snapshot().Search
	if !snap.Active() || n < 1 || n > snap.TotalPages() || n == snap.Page {
		return
	}
	c.fetchList(snap.Query, n)
}

// NextPage moves one page forward when possible.
func (c *Controller) NextPage() {
	s := c.store.Snapshot().Search
	c.SetPage(s.Page + 1)
}

// PrevPage moves one page back when possible.
func (c *Controller) PrevPage() {
	s := c.store.Snapshot().Search
	c.SetPage(s.Page - 1)
}

// Retry reissues the current list request.
func (c *Controller) Retry() {
	s := c.store.Snapshot().Search
	if !s.Active() {
		return
	}
	c.fetchList(s.Query, s.Page)
}

func (c *Controller) fetchList(query string, page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.listSeq++
	seq := c.listSeq
	c.store.UpdateSearch(func(s state.Search) state.Search { return s.Begin(query, page) })
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		ctx, cancel := c.requestContext()
		defer cancel()

		result, err := c.fetcher.SearchUsers(ctx, github.UserQuery{Q: query, Page: page, PerPage: c.opts.PageSize})

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || seq != c.listSeq {
			log.Printf("discarding stale search response %q page %d", query, page)
			return
		}
		if err != nil {
			log.Printf("search %q page %d failed: %v", query, page, err)
			c.store.UpdateSearch(func(s state.Search) state.Search { return s.Failed(Reason(err), err) })
			return
		}
		c.store.UpdateSearch(func(s state.Search) state.Search { return s.Loaded(result) })
	}()
}

// SelectUser loads the profile for login. Selecting the same login again
// fetches it again.
func (c *Controller) SelectUser(login string) {
	login = strings.TrimSpace(login)
	if login == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.detailSeq++
	seq := c.detailSeq
	c.store.UpdateDetail(func(d state.Detail) state.Detail { return d.Begin(login) })
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		ctx, cancel := c.requestContext()
		defer cancel()

		user, err := c.fetcher.FetchUser(ctx, login)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || seq != c.detailSeq {
			return
		}
		if err != nil {
			log.Printf("fetch user %s failed: %v", login, err)
			c.store.UpdateDetail(func(d state.Detail) state.Detail { return d.Failed(DetailReason(err), err) })
			return
		}
		c.store.UpdateDetail(func(d state.Detail) state.Detail { return d.Loaded(user) })
	}()
}

// RetryDetail refetches the selected profile.
func (c *Controller) RetryDetail() {
	if d := c.store.Snapshot().Detail; d.Selected() {
		c.SelectUser(d.Login)
	}
}

// CloseDetails clears the selection. A profile still loading is discarded.
func (c *Controller) CloseDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailSeq++
	c.store.UpdateDetail(func(d state.Detail) state.Detail { return d.Closed() })
}

// LoadFeatured fetches the featured users. Failures leave the list empty.
func (c *Controller) LoadFeatured() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.featuredSeq++
	seq := c.featuredSeq
	c.store.SetFeatured(state.Featured{Status: state.StatusLoading})
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		ctx, cancel := c.requestContext()
		defer cancel()

		result, err := c.fetcher.SearchUsers(ctx, github.UserQuery{
			Q:       c.opts.FeaturedQuery,
			Page:    1,
			PerPage: c.opts.FeaturedCount,
		})

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || seq != c.featuredSeq {
			return
		}
		if err != nil {
			log.Printf("featured users unavailable: %v", err)
			c.store.SetFeatured(state.Featured{Status: state.StatusFailed})
			return
		}
		items := result.Items
		if len(items) > c.opts.FeaturedCount {
			items = items[:c.opts.FeaturedCount]
		}
		c.store.SetFeatured(state.Featured{Users: items, Status: state.StatusLoaded})
	}()
}

// Wait blocks until every fetch started so far has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close stops the debouncer, cancels outstanding requests, and waits for them.
func (c *Controller) Close() {
	c.debouncer.Stop()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) requestContext() (context.Context, context.CancelFunc) {
	if c.opts.Timeout > 0 {
		return context.WithTimeout(c.ctx, c.opts.Timeout)
	}
	return context.WithCancel(c.ctx)
}
