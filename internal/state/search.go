package state

import (
	"strings"
	"time"

	"github.com/five82/ghscout/internal/github"
)

// Status is the lifecycle of a single fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	// DefaultPageSize matches the page size of the web UI ghscout replaces.
	DefaultPageSize = 10

	// MaxPages caps browsable depth; the search API stops serving results
	// after the first thousand.
	MaxPages = 100
)

// TotalPages returns min(ceil(totalCount/pageSize), MaxPages). An empty result set has
// zero pages.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	pages := (totalCount + pageSize - 1) / pageSize
	return min(pages, MaxPages)
}

// Search is the list half of the UI state. Values are replaced through the
// transition methods below; callers never edit fields in place.
type Search struct {
	Raw        string // input as typed, before debouncing
	Query      string // committed query; empty means no search is active
	Page       int
	PageSize   int
	Results    []github.UserSummary
	TotalCount int
	Status     Status
	Reason     string // user-facing text for StatusFailed
	LastError  error
	Searched   bool
	UpdatedAt  time.Time
}

// NewSearch returns the empty state created at startup.
func NewSearch(pageSize int) Search {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Search{Page: 1, PageSize: pageSize}
}

// Active reports whether a committed query exists.
func (s Search) Active() bool {
	return s.Query != ""
}

// TotalPages derives the page count from TotalCount.
func (s Search) TotalPages() int {
	return TotalPages(s.TotalCount, s.PageSize)
}

// Empty reports a finished search that matched nobody.
func (s Search) Empty() bool {
	return s.Status == StatusLoaded && len(s.Results) == 0
}

// WithRaw records the latest keystrokes without touching the committed search.
func (s Search) WithRaw(raw string) Search {
	s.Raw = raw
	return s
}

// Begin moves to Loading for query at page. A different query drops the previous
// results; a page change of the same query keeps TotalCount so pagination stays
// visible while the next page loads.
func (s Search) Begin(query string, page int) Search {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	if query != s.Query {
		s.Results = nil
		s.TotalCount = 0
	}
	s.Query = query
	s.Page = page
	s.Status = StatusLoading
	s.Reason = ""
	s.LastError = nil
	return s
}

// Loaded applies a successful response.
func (s Search) Loaded(page github.UserPage) Search {
	s.Results = cloneUsers(page.Items)
	s.TotalCount = max(page.TotalCount, 0)
	s.Status = StatusLoaded
	s.Reason = ""
	s.LastError = nil
	s.Searched = true
	s.UpdatedAt = time.Now()
	if limit := max(s.TotalPages(), 1); s.Page > limit {
		s.Page = limit
	}
	return s
}

// Failed records a failed fetch. Results are cleared; query and page are kept so
// the same request can be retried.
func (s Search) Failed(reason string, err error) Search {
	s.Results = nil
	s.TotalCount = 0
	s.Status = StatusFailed
	s.Reason = reason
	s.LastError = err
	s.Searched = true
	s.UpdatedAt = time.Now()
	return s
}

// Cleared returns to the Idle state used for an empty query. Raw input is kept.
func (s Search) Cleared() Search {
	return Search{
		Raw:       s.Raw,
		Page:      1,
		PageSize:  s.PageSize,
		Status:    StatusIdle,
		UpdatedAt: time.Now(),
	}
}

func (s Search) clone() Search {
	s.Results = cloneUsers(s.Results)
	s.LastError = cloneErr(s.LastError)
	return s
}

func cloneUsers(items []github.UserSummary) []github.UserSummary {
	if len(items) == 0 {
		return nil
	}
	dup := make([]github.UserSummary, len(items))
	copy(dup, items)
	return dup
}
