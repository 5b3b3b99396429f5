package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/output"
	"github.com/five82/ghscout/internal/search"
	"github.com/five82/ghscout/internal/state"
)

// maxConcurrentLookups bounds parallel profile requests of `ghscout user`.
const maxConcurrentLookups = 4

// SearchRequest is one page of `ghscout search`.
type SearchRequest struct {
	Query   string
	Page    int
	PerPage int // zero uses the configured page size
	Format  output.Format
}

// RunSearch fetches a single result page and writes it to w.
func RunSearch(ctx context.Context, opts Options, req SearchRequest, w io.Writer) error {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return search.ErrEmptyQuery
	}
	page := max(req.Page, 1)
	if page > state.MaxPages {
		return fmt.Errorf("page %d is out of range: GitHub serves at most %d pages", page, state.MaxPages)
	}

	s, err := load(opts)
	if err != nil {
		return err
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = s.cfg.PageSize
	}
	perPage = min(perPage, github.MaxPerPage)

	result, err := s.client.SearchUsers(ctx, github.UserQuery{Q: query, Page: page, PerPage: perPage})
	if err != nil {
		return describe(search.Reason(err), err)
	}

	return output.WriteSearch(w, req.Format, output.SearchResult{
		Query:             query,
		Page:              page,
		PerPage:           perPage,
		TotalCount:        result.TotalCount,
		TotalPages:        state.TotalPages(result.TotalCount, perPage),
		IncompleteResults: result.IncompleteResults,
		Users:             result.Items,
	})
}

// RunUser fetches the given profiles concurrently and writes them in argument order.
func RunUser(ctx context.Context, opts Options, logins []string, format output.Format, w io.Writer) error {
	var cleaned []string
	for _, l := range logins {
		if l = strings.TrimSpace(l); l != "" {
			cleaned = append(cleaned, l)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("no login given")
	}

	s, err := load(opts)
	if err != nil {
		return err
	}

	users := make([]github.UserDetail, len(cleaned))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, login := range cleaned {
		g.Go(func() error {
			u, err := s.client.FetchUser(gctx, login)
			if err != nil {
				return describe(fmt.Sprintf("%s: %s", login, search.DetailReason(err)), err)
			}
			users[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return output.WriteUsers(w, format, users)
}

// describe prefixes err with the message shown in the UI for the same failure.
func describe(reason string, err error) error {
	return fmt.Errorf("%s (%w)", reason, err)
}
