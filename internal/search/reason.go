package search

import (
	"context"
	"errors"
	"net/http"

	"github.com/five82/ghscout/internal/github"
)

// ErrEmptyQuery is returned by non-interactive callers given a blank query.
// Interactively a blank query is the idle state, not an error.
var ErrEmptyQuery = errors.New("search query is empty")

const (
	listFallback   = "Error fetching users. Please try again."
	detailFallback = "Error fetching user details. Please try again."
)

// Reason maps a list fetch error to the text shown in place of results.
func Reason(err error) string {
	return reason(err, listFallback)
}

// DetailReason maps a detail fetch error to the text shown in the detail panel.
func DetailReason(err error) string {
	return reason(err, detailFallback)
}

func reason(err error, fallback string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Enter a search term."
	case github.IsRateLimited(err):
		return "GitHub rate limit reached. Wait a minute or set GITHUB_TOKEN."
	case errors.Is(err, context.DeadlineExceeded):
		return "GitHub did not respond in time. Please try again."
	case github.IsNotFound(err):
		return "User not found."
	case github.StatusCode(err) == http.StatusUnprocessableEntity:
		return "GitHub rejected the query. Check its qualifiers."
	case github.IsNetwork(err):
		return "Could not reach GitHub. Check your connection."
	default:
		return fallback
	}
}
