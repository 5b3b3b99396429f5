package state

import (
	"strings"
	"time"

	"github.com/five82/ghscout/internal/github"
)

// Detail tracks the selected user. It shares nothing with Search: the login may
// refer to a user that is not in the current result page.
type Detail struct {
	Login     string
	User      github.UserDetail
	Status    Status
	Reason    string
	LastError error
}

// Selected reports whether a user is selected.
func (d Detail) Selected() bool {
	return d.Login != ""
}

// Begin selects login and marks its profile as loading.
func (d Detail) Begin(login string) Detail {
	return Detail{Login: strings.TrimSpace(login), Status: StatusLoading}
}

// Loaded stores the fetched profile.
func (d Detail) Loaded(user github.UserDetail) Detail {
	d.User = user
	d.Status = StatusLoaded
	d.Reason = ""
	d.LastError = nil
	return d
}

// Failed keeps the selection and records why its profile could not be loaded.
func (d Detail) Failed(reason string, err error) Detail {
	d.User = github.UserDetail{}
	d.Status = StatusFailed
	d.Reason = reason
	d.LastError = err
	return d
}

// Closed clears the selection.
func (d Detail) Closed() Detail {
	return Detail{}
}

// Featured holds the showcase users listed before the first search.
type Featured struct {
	Users  []github.UserSummary
	Status Status
}

// RateLimit records the latest rate limit poll.
type RateLimit struct {
	Limits              github.RateLimits
	HasLimits           bool
	Authenticated       bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (r RateLimit) IsOffline() bool {
	return r.ConsecutiveFailures >= 2
}
