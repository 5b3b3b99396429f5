package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/ghscout/internal/github"
)

func users(logins ...string) []github.UserSummary {
	out := make([]github.UserSummary, 0, len(logins))
	for i, login := range logins {
		out = append(out, github.UserSummary{ID: int64(i + 1), Login: login})
	}
	return out
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{42, 10, 5},
		{5000, 10, MaxPages},
		{1000, 10, 100},
		{7, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.size), "TotalPages(%d, %d)", tc.total, tc.size)
	}
}

func TestNewSearchDefaults(t *testing.T) {
	s := NewSearch(0)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Equal(t, StatusIdle, s.Status)
	assert.False(t, s.Active())
	assert.False(t, s.Searched)
}

func TestSearchBeginNewQueryDropsResults(t *testing.T) {
	s := NewSearch(10).Begin("octo", 1).Loaded(github.UserPage{TotalCount: 42, Items: users("a", "b")})
	require.Equal(t, 5, s.TotalPages())

	s = s.Begin("  torvalds  ", 3)
	assert.Equal(t, "torvalds", s.Query)
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, StatusLoading, s.Status)
	assert.Empty(t, s.Results)
	assert.Zero(t, s.TotalCount)
}

func TestSearchBeginSamePageChangeKeepsTotal(t *testing.T) {
	s := NewSearch(10).Begin("octo", 1).Loaded(github.UserPage{TotalCount: 42, Items: users("a")})

	s = s.Begin("octo", 2)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, 42, s.TotalCount)
	assert.Len(t, s.Results, 1)
	assert.Equal(t, StatusLoading, s.Status)
}

func TestSearchLoadedClampsPage(t *testing.T) {
	s := NewSearch(10).Begin("octo", 7).Loaded(github.UserPage{TotalCount: 15, Items: users("a")})
	assert.Equal(t, 2, s.Page)

	s = s.Begin("nobody", 4).Loaded(github.UserPage{})
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.Empty())
	assert.True(t, s.Searched)
	assert.Zero(t, s.TotalPages())
}

func TestSearchFailedClearsResultsKeepsQuery(t *testing.T) {
	s := NewSearch(10).Begin("octo", 1).Loaded(github.UserPage{TotalCount: 3, Items: users("a", "b", "c")})
	s = s.Begin("octo", 1)

	cause := errors.New("boom")
	s = s.Failed("Error fetching users. Please try again.", cause)
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "octo", s.Query)
	assert.Empty(t, s.Results)
	assert.Zero(t, s.TotalCount)
	assert.ErrorIs(t, s.LastError, cause)
	assert.False(t, s.Empty())
}

func TestSearchClearedKeepsRaw(t *testing.T) {
	s := NewSearch(25).WithRaw("oct").Begin("oct", 1).Loaded(github.UserPage{TotalCount: 1, Items: users("a")})
	s = s.WithRaw("").Cleared()
	assert.Equal(t, StatusIdle, s.Status)
	assert.False(t, s.Active())
	assert.Empty(t, s.Results)
	assert.Equal(t, 25, s.PageSize)
	assert.Equal(t, 1, s.Page)
}

func TestDetailTransitions(t *testing.T) {
	var d Detail
	assert.False(t, d.Selected())

	d = d.Begin("octocat")
	assert.True(t, d.Selected())
	assert.Equal(t, StatusLoading, d.Status)

	d = d.Loaded(github.UserDetail{Login: "octocat", Followers: 10})
	assert.Equal(t, StatusLoaded, d.Status)
	assert.Equal(t, 10, d.User.Followers)

	d = d.Failed("Could not load profile.", errors.New("404"))
	assert.Equal(t, "octocat", d.Login)
	assert.Equal(t, StatusFailed, d.Status)
	assert.Empty(t, d.User.Login)

	d = d.Closed()
	assert.False(t, d.Selected())
}

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	assert.Equal(t, DefaultPageSize, snap.Search.PageSize)
	assert.Equal(t, 1, snap.Search.Page)

	s.UpdateSearch(func(cur Search) Search { return cur.Begin("octo", 1) })
	snap = s.Snapshot()
	assert.Equal(t, DefaultPageSize, snap.Search.PageSize)
	assert.Equal(t, uint64(1), snap.Version)
}

func TestStore_SnapshotIsIndependent(t *testing.T) {
	s := NewStore(10)
	s.UpdateSearch(func(cur Search) Search {
		return cur.Begin("octo", 1).Loaded(github.UserPage{TotalCount: 2, Items: users("a", "b")})
	})
	s.SetFeatured(Featured{Users: users("x"), Status: StatusLoaded})

	snap := s.Snapshot()
	snap.Search.Results[0].Login = "mutated"
	snap.Featured.Users[0].Login = "mutated"

	again := s.Snapshot()
	assert.Equal(t, "a", again.Search.Results[0].Login)
	assert.Equal(t, "x", again.Featured.Users[0].Login)
}

func TestStore_DetailIndependentOfSearch(t *testing.T) {
	s := NewStore(10)
	s.UpdateSearch(func(cur Search) Search {
		return cur.Begin("octo", 1).Loaded(github.UserPage{TotalCount: 1, Items: users("a")})
	})
	s.UpdateDetail(func(d Detail) Detail { return d.Begin("someone-else") })
	s.UpdateSearch(func(cur Search) Search { return cur.Begin("new", 1) })

	snap := s.Snapshot()
	assert.Equal(t, "someone-else", snap.Detail.Login)
	assert.Equal(t, "new", snap.Search.Query)
}

func TestStore_ChangesCoalesce(t *testing.T) {
	s := NewStore(10)
	ch := s.Changes()

	s.UpdateSearch(func(cur Search) Search { return cur.WithRaw("a") })
	s.UpdateSearch(func(cur Search) Search { return cur.WithRaw("ab") })
	s.UpdateSearch(func(cur Search) Search { return cur.WithRaw("abc") })

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
	select {
	case <-ch:
		t.Fatal("notifications should coalesce into one")
	default:
	}
	assert.Equal(t, "abc", s.Snapshot().Search.Raw)
}

func TestStore_UpdateRateLimitErrorKeepsPreviousData(t *testing.T) {
	s := NewStore(10)
	limits := &github.RateLimits{Search: github.RateLimit{Limit: 10, Remaining: 9}}

	before := time.Now()
	s.UpdateRateLimit(limits, false, nil)
	snap := s.Snapshot()
	require.True(t, snap.Rate.HasLimits)
	assert.Equal(t, 9, snap.Rate.Limits.Search.Remaining)
	assert.False(t, snap.Rate.LastUpdated.Before(before))
	assert.False(t, snap.Rate.IsOffline())

	origErr := errors.New("boom")
	s.UpdateRateLimit(nil, false, origErr)
	s.UpdateRateLimit(nil, false, origErr)
	snap = s.Snapshot()
	assert.Equal(t, 9, snap.Rate.Limits.Search.Remaining)
	assert.Equal(t, 2, snap.Rate.ConsecutiveFailures)
	assert.True(t, snap.Rate.IsOffline())
	require.Error(t, snap.Rate.LastError)
	assert.ErrorIs(t, snap.Rate.LastError, origErr)
	assert.NotSame(t, origErr, snap.Rate.LastError)

	s.UpdateRateLimit(limits, true, nil)
	snap = s.Snapshot()
	assert.Zero(t, snap.Rate.ConsecutiveFailures)
	assert.NoError(t, snap.Rate.LastError)
	assert.True(t, snap.Rate.Authenticated)
}
