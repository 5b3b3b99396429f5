package github

import (
	"strings"
	"time"
)

// UserSummary is one entry of a users search result.
type UserSummary struct {
	ID        int64   `json:"id" yaml:"id"`
	Login     string  `json:"login" yaml:"login"`
	AvatarURL string  `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL   string  `json:"html_url" yaml:"html_url"`
	Type      string  `json:"type,omitempty" yaml:"type,omitempty"`
	Score     float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// UserPage mirrors the payload returned by /search/users.
type UserPage struct {
	TotalCount        int           `json:"total_count" yaml:"total_count"`
	IncompleteResults bool          `json:"incomplete_results" yaml:"incomplete_results"`
	Items             []UserSummary `json:"items" yaml:"items"`
}

// UserDetail mirrors the payload returned by /users/{login}.
type UserDetail struct {
	ID          int64     `json:"id" yaml:"id"`
	Login       string    `json:"login" yaml:"login"`
	Name        string    `json:"name" yaml:"name,omitempty"`
	AvatarURL   string    `json:"avatar_url" yaml:"avatar_url"`
	HTMLURL     string    `json:"html_url" yaml:"html_url"`
	Bio         string    `json:"bio" yaml:"bio,omitempty"`
	Location    string    `json:"location" yaml:"location,omitempty"`
	Company     string    `json:"company" yaml:"company,omitempty"`
	Blog        string    `json:"blog" yaml:"blog,omitempty"`
	Followers   int       `json:"followers" yaml:"followers"`
	Following   int       `json:"following" yaml:"following"`
	PublicRepos int       `json:"public_repos" yaml:"public_repos"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Summary projects the detail down to the fields a search result carries.
func (u UserDetail) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Login:     u.Login,
		AvatarURL: u.AvatarURL,
		HTMLURL:   u.HTMLURL,
	}
}

// DisplayName prefers the profile name and falls back to the login.
func (u UserDetail) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Login
}

// RateLimit is the budget of a single GitHub rate limit bucket.
type RateLimit struct {
	Limit     int       `json:"limit" yaml:"limit"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	Reset     time.Time `json:"reset" yaml:"reset"`
}

// Exhausted reports whether no requests remain in the current window.
func (r RateLimit) Exhausted() bool {
	return r.Limit > 0 && r.Remaining <= 0
}

// RateLimits groups the buckets ghscout consumes.
type RateLimits struct {
	Search RateLimit
	Core   RateLimit
}

type rateLimitResponse struct {
	Resources struct {
		Core   rateBucket `json:"core"`
		Search rateBucket `json:"search"`
	} `json:"resources"`
}

type rateBucket struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

func (b rateBucket) toRateLimit() RateLimit {
	r := RateLimit{Limit: b.Limit, Remaining: b.Remaining}
	if b.Reset > 0 {
		r.Reset = time.Unix(b.Reset, 0)
	}
	return r
}
