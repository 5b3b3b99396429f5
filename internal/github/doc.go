// Package github provides a minimal client for the GitHub REST API user endpoints.
//
// # Overview
//
// ghscout only reads public data, so the client covers three endpoints:
//
//   - GET /search/users: paginated users search (q, page, per_page)
//   - GET /users/{login}: full public profile for one user
//   - GET /rate_limit: remaining request budget (free, not counted)
//
// Responses are decoded into UserPage, UserDetail and RateLimits.
//
// # Client Usage
//
//	client, err := github.NewClient("", github.WithToken(os.Getenv("GITHUB_TOKEN")))
//	if err != nil {
//		log.Fatalf("init github client: %v", err)
//	}
//
//	page, err := client.SearchUsers(ctx, github.UserQuery{Q: "octocat", Page: 1, PerPage: 10})
//	if err != nil {
//		log.Printf("search failed: %v", err)
//	}
//
// # Base URL
//
// NewClient accepts an empty string (https://api.github.com), a bare host, or a
// full URL. A path prefix is preserved so GitHub Enterprise roots such as
// https://ghe.example.com/api/v3 work unchanged.
//
// # Error Handling
//
// Failures fall into three groups:
//
//   - *NetworkError: the request never produced a response (connection refused,
//     DNS failure, timeout). Example: "execute request GET /search/users: dial tcp ..."
//   - *APIError: the API answered with a non-2xx status. StatusCode, GitHub's
//     message and the X-RateLimit-Remaining header are preserved.
//     Example: "api /users/ghost returned status 404: Not Found"
//   - Decode errors: "decode response: ..."
//
// IsNetwork, IsNotFound, IsRateLimited and StatusCode classify an error without
// callers needing type assertions.
//
// # Authentication
//
// Requests are unauthenticated unless WithToken supplies a token. Authenticated
// callers get a larger search budget (30 req/min instead of 10).
//
// # Design Rationale
//
// The client is intentionally thin: no caching, no retries and no pagination
// loop. Retry policy and stale-response handling belong to the search controller.
package github
