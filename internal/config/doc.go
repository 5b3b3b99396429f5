// Package config loads ghscout settings and discovers the GitHub token.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ghscout/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. Fields that are missing, empty, or non-positive keep their defaults
//
// # TOML Format
//
//	api_url = "https://api.github.com"
//	page_size = 10                 # clamped to 1..100
//	debounce_ms = 500
//	request_timeout_seconds = 10
//	featured_query = "followers:>10000"
//	featured_count = 4
//	use_gh_auth = true
//	rate_limit_poll_seconds = 60   # 0 disables the header indicator
//
//	[[suggestions]]
//	title = "Teams"
//	items = [{ label = "Go", query = "language:go" }]
//
// Suggestion groups, when present, replace the built-in catalog. Entries with
// an empty query are dropped.
//
// # Tokens
//
// Token looks at GITHUB_TOKEN, then GH_TOKEN, then the gh CLI credential store
// for Host(). LoadDotEnv can seed the first two from a .env file; variables
// already present in the environment are never overridden. Without a token
// ghscout runs unauthenticated, where GitHub allows 10 searches per minute.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, and TOML
// parse errors. A missing file is not an error.
package config
