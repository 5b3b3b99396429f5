// Package app wires configuration, the GitHub client, the search controller,
// and the UI together. It is the composition root for every ghscout command.
//
// # Startup
//
// Each command runs the same preamble:
//
//  1. Load ./.env (godotenv) without overriding existing variables
//  2. Read ~/.config/ghscout/config.toml, falling back to defaults
//  3. Resolve a token: GITHUB_TOKEN, GH_TOKEN, then the gh credential store
//  4. Build a github.Client for the configured API URL
//
// RunTUI then creates a state.Store and a search.Controller, starts the rate
// limit poller, and blocks in ui.Run. RunSearch and RunUser call the client
// directly and print through the output package.
//
// # Rate Limit Polling
//
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> FetchRateLimit()                   │
//	│  ├─> store.UpdateRateLimit()            │
//	│  └─> wait interval * 2^failures (≤15m)  │
//	└─────────────────────────────────────────┘
//
// A failed poll keeps the last known limits. Two failures in a row mark the
// header as offline until a poll succeeds.
//
// # Logging
//
// The TUI owns the terminal, so log output is discarded unless --debug is set,
// in which case it goes to a file via tea.LogToFile (see logtail.DefaultPath).
// `ghscout log` prints the end of that file. The CLI commands log to stderr in
// debug mode.
package app
