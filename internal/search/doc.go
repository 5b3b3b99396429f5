// Package search turns keystrokes into GitHub user searches.
//
// Debouncer waits for input to settle before committing it. Controller owns the
// committed query, the current page, and the selected user, and writes every
// result into a state.Store. Window computes the compressed page list drawn
// under the results.
//
// List, detail, and featured fetches each keep their own sequence counter, so a
// slow response for a superseded request is dropped instead of replacing newer
// results.
package search
