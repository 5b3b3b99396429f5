// Package state holds the search, detail, and rate limit state shared by the
// search controller, the rate limit poller, and the UI.
//
// # Overview
//
// Every piece of state the UI renders lives in a single Snapshot guarded by a
// Store. Writers never edit fields in place. They pass a transition to the store:
//
//	store.UpdateSearch(func(s state.Search) state.Search {
//		return s.Begin("octocat", 1)
//	})
//
// The transitions on Search and Detail (Begin, Loaded, Failed, Cleared, Closed)
// are plain value methods. They carry the rules for what survives a change:
//
//   - A new query drops the old results and total count.
//   - A page change of the same query keeps the total so pagination stays drawn.
//   - A failure clears results but keeps the query and page for retry.
//   - An empty query returns to Idle and hides the "no users found" message.
//
// # Search and Detail
//
// Search and Detail are independent. Selecting a user never changes the result
// list, and a new search never closes an open profile. The detail login does not
// have to appear in the current page.
//
// # Change Notification
//
// Changes returns a channel with a buffer of one. Each update does a
// non-blocking send, so bursts of updates coalesce into a single wake-up. The UI
// waits on the channel, then reads a fresh Snapshot.
//
// # Rate Limit
//
// UpdateRateLimit follows the same rules as a poller update: on error the
// previous limits are kept, LastError is recorded, and ConsecutiveFailures grows.
// IsOffline reports two or more failures in a row.
//
// # Copying
//
// Snapshot clones slices and errors, so callers may keep and modify what they
// receive. The zero Store is usable; NewStore only sets a non-default page size.
package state
