// Package ui implements the interactive ghscout terminal UI with Bubble Tea.
//
// The screen has three fixed rows (status header, key hints, search box) above
// a content area. Before the first search the content area shows the home
// screen: quick categories, recent queries, suggestion groups, and featured
// developers. Once a query is active it shows the result list with a
// pagination bar, and selecting a user opens the profile pane beside it, or
// in its place on narrow terminals.
//
// The model never calls GitHub itself. Key presses go to a Controller, which
// writes into a state.Store; the model waits on the store's change channel and
// re-renders from the latest snapshot.
package ui
