package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops detail.
	LayoutCompactWidth = 100

	// LayoutSplitWidth is the minimum width to show results and profile side by side.
	// Narrower terminals show the profile in place of the results.
	LayoutSplitWidth = 90

	// LayoutExtraWideWidth is the threshold for a narrower results pane.
	LayoutExtraWideWidth = 160
)

// Fixed rows above the content area: header, command bar, search box.
const chromeHeight = 3

// Home screen limits.
const (
	// HomeRecentLimit is how many recent queries the home screen lists.
	HomeRecentLimit = 5
)

// FlashDuration is how long action feedback stays in the command bar.
const FlashDuration = 3 * time.Second
