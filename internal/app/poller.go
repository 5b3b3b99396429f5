package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/ghscout/internal/github"
	"github.com/five82/ghscout/internal/state"
)

const (
	defaultPollInterval = time.Minute
	maxBackoff          = 15 * time.Minute
)

// rateLimitSource is the part of the GitHub client the poller needs.
type rateLimitSource interface {
	FetchRateLimit(ctx context.Context) (github.RateLimits, error)
	Authenticated() bool
}

// StartPoller launches a background goroutine that refreshes the rate limit
// shown in the header. Consecutive failures back off exponentially. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client rateLimitSource, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client)
			failures := store.Snapshot().Rate.ConsecutiveFailures
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

func refresh(ctx context.Context, store *state.Store, client rateLimitSource) {
	limits, err := client.FetchRateLimit(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		store.UpdateRateLimit(nil, client.Authenticated(), err)
		log.Printf("rate limit poll failed: %v", err)
		return
	}
	store.UpdateRateLimit(&limits, client.Authenticated(), nil)
}
