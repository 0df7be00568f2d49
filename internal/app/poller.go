package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/hnstories/internal/state"
)

const maxBackoff = 30 * time.Second

type refresher interface {
	Refresh(ctx context.Context) bool
	Snapshot() state.State
}

// StartPoller launches a background goroutine that refreshes the stories at a
// fixed cadence, backing off while fetches keep failing. It returns
// immediately. A non-positive interval disables polling.
func StartPoller(ctx context.Context, r refresher, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 || r == nil {
		return
	}
	go func() {
		failures := 0
		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if r.Snapshot().Lifecycle == state.Loading {
				continue
			}
			r.Refresh(ctx)

			snap := r.Snapshot()
			if snap.Lifecycle == state.Failure {
				failures++
				if log != nil {
					log.WithField("failures", failures).Debug("auto refresh failed, backing off")
				}
				continue
			}
			failures = 0
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. Intervals already above the cap are returned unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
