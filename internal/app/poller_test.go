package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/hnstories/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 100; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongIntervalUnchanged(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

type countingRefresher struct {
	mu        sync.Mutex
	calls     int
	lifecycle state.Lifecycle
}

func (c *countingRefresher) Refresh(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return true
}

func (c *countingRefresher) Snapshot() state.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return state.State{Lifecycle: c.lifecycle}
}

func (c *countingRefresher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	r := &countingRefresher{lifecycle: state.Success}
	ctx, cancel := context.WithCancel(context.Background())

	StartPoller(ctx, r, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for r.count() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d refreshes, want at least 3", r.count())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := r.count()
	time.Sleep(30 * time.Millisecond)
	if r.count() != settled {
		t.Fatalf("poller kept refreshing after cancel: %d -> %d", settled, r.count())
	}
}

func TestStartPoller_SkipsWhileLoading(t *testing.T) {
	r := &countingRefresher{lifecycle: state.Loading}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPoller(ctx, r, time.Millisecond, nil)
	time.Sleep(30 * time.Millisecond)
	if r.count() != 0 {
		t.Fatalf("poller refreshed %d times while loading, want 0", r.count())
	}
}

func TestStartPoller_ZeroIntervalDisabled(t *testing.T) {
	r := &countingRefresher{}
	StartPoller(context.Background(), r, 0, nil)
	time.Sleep(10 * time.Millisecond)
	if r.count() != 0 {
		t.Fatalf("disabled poller refreshed %d times", r.count())
	}
}
