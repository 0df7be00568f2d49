package state

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/hnstories/internal/hn"
)

type searchResult struct {
	stories []hn.Story
	err     error
}

// gatedSearcher blocks each Search until the test releases a result for
// that query. It ignores context cancellation so a superseded request can
// still resolve late.
type gatedSearcher struct {
	mu      sync.Mutex
	started chan string
	release map[string]chan searchResult
	ctxs    map[string]context.Context
}

func newGatedSearcher(queries ...string) *gatedSearcher {
	g := &gatedSearcher{
		started: make(chan string, len(queries)),
		release: make(map[string]chan searchResult),
		ctxs:    make(map[string]context.Context),
	}
	for _, q := range queries {
		g.release[q] = make(chan searchResult, 1)
	}
	return g
}

func (g *gatedSearcher) Search(ctx context.Context, query string) ([]hn.Story, error) {
	g.mu.Lock()
	ch := g.release[query]
	g.ctxs[query] = ctx
	g.mu.Unlock()
	g.started <- query
	res := <-ch
	return res.stories, res.err
}

func (g *gatedSearcher) ctx(query string) context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ctxs[query]
}

type funcSearcher func(ctx context.Context, query string) ([]hn.Story, error)

func (f funcSearcher) Search(ctx context.Context, query string) ([]hn.Story, error) {
	return f(ctx, query)
}

func waitStarted(t *testing.T, g *gatedSearcher, want string) {
	t.Helper()
	select {
	case got := <-g.started:
		if got != want {
			t.Fatalf("started query = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for query %q to start", want)
	}
}

func TestStore_StaleFetchIsDiscarded(t *testing.T) {
	g := newGatedSearcher("a", "b")
	s := NewStore(g, nil)

	doneA := make(chan bool, 1)
	go func() { doneA <- s.Fetch(context.Background(), "a") }()
	waitStarted(t, g, "a")

	doneB := make(chan bool, 1)
	go func() { doneB <- s.Fetch(context.Background(), "b") }()
	waitStarted(t, g, "b")

	if err := g.ctx("a").Err(); !errors.Is(err, context.Canceled) {
		t.Fatalf("superseded request ctx err = %v, want context.Canceled", err)
	}

	bStories := []hn.Story{{ID: "b1", Title: "from b"}}
	g.release["b"] <- searchResult{stories: bStories}
	if applied := <-doneB; !applied {
		t.Fatalf("Fetch(b) applied = false, want true")
	}

	g.release["a"] <- searchResult{stories: []hn.Story{{ID: "a1", Title: "from a"}}}
	if applied := <-doneA; applied {
		t.Fatalf("Fetch(a) applied = true, want stale result discarded")
	}

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Stories, bStories) {
		t.Fatalf("Stories = %#v, want b's result %#v", snap.Stories, bStories)
	}
	if snap.Lifecycle != Success || snap.Query != "b" {
		t.Fatalf("snapshot = %#v, want Success for query b", snap)
	}
}

func TestStore_StaleFailureDoesNotOverwrite(t *testing.T) {
	g := newGatedSearcher("a", "b")
	s := NewStore(g, nil)

	doneA := make(chan bool, 1)
	go func() { doneA <- s.Fetch(context.Background(), "a") }()
	waitStarted(t, g, "a")

	doneB := make(chan bool, 1)
	go func() { doneB <- s.Fetch(context.Background(), "b") }()
	waitStarted(t, g, "b")

	g.release["a"] <- searchResult{err: errors.New("late failure")}
	if applied := <-doneA; applied {
		t.Fatalf("Fetch(a) applied = true, want discarded")
	}
	if snap := s.Snapshot(); snap.Lifecycle != Loading {
		t.Fatalf("Lifecycle = %v, want loading while b is outstanding", snap.Lifecycle)
	}

	g.release["b"] <- searchResult{stories: []hn.Story{{ID: "b1"}}}
	<-doneB
	if snap := s.Snapshot(); snap.Lifecycle != Success || snap.LastError != nil {
		t.Fatalf("snapshot = %#v, want success", snap)
	}
}

func TestStore_FetchFailureKeepsStories(t *testing.T) {
	calls := 0
	s := NewStore(funcSearcher(func(ctx context.Context, query string) ([]hn.Story, error) {
		calls++
		if calls == 1 {
			return []hn.Story{{ID: "1", Title: "kept"}}, nil
		}
		return nil, errors.New("timeout")
	}), nil)

	if !s.Fetch(context.Background(), "go") {
		t.Fatalf("first Fetch not applied")
	}
	if !s.Fetch(context.Background(), "go") {
		t.Fatalf("second Fetch not applied")
	}

	snap := s.Snapshot()
	if snap.Lifecycle != Failure {
		t.Fatalf("Lifecycle = %v, want failure", snap.Lifecycle)
	}
	if len(snap.Stories) != 1 || snap.Stories[0].Title != "kept" {
		t.Fatalf("Stories = %#v, want last good stories kept", snap.Stories)
	}
	if snap.LastError == nil || snap.LastError.Error() != "timeout" {
		t.Fatalf("LastError = %v, want timeout", snap.LastError)
	}
}

func TestStore_PanickingSearcherBecomesFailure(t *testing.T) {
	s := NewStore(funcSearcher(func(ctx context.Context, query string) ([]hn.Story, error) {
		panic("malformed")
	}), nil)

	s.Fetch(context.Background(), "x")
	snap := s.Snapshot()
	if snap.Lifecycle != Failure || snap.LastError == nil {
		t.Fatalf("snapshot = %#v, want failure with error", snap)
	}
}

func TestStore_NilSearcherBecomesFailure(t *testing.T) {
	s := NewStore(nil, nil)
	s.Fetch(context.Background(), "x")
	if snap := s.Snapshot(); snap.Lifecycle != Failure || !errors.Is(snap.LastError, errNoSearcher) {
		t.Fatalf("snapshot = %#v, want failure with errNoSearcher", snap)
	}
}

func TestStore_RefreshRepeatsLastQuery(t *testing.T) {
	var queries []string
	s := NewStore(funcSearcher(func(ctx context.Context, query string) ([]hn.Story, error) {
		queries = append(queries, query)
		return nil, nil
	}), nil)

	s.Fetch(context.Background(), "redux")
	s.Refresh(context.Background())
	if !reflect.DeepEqual(queries, []string{"redux", "redux"}) {
		t.Fatalf("queries = %#v, want redux twice", queries)
	}
}

func TestStore_SnapshotClone(t *testing.T) {
	s := NewStore(nil, nil)
	s.Dispatch(FetchSucceeded{Stories: storiesFixture()})

	snap := s.Snapshot()
	snap.Stories[0].Title = "mutated"
	if got := s.Snapshot().Stories[0].Title; got != "React" {
		t.Fatalf("Snapshot should clone stories; got %q want React", got)
	}

	origErr := errors.New("boom")
	s.Dispatch(FetchFailed{Err: origErr})
	snap = s.Snapshot()
	if snap.LastError != origErr {
		t.Fatalf("LastError = %v, want the stored error", snap.LastError)
	}
}

func TestStore_RemoveStory(t *testing.T) {
	s := NewStore(nil, nil)
	s.Dispatch(FetchSucceeded{Stories: storiesFixture()})

	s.RemoveStory("1")
	s.RemoveStory("1")
	snap := s.Snapshot()
	if len(snap.Stories) != 1 || snap.Stories[0].ID != "0" {
		t.Fatalf("Stories = %#v, want only id 0", snap.Stories)
	}
	if snap.Lifecycle != Success {
		t.Fatalf("Lifecycle = %v, want success", snap.Lifecycle)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Dispatch(FetchFailed{Err: errors.New("fail 1")})
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Dispatch(FetchFailed{Err: errors.New("fail 2")})
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Dispatch(FetchSucceeded{})
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
}
