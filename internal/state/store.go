package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/hnstories/internal/hn"
)

var errNoSearcher = errors.New("no searcher configured")

// Store owns the story state and coordinates fetches against a Searcher.
type Store struct {
	mu       sync.RWMutex
	state    State
	searcher hn.Searcher
	log      logrus.FieldLogger
	now      func() time.Time

	seq    uint64 // sequence number of the latest issued fetch
	cancel context.CancelFunc
}

// NewStore returns an Idle store with no stories. A nil logger discards
// output. The zero Store is also usable.
func NewStore(searcher hn.Searcher, log logrus.FieldLogger) *Store {
	return &Store{
		searcher: searcher,
		log:      log,
		now:      time.Now,
	}
}

func (s *Store) logger() logrus.FieldLogger {
	if s.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.log = discard
	}
	return s.log
}

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Dispatch applies a to the stored state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// RemoveStory drops the story with id from the collection. Unknown ids are
// ignored.
func (s *Store) RemoveStory(id string) {
	s.Dispatch(RemoveStory{ID: id})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Stories = cloneStories(s.state.Stories)
	return snap
}

// Fetch searches for query and stores the outcome. It blocks until the
// searcher returns and reports whether the outcome was applied: a fetch that
// has been superseded by a later call is discarded, and its context is
// cancelled as soon as the later call starts.
func (s *Store) Fetch(ctx context.Context, query string) bool {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = Reduce(s.state, FetchStarted{Query: query})
	searcher := s.searcher
	s.mu.Unlock()
	defer cancel()

	stories, err := search(reqCtx, searcher, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger().WithFields(logrus.Fields{"query": query, "seq": seq, "latest": s.seq}).Debug("discarding stale fetch result")
		return false
	}
	s.cancel = nil

	if err != nil {
		s.state = Reduce(s.state, FetchFailed{Err: err, At: s.clock()})
		s.logger().WithError(err).WithField("query", query).Warn("story fetch failed")
		return true
	}
	s.state = Reduce(s.state, FetchSucceeded{Stories: stories, At: s.clock()})
	s.logger().WithFields(logrus.Fields{"query": query, "stories": len(stories)}).Debug("story fetch succeeded")
	return true
}

// Refresh repeats the most recent fetch.
func (s *Store) Refresh(ctx context.Context) bool {
	s.mu.RLock()
	query := s.state.Query
	s.mu.RUnlock()
	return s.Fetch(ctx, query)
}

func search(ctx context.Context, searcher hn.Searcher, query string) (stories []hn.Story, err error) {
	if searcher == nil {
		return nil, errNoSearcher
	}
	defer func() {
		if r := recover(); r != nil {
			stories = nil
			err = fmt.Errorf("search panicked: %v", r)
		}
	}()
	return searcher.Search(ctx, query)
}
