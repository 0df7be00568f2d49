package state

import (
	"time"

	"github.com/five82/hnstories/internal/hn"
)

// Lifecycle is the progress of the most recent fetch.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Loading
	Success
	Failure
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is the story collection plus its fetch lifecycle.
type State struct {
	Stories             []hn.Story
	Lifecycle           Lifecycle
	Query               string // query of the most recently started fetch
	LastError           error
	LastUpdated         time.Time
	ConsecutiveFailures int
}

// IsOffline returns true when the API has failed several fetches in a row.
func (s State) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Action is an input to Reduce. The set is closed: only the types in this
// package implement it.
type Action interface {
	apply(State) State
}

// FetchStarted marks a fetch for Query as outstanding.
type FetchStarted struct {
	Query string
}

// FetchSucceeded replaces the collection with Stories.
type FetchSucceeded struct {
	Stories []hn.Story
	At      time.Time
}

// FetchFailed records a failed fetch. Stories are left as they were.
type FetchFailed struct {
	Err error
	At  time.Time
}

// RemoveStory drops the story with the given ID, if present.
type RemoveStory struct {
	ID string
}

// Reduce returns the state that results from applying a to s. It never
// mutates s.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a FetchStarted) apply(s State) State {
	s.Lifecycle = Loading
	s.Query = a.Query
	s.LastError = nil
	return s
}

func (a FetchSucceeded) apply(s State) State {
	s.Stories = cloneStories(a.Stories)
	if s.Stories == nil {
		s.Stories = []hn.Story{}
	}
	s.Lifecycle = Success
	s.LastError = nil
	s.LastUpdated = a.At
	s.ConsecutiveFailures = 0
	return s
}

func (a FetchFailed) apply(s State) State {
	s.Lifecycle = Failure
	s.LastError = a.Err
	s.LastUpdated = a.At
	s.ConsecutiveFailures++
	return s
}

func (a RemoveStory) apply(s State) State {
	idx := -1
	for i, story := range s.Stories {
		if story.ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}
	out := make([]hn.Story, 0, len(s.Stories)-1)
	out = append(out, s.Stories[:idx]...)
	out = append(out, s.Stories[idx+1:]...)
	s.Stories = out
	return s
}

func cloneStories(stories []hn.Story) []hn.Story {
	if stories == nil {
		return nil
	}
	dup := make([]hn.Story, len(stories))
	copy(dup, stories)
	return dup
}
