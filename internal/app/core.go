package app

import (
	"context"

	"github.com/five82/hnstories/internal/hn"
	"github.com/five82/hnstories/internal/prefs"
	"github.com/five82/hnstories/internal/search"
	"github.com/five82/hnstories/internal/state"
)

// Core is what the screen talks to. It joins the story store with the
// persisted search term and derives the visible stories from both.
type Core struct {
	store *state.Store
	term  *prefs.Preference
}

// NewCore wires a store and a search preference together.
func NewCore(store *state.Store, term *prefs.Preference) *Core {
	return &Core{store: store, term: term}
}

// CurrentStories returns the stored stories filtered by the search term.
func (c *Core) CurrentStories() []hn.Story {
	return search.Filter(c.store.Snapshot().Stories, c.term.Get())
}

// Lifecycle returns the state of the most recent fetch.
func (c *Core) Lifecycle() state.Lifecycle {
	return c.store.Snapshot().Lifecycle
}

// Snapshot returns the unfiltered store state.
func (c *Core) Snapshot() state.State {
	return c.store.Snapshot()
}

// RemoveStory drops a story from the collection. Unknown ids are ignored.
func (c *Core) RemoveStory(id string) {
	c.store.RemoveStory(id)
}

// SetSearchTerm updates and persists the search term.
func (c *Core) SetSearchTerm(term string) {
	c.term.Set(term)
}

// SearchTerm returns the current search term.
func (c *Core) SearchTerm() string {
	return c.term.Get()
}

// Submit fetches stories for the current search term. It blocks until the
// fetch completes and reports whether its result was kept.
func (c *Core) Submit(ctx context.Context) bool {
	return c.store.Fetch(ctx, c.term.Get())
}

// Refresh repeats the last fetch.
func (c *Core) Refresh(ctx context.Context) bool {
	return c.store.Refresh(ctx)
}
