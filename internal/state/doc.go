// Package state holds the story collection and its fetch lifecycle.
//
// # Overview
//
// This package is the single owner of the stories shown on screen. It pairs a
// pure reducer (State + Action -> State) with a Store that serialises access,
// runs fetches against an hn.Searcher, and hands out immutable snapshots.
//
// # Lifecycle
//
//	Idle ──FetchStarted──> Loading ──FetchSucceeded──> Success
//	                          │                           │
//	                          └──FetchFailed──> Failure   │
//	                                              │       │
//	          Loading <──────FetchStarted─────────┴───────┘
//
// There is no terminal state. Idle only exists before the first fetch.
//
// # Actions
//
// The action set is closed. Each action type implements an unexported apply
// method, so adding an action means writing its transition; there is no
// default branch to fall into.
//
//	FetchStarted{Query}      stories unchanged      -> Loading, error cleared
//	FetchSucceeded{Stories}  stories replaced       -> Success
//	FetchFailed{Err}         stories unchanged      -> Failure
//	RemoveStory{ID}          story dropped (no-op if absent), lifecycle unchanged
//
// FetchSucceeded replaces the collection wholesale. Each search returns a
// complete result set, so merging would only accumulate stale stories across
// queries. FetchFailed keeps the last good stories so the screen can keep
// showing them under an error indicator.
//
// # Fetch Ordering
//
// Store.Fetch tags every request with a sequence number. When the searcher
// returns, the outcome is applied only if no later Fetch has started:
//
//	Fetch("a") ──seq 1──────────────────────────────> result a (discarded)
//	        Fetch("b") ──seq 2──────> result b (applied)
//
// Starting a new fetch also cancels the context of the previous one, so a
// well-behaved searcher stops early. The sequence check is what guarantees
// ordering; cancellation just saves the round trip.
//
// # Error Handling
//
// Searcher errors of every kind, including panics, become FetchFailed. Fetch
// never returns an error; callers read Lifecycle and LastError from a
// snapshot.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex. The lock is never held while the searcher runs.
// Snapshot clones the story slice so readers can't observe later changes.
//
// # Usage Example
//
//	store := state.NewStore(client, log)
//	go store.Fetch(ctx, "react")
//
//	snap := store.Snapshot()
//	switch snap.Lifecycle {
//	case state.Loading:
//		// spinner
//	case state.Failure:
//		// error banner over snap.Stories
//	}
//
//	store.RemoveStory("8863")
package state
