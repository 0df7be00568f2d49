// Package app provides the orchestration layer for hnstories.
//
// # Overview
//
// This package wires together configuration, logging, preferences, the HN
// client, the story store and the UI. It is the composition root: nothing
// here holds global state, every dependency is built in Run and handed down.
//
// # Components
//
//   - app.go: Run, the composition root
//   - core.go: Core, the API the screen uses (stories, lifecycle, search term)
//   - poller.go: optional background auto refresh with failure backoff
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config file + env
//	       ├─────> logging.New()        Open log file
//	       ├─────> prefs.New()          Search term + theme, read through
//	       ├─────> hn.NewClient()       HTTP client
//	       ├─────> state.NewStore()     Story store
//	       ├─────> NewCore()            Store + search term
//	       ├─────> StartPoller()        Auto refresh (if enabled)
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Typing in the search box:
//	  ui ─> Core.SetSearchTerm ─> Preference.Set (write-through)
//	  ui ─> Core.CurrentStories ─> search.Filter(store stories, term)
//
//	Submitting a search:
//	  ui ─> Core.Submit ─> Store.Fetch(term) ─> hn.Client.Search
//
// # Core
//
// Core is the only surface the screen needs:
//
//   - CurrentStories(): stored stories filtered by the search term
//   - Lifecycle(): idle, loading, success or failure
//   - RemoveStory(id): drop one story, unknown ids ignored
//   - SetSearchTerm(term) / SearchTerm(): persisted search term
//   - Submit(ctx) / Refresh(ctx): fetch for the current or last query
//
// Typing only filters what is already loaded. A fetch happens on submit, on
// start-up, and on each auto refresh tick.
//
// # Polling Behavior
//
// Auto refresh is off unless refresh_interval (or --refresh) is set. When
// on, the poller repeats the last query every interval. While fetches keep
// failing the wait doubles up to 30 seconds, and it resets on the first
// success. A tick that finds a fetch already in flight is skipped.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - Log file cannot be opened
//   - HN client initialization failure (bad endpoint)
//
// Everything else degrades: a bad prefs path keeps preferences in memory,
// and fetch failures show up as the failure lifecycle in the UI.
package app
