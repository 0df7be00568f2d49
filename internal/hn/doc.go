// Package hn provides an HTTP client for the Hacker News Algolia search API.
//
// # Overview
//
// This package is the data source behind the story list. Given a query string
// it asks the search endpoint for matching stories and returns them as a
// batch of Story values. It owns nothing beyond the request itself: retry and
// staleness handling belong to the caller.
//
// # Architecture
//
//   - client.go: HTTP client, request building, response decoding
//   - types.go: Story and the raw search payload
//
// # Client Usage
//
//	client, err := hn.NewClient("https://hn.algolia.com/api/v1/search")
//	if err != nil {
//		return fmt.Errorf("init hn client: %w", err)
//	}
//
//	stories, err := client.Search(ctx, "react")
//	if err != nil {
//		log.WithError(err).Warn("search failed")
//	}
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json header
//   - Include a hnstories/<version> User-Agent header
//   - Wait on a client-side rate limiter before hitting the network
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Every failure is returned as a plain wrapped error:
//
//   - Network errors: connection refused, timeout, DNS failure
//   - HTTP errors: any non-2xx status ("api /search returned status 503")
//   - Decode errors: malformed JSON ("decode response: ...")
//
// Callers are not expected to tell these apart. The story store folds them all
// into a single failure state.
//
// # Response Mapping
//
// Each hit maps directly onto a Story:
//
//	objectID     -> ID
//	title        -> Title
//	url          -> URL
//	author       -> Author
//	num_comments -> Comments
//	points       -> Points
//
// Hits without an objectID are dropped, and repeated IDs keep their first
// occurrence, so a batch never carries two stories with the same ID.
//
// # Testing
//
// The Searcher interface is what the rest of the application depends on;
// tests substitute a fake. The client itself is exercised against
// httptest servers.
package hn
