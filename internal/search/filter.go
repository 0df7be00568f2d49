// Package search derives the visible story list from a search term.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/hnstories/internal/hn"
)

// Filter returns the stories whose title contains term, ignoring case, in
// their original order. An empty term matches every story. The result never
// shares a backing array with stories.
func Filter(stories []hn.Story, term string) []hn.Story {
	out := make([]hn.Story, 0, len(stories))
	if term == "" {
		return append(out, stories...)
	}
	folder := cases.Fold()
	needle := folder.String(term)
	for _, story := range stories {
		if strings.Contains(folder.String(story.Title), needle) {
			out = append(out, story)
		}
	}
	return out
}
