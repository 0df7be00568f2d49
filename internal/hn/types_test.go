package hn

import (
	"encoding/json"
	"testing"
)

func TestSearchResponse_StoriesDropsEmptyAndDuplicateIDs(t *testing.T) {
	resp := SearchResponse{Hits: []Story{
		{ID: "1", Title: "first"},
		{ID: "", Title: "no id"},
		{ID: "2", Title: "second"},
		{ID: "1", Title: "first again"},
	}}
	got := resp.Stories()
	if len(got) != 2 {
		t.Fatalf("Stories = %#v, want 2 entries", got)
	}
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("Stories = %#v, want first occurrence kept in order", got)
	}
}

func TestSearchResponse_StoriesEmpty(t *testing.T) {
	got := SearchResponse{}.Stories()
	if got == nil || len(got) != 0 {
		t.Fatalf("Stories = %#v, want empty non-nil slice", got)
	}
}

func TestStory_DecodesAlgoliaFieldNames(t *testing.T) {
	var s Story
	raw := `{"objectID":"42","title":"T","url":"U","author":"A","num_comments":7,"points":9,"_tags":["story"]}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := Story{ID: "42", Title: "T", URL: "U", Author: "A", Comments: 7, Points: 9}
	if s != want {
		t.Fatalf("Story = %#v, want %#v", s, want)
	}
}
