package hn

// Story is one search hit.
type Story struct {
	ID       string `json:"objectID"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Author   string `json:"author"`
	Comments int    `json:"num_comments"`
	Points   int    `json:"points"`
}

// SearchResponse mirrors the subset of the search payload we read.
type SearchResponse struct {
	Hits        []Story `json:"hits"`
	NbHits      int     `json:"nbHits"`
	Page        int     `json:"page"`
	HitsPerPage int     `json:"hitsPerPage"`
	Query       string  `json:"query"`
}

// Stories returns the hits with empty and repeated IDs removed.
func (r SearchResponse) Stories() []Story {
	if len(r.Hits) == 0 {
		return []Story{}
	}
	seen := make(map[string]struct{}, len(r.Hits))
	out := make([]Story, 0, len(r.Hits))
	for _, hit := range r.Hits {
		if hit.ID == "" {
			continue
		}
		if _, dup := seen[hit.ID]; dup {
			continue
		}
		seen[hit.ID] = struct{}{}
		out = append(out, hit)
	}
	return out
}
