package types

// ChunkReport describes one content chunk and how it was scored.
type ChunkReport struct {
	Markup            string  `json:"markup"`
	Text              string  `json:"text"`
	LengthWithTags    int     `json:"length_with_tags"`
	LengthWithoutTags int     `json:"length_without_tags"`
	LinkLength        int     `json:"link_length"`
	PunctuationCount  int     `json:"punctuation_count"`
	Weight            float64 `json:"weight"`
	Accepted          bool    `json:"accepted"`
	Failed            bool    `json:"failed,omitempty"`
	Err               error   `json:"-"`
}

// Result is the output of one extraction.
// Content holds the accepted chunk text joined by single spaces. SavedTags
// maps each saved element name to the cleaned text of its occurrences in
// document order. Chunks is only filled when IncludeChunks is set.
type Result struct {
	Content   string              `json:"content"`
	SavedTags map[string][]string `json:"saved_tags"`
	Chunks    []ChunkReport       `json:"chunks,omitempty"`
}
