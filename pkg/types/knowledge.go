// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Passage is a ranked snippet of background material returned by the
// retrieval store. The research stage folds passages into an item's
// ResearchContext; an empty result set is valid and distinct from a
// retrieval failure.
type Passage struct {
	// Content is the passage text.
	Content string `json:"content" yaml:"content"`

	// Source identifies where the passage came from (note filename).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Score is the retrieval relevance rank; higher is more relevant.
	Score float64 `json:"score" yaml:"score"`
}
