// Package ai defines the scoring contract between the match engine and
// whichever model backend fulfils it.
package ai

import "context"

// PostingSummary is the condensed view of one posting sent to the model.
type PostingSummary struct {
	PostingID     int64  `json:"postingId"`
	Institution   string `json:"institutionName"`
	Title         string `json:"title"`
	RecruitType   string `json:"recruitTypeName"`
	Region        string `json:"region"`
	Qualification string `json:"qualification"`
	Preference    string `json:"preference"`
}

// Score is one posting's verdict. Value is always within [0, 100].
type Score struct {
	Value  int
	Reason string
}

// Scorer evaluates a batch of postings against a candidate profile summary.
// The returned map may omit postings the model failed to cover; callers must
// not assume every input id is present.
type Scorer interface {
	ScoreBatch(ctx context.Context, profileSummary string, batch []PostingSummary) (map[int64]Score, error)
}
