package dto

// VoteCounts aggregates persisted vote rows for one drawing.
type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

type VoteResponse struct {
	Success   bool    `json:"success"`
	Action    string  `json:"action"` // added, updated, or removed
	UserVote  *string `json:"userVote"`
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
}

type VoteCountsResponse struct {
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
	UserVote  *string `json:"userVote"`
}
