package model

// BatchSummary holds the headline statistics for a batch run.
type BatchSummary struct {
	TotalFound    int      `json:"total_found"`
	Qualified     int      `json:"qualified"`
	Returned      int      `json:"returned"`
	TopIndustries []string `json:"top_industries"`
	AvgScore      float64  `json:"avg_score"`
}

// LeadBatchResult is the output of a batch run: leads sorted descending by
// score (stable on ties) plus summary statistics.
type LeadBatchResult struct {
	Leads   []Lead       `json:"leads"`
	Summary BatchSummary `json:"summary"`
}
