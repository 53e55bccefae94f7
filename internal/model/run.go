package model

import "time"

// RunStatus represents the current state of a lead-generation run.
type RunStatus string

const (
	RunStatusQueued    RunStatus = "queued"
	RunStatusSearching RunStatus = "searching"
	RunStatusEnriching RunStatus = "enriching"
	RunStatusComplete  RunStatus = "complete"
	RunStatusFailed    RunStatus = "failed"
)

// RunRequest captures the user input that started a run.
type RunRequest struct {
	Category        string               `json:"category"`
	Location        string               `json:"location"`
	DesiredCount    int                  `json:"desired_count"`
	AnalyzeWebsites bool                 `json:"analyze_websites"`
	ICP             IdealCustomerProfile `json:"icp"`
}

// Run is the persistence envelope for one lead-generation run.
type Run struct {
	ID        string        `json:"id"`
	Request   RunRequest    `json:"request"`
	Status    RunStatus     `json:"status"`
	Summary   *BatchSummary `json:"summary,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
