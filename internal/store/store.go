// Package store persists lead-generation runs and their leads.
package store

import (
	"context"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead pipeline. The
// enrichment core never touches it; persistence happens in the commands
// and the webhook server.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, req model.RunRequest) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, summary *model.BatchSummary) error
	FailRun(ctx context.Context, runID string, errMsg string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Leads
	SaveLeads(ctx context.Context, runID string, leads []model.Lead) error
	ListLeads(ctx context.Context, runID string) ([]model.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID string, status model.LeadStatus) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
