// Package analyzer inspects candidate websites and classifies their quality
// for lead scoring.
package analyzer

import (
	"context"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

// Analyzer produces a WebsiteAnalysis for a candidate's website. An empty
// url yields a status of "none" rather than an error.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*model.WebsiteAnalysis, error)
}

// PriorityFor maps an analysis to an outreach priority tier. Candidates
// whose web presence is missing or failing are the most urgent targets.
// Callers use PriorityMedium when no analysis was performed.
func PriorityFor(analysis *model.WebsiteAnalysis) model.Priority {
	if analysis == nil {
		return model.PriorityMedium
	}
	switch analysis.Status {
	case model.WebsiteStatusNone, model.WebsiteStatusBroken, model.WebsiteStatusPoor:
		return model.PriorityHigh
	case model.WebsiteStatusOutdated:
		return model.PriorityMedium
	case model.WebsiteStatusGood:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
