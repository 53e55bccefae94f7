// Package search finds candidate businesses via external providers, with
// primary/fallback chaining.
package search

import (
	"context"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

// Source returns raw candidate businesses for a query near a location.
// An empty result with a nil error is a valid outcome.
type Source interface {
	// Name identifies the source in logs and breaker state.
	Name() string
	// Search fetches up to limit candidates.
	Search(ctx context.Context, query, location string, limit int) ([]model.BusinessCandidate, error)
}
