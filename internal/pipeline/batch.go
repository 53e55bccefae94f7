// Package pipeline orchestrates lead enrichment across a batch of
// candidates with bounded outbound concurrency.
package pipeline

import (
	"context"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

// DefaultBatchSize bounds concurrent website analyses per window.
const DefaultBatchSize = 5

// Enricher is the single-candidate enrichment dependency.
type Enricher interface {
	Enrich(ctx context.Context, c model.BusinessCandidate, icp model.IdealCustomerProfile, analyzeWebsites bool) (*model.Lead, error)
}

// Options control a batch run.
type Options struct {
	// AnalyzeWebsites enables per-candidate website analysis.
	AnalyzeWebsites bool
	// DesiredCount caps how many candidates are enriched. Zero or negative
	// means all.
	DesiredCount int
	// BatchSize is the per-window concurrency bound. Defaults to
	// DefaultBatchSize.
	BatchSize int
	// QualifiedMinScore is the score threshold for the qualified count in
	// the summary.
	QualifiedMinScore int
}

// Runner executes batch lead-generation runs.
type Runner struct {
	enricher Enricher
}

// NewRunner creates a batch Runner.
func NewRunner(e Enricher) *Runner {
	return &Runner{enricher: e}
}

// RunBatch enriches at most min(len(candidates), opts.DesiredCount)
// candidates in sequential windows of opts.BatchSize; within a window all
// enrichments run concurrently. Windows run strictly one after another,
// which bounds peak outbound calls to the window size. A failing candidate
// is logged and dropped without aborting its siblings. The returned leads
// are stably sorted by score descending, so ties keep candidate supply
// order. An empty candidate set yields an empty result, not an error.
func (r *Runner) RunBatch(ctx context.Context, candidates []model.BusinessCandidate, icp model.IdealCustomerProfile, opts Options) (*model.LeadBatchResult, error) {
	totalFound := len(candidates)

	if opts.DesiredCount > 0 && len(candidates) > opts.DesiredCount {
		candidates = candidates[:opts.DesiredCount]
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	// Slots keep supply order regardless of completion order; failed
	// candidates leave a nil slot.
	slots := make([]*model.Lead, len(candidates))
	var failed atomic.Int64

	for start := 0; start < len(candidates); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				lead, err := r.enricher.Enrich(gctx, candidates[i], icp, opts.AnalyzeWebsites)
				if err != nil {
					failed.Add(1)
					zap.L().Error("pipeline: enrichment failed",
						zap.String("business", candidates[i].Name),
						zap.Error(err),
					)
					return nil // isolate per-candidate faults
				}
				slots[i] = lead
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	leads := make([]model.Lead, 0, len(slots))
	for _, lead := range slots {
		if lead != nil {
			leads = append(leads, *lead)
		}
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})

	result := &model.LeadBatchResult{
		Leads:   leads,
		Summary: summarize(leads, totalFound, opts.QualifiedMinScore),
	}

	zap.L().Info("pipeline: batch complete",
		zap.Int("total_found", totalFound),
		zap.Int("returned", len(leads)),
		zap.Int64("failed", failed.Load()),
		zap.Int("qualified", result.Summary.Qualified),
		zap.Float64("avg_score", result.Summary.AvgScore),
	)

	return result, nil
}
