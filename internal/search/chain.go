package search

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/resilience"
)

// Chain tries sources in priority order. The first source returning
// candidates wins; a source that fails or comes back empty is skipped.
// Each source is retried on transient errors and guarded by its own
// circuit breaker so a dead provider stops eating the retry budget.
type Chain struct {
	sources  []Source
	retryCfg resilience.RetryConfig
	breakers map[string]*resilience.Breaker
}

// NewChain creates a Chain over the given sources.
func NewChain(retryCfg resilience.RetryConfig, sources ...Source) *Chain {
	breakers := make(map[string]*resilience.Breaker, len(sources))
	for _, s := range sources {
		breakers[s.Name()] = resilience.NewBreaker(3, 60*time.Second)
	}
	return &Chain{
		sources:  sources,
		retryCfg: retryCfg,
		breakers: breakers,
	}
}

// Search runs the chain. It returns an error only when every source failed;
// all sources agreeing the query has no results yields an empty slice.
func (c *Chain) Search(ctx context.Context, query, location string, limit int) ([]model.BusinessCandidate, error) {
	var lastErr error
	for _, src := range c.sources {
		breaker := c.breakers[src.Name()]
		if err := breaker.Allow(); err != nil {
			zap.L().Debug("search: source circuit open, skipping",
				zap.String("source", src.Name()),
			)
			lastErr = err
			continue
		}

		candidates, err := resilience.RetryVal(ctx, c.retryCfg, "search:"+src.Name(),
			func(ctx context.Context) ([]model.BusinessCandidate, error) {
				return src.Search(ctx, query, location, limit)
			})
		breaker.Record(err)
		if err != nil {
			zap.L().Warn("search: source failed, trying next",
				zap.String("source", src.Name()),
				zap.String("query", query),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		if len(candidates) == 0 {
			zap.L().Info("search: source returned no candidates",
				zap.String("source", src.Name()),
				zap.String("query", query),
				zap.String("location", location),
			)
			continue
		}

		zap.L().Info("search: candidates found",
			zap.String("source", src.Name()),
			zap.Int("count", len(candidates)),
		)
		return candidates, nil
	}

	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "search: all sources failed")
	}
	return []model.BusinessCandidate{}, nil
}
