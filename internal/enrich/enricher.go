// Package enrich turns raw business candidates into scored, outreach-ready
// leads.
package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/analyzer"
	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/scorer"
)

// maxPainPoints caps how many website issues carry over as pain points.
const maxPainPoints = 3

// Enricher builds a Lead from a candidate, an ICP, and an optional website
// analysis. It performs no persistence; the only side effect is the analyzer
// call.
type Enricher struct {
	analyzer analyzer.Analyzer
	now      func() time.Time
	newID    func() string
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithNow sets a fixed clock for testing.
func WithNow(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// WithIDGenerator overrides lead id generation for testing.
func WithIDGenerator(gen func() string) Option {
	return func(e *Enricher) { e.newID = gen }
}

// NewEnricher creates an Enricher using the given website analyzer.
func NewEnricher(a analyzer.Analyzer, opts ...Option) *Enricher {
	e := &Enricher{
		analyzer: a,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich produces a fully formed Lead. When analyzeWebsites is true the
// candidate's website is analyzed first; an analyzer failure downgrades to
// the not-analyzed path rather than failing the lead, so one bad site never
// poisons a batch.
func (e *Enricher) Enrich(ctx context.Context, c model.BusinessCandidate, icp model.IdealCustomerProfile, analyzeWebsites bool) (*model.Lead, error) {
	var analysis *model.WebsiteAnalysis
	if analyzeWebsites {
		a, err := e.analyzer.Analyze(ctx, c.Website)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Warn("enrich: website analysis failed, scoring as not analyzed",
				zap.String("business", c.Name),
				zap.String("website", c.Website),
				zap.Error(err),
			)
		} else {
			analysis = a
		}
	}

	result := scorer.Compute(c, analysis, icp)
	now := e.now()

	lead := &model.Lead{
		ID:              e.newID(),
		Name:            c.Name,
		Address:         c.Address,
		Phone:           c.Phone,
		Website:         c.Website,
		Rating:          c.Rating,
		ReviewCount:     c.ReviewCount,
		BusinessType:    c.BusinessType,
		PlaceID:         c.PlaceID,
		Coordinates:     c.Coordinates,
		WebsiteAnalysis: analysis,
		Score:           result.Score,
		ScoreBreakdown:  result.Breakdown,
		PainPoints:      derivePainPoints(analysis),
		SuggestedAngle:  suggestAngle(c.Name, analysis),
		Status:          model.LeadStatusNew,
		Priority:        analyzer.PriorityFor(analysis),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return lead, nil
}

// derivePainPoints maps the analysis to the talking points shown to the
// user: fixed messages for missing/broken sites, otherwise the leading
// issues, capped at maxPainPoints. No analysis means no pain points.
func derivePainPoints(analysis *model.WebsiteAnalysis) []string {
	if analysis == nil {
		return []string{}
	}
	switch analysis.Status {
	case model.WebsiteStatusNone:
		return []string{"No website - missing online presence"}
	case model.WebsiteStatusBroken:
		return []string{"Website is broken or inaccessible"}
	}
	points := analysis.Issues
	if len(points) > maxPainPoints {
		points = points[:maxPainPoints]
	}
	out := make([]string, len(points))
	copy(out, points)
	return out
}

// suggestAngle renders the outreach opener for the lead's website situation.
func suggestAngle(name string, analysis *model.WebsiteAnalysis) string {
	if analysis == nil {
		return fmt.Sprintf("Help %s grow their online presence", name)
	}
	switch analysis.Status {
	case model.WebsiteStatusNone:
		return fmt.Sprintf("%s has no website - offer to build their first online presence", name)
	case model.WebsiteStatusBroken:
		return fmt.Sprintf("%s's website is down - offer an urgent rebuild", name)
	case model.WebsiteStatusPoor, model.WebsiteStatusOutdated:
		issue := "an aging web presence"
		if len(analysis.Issues) > 0 {
			issue = strings.ToLower(analysis.Issues[0])
		}
		return fmt.Sprintf("%s's website suffers from %s - offer a modern redesign", name, issue)
	default:
		return fmt.Sprintf("Help %s grow their online presence", name)
	}
}
