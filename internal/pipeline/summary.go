package pipeline

import (
	"math"
	"strings"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/scorer"
)

// maxTopIndustries caps the distinct industries reported in the summary.
const maxTopIndustries = 3

// summarize computes batch statistics over the sorted lead set.
func summarize(leads []model.Lead, totalFound, qualifiedMinScore int) model.BatchSummary {
	if qualifiedMinScore <= 0 {
		qualifiedMinScore = scorer.QualifiedMinScore
	}

	s := model.BatchSummary{
		TotalFound: totalFound,
		Returned:   len(leads),
	}

	seen := make(map[string]bool)
	sum := 0
	for _, lead := range leads {
		sum += lead.Score
		if lead.Score >= qualifiedMinScore {
			s.Qualified++
		}
		industry := lead.Industry()
		key := strings.ToLower(industry)
		if len(s.TopIndustries) < maxTopIndustries && industry != "" && !seen[key] {
			seen[key] = true
			s.TopIndustries = append(s.TopIndustries, industry)
		}
	}

	if len(leads) > 0 {
		s.AvgScore = math.Round(float64(sum)/float64(len(leads))*10) / 10
	}
	return s
}
