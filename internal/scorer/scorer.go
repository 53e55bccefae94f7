// Package scorer computes the 0-100 opportunity score for a business
// candidate against an ideal customer profile.
package scorer

import (
	"fmt"
	"strings"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

// Bucket caps. The final score is the sum of the four capped buckets,
// clamped at 100.
const (
	MaxWebsiteOpportunity  = 40
	MaxBusinessSignals     = 25
	MaxICPMatch            = 20
	MaxContactAvailability = 15

	// QualifiedMinScore is the default threshold for counting a lead as
	// qualified in batch summaries.
	QualifiedMinScore = 50
)

// Factors is the per-bucket score breakdown. Each bucket is already capped
// at its maximum when produced by Compute.
type Factors struct {
	WebsiteOpportunity  int `json:"website_opportunity"`
	BusinessSignals     int `json:"business_signals"`
	ICPMatch            int `json:"icp_match"`
	ContactAvailability int `json:"contact_availability"`
}

// Result is the full scoring output for one candidate.
type Result struct {
	Score     int      `json:"score"`
	Factors   Factors  `json:"factors"`
	Breakdown []string `json:"breakdown"`
}

// websiteOpportunityBase maps analysis status to the bucket's base value.
var websiteOpportunityBase = map[model.WebsiteStatus]int{
	model.WebsiteStatusNone:     40,
	model.WebsiteStatusBroken:   35,
	model.WebsiteStatusPoor:     30,
	model.WebsiteStatusOutdated: 20,
	model.WebsiteStatusGood:     5,
}

// notAnalyzedBase is the website-opportunity value when no analysis was
// performed for the candidate.
const notAnalyzedBase = 15

// Compute scores a candidate. It is a pure function: no side effects,
// deterministic for identical inputs. analysis may be nil when website
// analysis was skipped or failed.
func Compute(c model.BusinessCandidate, analysis *model.WebsiteAnalysis, icp model.IdealCustomerProfile) Result {
	var r Result

	r.Factors.WebsiteOpportunity = scoreWebsiteOpportunity(analysis, &r.Breakdown)
	r.Factors.BusinessSignals = scoreBusinessSignals(c.Rating, c.ReviewCount, &r.Breakdown)
	r.Factors.ICPMatch = scoreICPMatch(c, icp, &r.Breakdown)
	r.Factors.ContactAvailability = scoreContactAvailability(c, &r.Breakdown)

	r.Score = r.Factors.WebsiteOpportunity +
		r.Factors.BusinessSignals +
		r.Factors.ICPMatch +
		r.Factors.ContactAvailability
	if r.Score > 100 {
		r.Score = 100
	}
	return r
}

// scoreWebsiteOpportunity returns 0-40. The issue-count bonus applies only
// when an analysis is present; the not-analyzed path has no bonus.
func scoreWebsiteOpportunity(analysis *model.WebsiteAnalysis, breakdown *[]string) int {
	if analysis == nil {
		*breakdown = append(*breakdown, fmt.Sprintf("Website not analyzed (+%d)", notAnalyzedBase))
		return notAnalyzedBase
	}

	base := websiteOpportunityBase[analysis.Status]
	switch analysis.Status {
	case model.WebsiteStatusNone:
		*breakdown = append(*breakdown, fmt.Sprintf("No website - huge opportunity (+%d)", base))
	case model.WebsiteStatusBroken:
		*breakdown = append(*breakdown, fmt.Sprintf("Broken website (+%d)", base))
	case model.WebsiteStatusPoor:
		*breakdown = append(*breakdown, fmt.Sprintf("Poor quality website (+%d)", base))
	case model.WebsiteStatusOutdated:
		*breakdown = append(*breakdown, fmt.Sprintf("Outdated website (+%d)", base))
	case model.WebsiteStatusGood:
		*breakdown = append(*breakdown, fmt.Sprintf("Good website - low opportunity (+%d)", base))
	}

	total := base
	if n := len(analysis.Issues); n > 3 {
		bonus := (n - 3) * 2
		if bonus > 10 {
			bonus = 10
		}
		total += bonus
		*breakdown = append(*breakdown, fmt.Sprintf("%d website issues found (+%d)", n, bonus))
	}
	if total > MaxWebsiteOpportunity {
		total = MaxWebsiteOpportunity
	}
	return total
}

// scoreBusinessSignals returns 0-25 from two independent sub-checks: rating
// and review count. The sub-check maxima sum to exactly 25; the cap is still
// enforced as a hard ceiling.
func scoreBusinessSignals(rating *float64, reviewCount *int, breakdown *[]string) int {
	total := 0

	if rating != nil {
		switch {
		case *rating < 3.5:
			total += 15
			*breakdown = append(*breakdown, fmt.Sprintf("Low rating %.1f - needs reputation help (+15)", *rating))
		case *rating < 4.0:
			total += 8
			*breakdown = append(*breakdown, fmt.Sprintf("Mediocre rating %.1f (+8)", *rating))
		case *rating >= 4.5:
			total += 3
			*breakdown = append(*breakdown, fmt.Sprintf("High rating %.1f - established business (+3)", *rating))
		}
	}

	if reviewCount != nil {
		switch {
		case *reviewCount < 10:
			total += 10
			*breakdown = append(*breakdown, fmt.Sprintf("Few reviews (%d) - low visibility (+10)", *reviewCount))
		case *reviewCount < 50:
			total += 5
			*breakdown = append(*breakdown, fmt.Sprintf("Moderate reviews (%d) (+5)", *reviewCount))
		}
	}

	if total > MaxBusinessSignals {
		total = MaxBusinessSignals
	}
	return total
}

// scoreICPMatch returns 0-20 from two additive sub-checks: industry match
// against the candidate's type-or-name field, and location match against the
// address.
func scoreICPMatch(c model.BusinessCandidate, icp model.IdealCustomerProfile, breakdown *[]string) int {
	total := 0

	industry := strings.ToLower(c.Industry())
	for _, target := range icp.TargetIndustries {
		if target != "" && strings.Contains(industry, strings.ToLower(target)) {
			total += 12
			*breakdown = append(*breakdown, fmt.Sprintf("Industry match: %s (+12)", target))
			break
		}
	}

	if city := icp.LocationCity(); city != "" && c.Address != "" {
		if strings.Contains(strings.ToLower(c.Address), strings.ToLower(city)) {
			total += 8
			*breakdown = append(*breakdown, fmt.Sprintf("Location match: %s (+8)", city))
		}
	}

	if total > MaxICPMatch {
		total = MaxICPMatch
	}
	return total
}

// scoreContactAvailability returns 0-15. The email channel is reserved and
// contributes 0 until lead email discovery lands.
func scoreContactAvailability(c model.BusinessCandidate, breakdown *[]string) int {
	total := 0
	if c.Phone != "" {
		total += 8
		*breakdown = append(*breakdown, "Phone available (+8)")
	}
	if c.Website != "" {
		total += 4
		*breakdown = append(*breakdown, "Website available (+4)")
	}
	if total > MaxContactAvailability {
		total = MaxContactAvailability
	}
	return total
}
