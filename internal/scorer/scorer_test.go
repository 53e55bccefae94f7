package scorer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anything-labs/leadgen-cli/internal/model"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestCompute_NoWebsiteFullStack(t *testing.T) {
	c := model.BusinessCandidate{
		Name:         "Joe's Diner",
		Address:      "123 Main St, Austin, TX 78701",
		Phone:        "512-555-0100",
		BusinessType: "restaurant",
		Rating:       floatPtr(3.2),
		ReviewCount:  intPtr(8),
	}
	analysis := &model.WebsiteAnalysis{
		Status: model.WebsiteStatusNone,
		Issues: []string{"No website found"},
	}
	icp := model.NewICP("restaurant", "Austin, TX")

	r := Compute(c, analysis, icp)

	assert.Equal(t, 40, r.Factors.WebsiteOpportunity)
	assert.Equal(t, 25, r.Factors.BusinessSignals)
	assert.Equal(t, 20, r.Factors.ICPMatch)
	assert.Equal(t, 8, r.Factors.ContactAvailability)
	assert.Equal(t, 93, r.Score)

	require.Equal(t, []string{
		"No website - huge opportunity (+40)",
		"Low rating 3.2 - needs reputation help (+15)",
		"Few reviews (8) - low visibility (+10)",
		"Industry match: restaurant (+12)",
		"Location match: Austin (+8)",
		"Phone available (+8)",
	}, r.Breakdown)
}

func TestCompute_NotAnalyzed(t *testing.T) {
	c := model.BusinessCandidate{Name: "Acme Plumbing", Website: "https://acme.example"}
	icp := model.NewICP("dentist", "Denver, CO")

	r := Compute(c, nil, icp)

	assert.Equal(t, 15, r.Factors.WebsiteOpportunity)
	require.NotEmpty(t, r.Breakdown)
	assert.Equal(t, "Website not analyzed (+15)", r.Breakdown[0])
}

func TestCompute_NotAnalyzedPhoneOnly(t *testing.T) {
	c := model.BusinessCandidate{
		Name:        "Joe's Diner",
		Phone:       "555-1234",
		Rating:      floatPtr(3.2),
		ReviewCount: intPtr(5),
	}
	icp := model.NewICP("diner", "Austin, TX")

	r := Compute(c, nil, icp)

	assert.Equal(t, 15, r.Factors.WebsiteOpportunity)
	assert.Equal(t, 25, r.Factors.BusinessSignals)
	assert.Equal(t, 12, r.Factors.ICPMatch)
	assert.Equal(t, 8, r.Factors.ContactAvailability)
	assert.Equal(t, 60, r.Score)
}

func TestCompute_MissingWebsiteNoICPMatch(t *testing.T) {
	c := model.BusinessCandidate{
		Name:        "Summit Ski Rentals",
		Rating:      floatPtr(4.8),
		ReviewCount: intPtr(200),
	}
	analysis := &model.WebsiteAnalysis{Status: model.WebsiteStatusNone}
	icp := model.NewICP("dentist", "Denver, CO")

	r := Compute(c, analysis, icp)

	assert.Equal(t, 40, r.Factors.WebsiteOpportunity)
	assert.Equal(t, 3, r.Factors.BusinessSignals)
	assert.Equal(t, 0, r.Factors.ICPMatch)
	assert.Equal(t, 0, r.Factors.ContactAvailability)
	assert.Equal(t, 43, r.Score)
}

func TestCompute_GoodWebsiteEstablishedBusiness(t *testing.T) {
	c := model.BusinessCandidate{
		Name:         "Bright Smiles Dental",
		Address:      "9 Elm St, Boulder, CO",
		Phone:        "303-555-0142",
		Website:      "https://brightsmiles.example",
		BusinessType: "dentist",
		Rating:       floatPtr(4.7),
		ReviewCount:  intPtr(230),
	}
	analysis := &model.WebsiteAnalysis{Status: model.WebsiteStatusGood}
	icp := model.NewICP("plumbing", "Denver, CO")

	r := Compute(c, analysis, icp)

	assert.Equal(t, 5, r.Factors.WebsiteOpportunity)
	assert.Equal(t, 3, r.Factors.BusinessSignals)
	assert.Equal(t, 0, r.Factors.ICPMatch)
	assert.Equal(t, 12, r.Factors.ContactAvailability)
	assert.Equal(t, 20, r.Score)
}

func TestCompute_IssueBonus(t *testing.T) {
	tests := []struct {
		status   model.WebsiteStatus
		issues   int
		expected int
	}{
		{model.WebsiteStatusPoor, 3, 30},  // no bonus at exactly 3
		{model.WebsiteStatusPoor, 6, 36},  // (6-3)*2
		{model.WebsiteStatusPoor, 9, 40},  // bonus capped at 10
		{model.WebsiteStatusBroken, 9, 40},  // 35+10 hits bucket cap
		{model.WebsiteStatusOutdated, 4, 22},
		{model.WebsiteStatusGood, 0, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d_issues", tt.status, tt.issues), func(t *testing.T) {
			issues := make([]string, tt.issues)
			for i := range issues {
				issues[i] = fmt.Sprintf("issue %d", i)
			}
			analysis := &model.WebsiteAnalysis{Status: tt.status, Issues: issues}

			r := Compute(model.BusinessCandidate{Name: "X"}, analysis, model.NewICP("y", "Z, ZZ"))
			assert.Equal(t, tt.expected, r.Factors.WebsiteOpportunity)
		})
	}
}

func TestCompute_BusinessSignals(t *testing.T) {
	tests := []struct {
		name     string
		rating   *float64
		reviews  *int
		expected int
	}{
		{"low rating few reviews maxes bucket", floatPtr(3.0), intPtr(5), 25},
		{"mediocre rating moderate reviews", floatPtr(3.7), intPtr(30), 13},
		{"high rating many reviews", floatPtr(4.8), intPtr(500), 3},
		{"mid rating many reviews contributes nothing", floatPtr(4.2), intPtr(80), 0},
		{"unknown rating and reviews", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := model.BusinessCandidate{Name: "X", Rating: tt.rating, ReviewCount: tt.reviews}
			r := Compute(c, &model.WebsiteAnalysis{Status: model.WebsiteStatusGood}, model.NewICP("y", "Z, ZZ"))
			assert.Equal(t, tt.expected, r.Factors.BusinessSignals)
		})
	}
}

func TestCompute_ZeroContributionsOmittedFromBreakdown(t *testing.T) {
	c := model.BusinessCandidate{
		Name:        "Quiet Co",
		Rating:      floatPtr(4.2),
		ReviewCount: intPtr(80),
	}
	r := Compute(c, &model.WebsiteAnalysis{Status: model.WebsiteStatusGood}, model.NewICP("plumbing", "Denver, CO"))

	require.Len(t, r.Breakdown, 1)
	assert.Equal(t, "Good website - low opportunity (+5)", r.Breakdown[0])
}

func TestCompute_ICPMatchUsesNameWhenTypeMissing(t *testing.T) {
	c := model.BusinessCandidate{Name: "Austin Plumbing Pros"}
	icp := model.NewICP("plumbing", "Austin, TX")

	r := Compute(c, nil, icp)
	assert.Equal(t, 12, r.Factors.ICPMatch)
	assert.Contains(t, r.Breakdown, "Industry match: plumbing (+12)")
}

func TestCompute_StatusOrdering(t *testing.T) {
	statuses := []model.WebsiteStatus{
		model.WebsiteStatusNone,
		model.WebsiteStatusBroken,
		model.WebsiteStatusPoor,
		model.WebsiteStatusOutdated,
		model.WebsiteStatusGood,
	}

	var prev int
	for i, status := range statuses {
		r := Compute(model.BusinessCandidate{Name: "X"},
			&model.WebsiteAnalysis{Status: status}, model.NewICP("y", "Z, ZZ"))
		if i > 0 {
			assert.Less(t, r.Score, prev, "status %s should score below its predecessor", status)
		}
		prev = r.Score
	}
}

func TestCompute_ScoreNeverExceeds100(t *testing.T) {
	issues := make([]string, 10)
	for i := range issues {
		issues[i] = fmt.Sprintf("issue %d", i)
	}
	c := model.BusinessCandidate{
		Name:         "Everything Wrong LLC",
		Address:      "1 Center St, Austin, TX",
		Phone:        "512-555-0199",
		Website:      "http://everythingwrong.example",
		BusinessType: "restaurant",
		Rating:       floatPtr(2.1),
		ReviewCount:  intPtr(3),
	}
	analysis := &model.WebsiteAnalysis{Status: model.WebsiteStatusBroken, Issues: issues}

	r := Compute(c, analysis, model.NewICP("restaurant", "Austin, TX"))
	assert.LessOrEqual(t, r.Score, 100)
	assert.Equal(t, 40, r.Factors.WebsiteOpportunity)
	assert.Equal(t, 25, r.Factors.BusinessSignals)
}
