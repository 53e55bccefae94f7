package model

import "time"

// LeadStatus tracks a lead through the outreach funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusResponded LeadStatus = "responded"
	LeadStatusClosed    LeadStatus = "closed"
	LeadStatusLost      LeadStatus = "lost"
)

// Priority is the coarse outreach urgency tier derived from website quality.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Lead is a fully enriched, scored candidate ready for sales outreach.
// Created once per enrichment and treated as an immutable snapshot by the
// pipeline; status transitions happen through the store, not here.
type Lead struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Address         string           `json:"address,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Website         string           `json:"website,omitempty"`
	Rating          *float64         `json:"rating,omitempty"`
	ReviewCount     *int             `json:"review_count,omitempty"`
	BusinessType    string           `json:"business_type,omitempty"`
	PlaceID         string           `json:"place_id"`
	Coordinates     *Coordinates     `json:"coordinates,omitempty"`
	WebsiteAnalysis *WebsiteAnalysis `json:"website_analysis,omitempty"`
	Score           int              `json:"score"`
	ScoreBreakdown  []string         `json:"score_breakdown"`
	PainPoints      []string         `json:"pain_points"`
	SuggestedAngle  string           `json:"suggested_angle"`
	Status          LeadStatus       `json:"status"`
	Priority        Priority         `json:"priority"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Industry returns the lead's industry label, mirroring
// BusinessCandidate.Industry.
func (l Lead) Industry() string {
	if l.BusinessType != "" {
		return l.BusinessType
	}
	return l.Name
}
