package model

import "time"

// WebsiteStatus classifies the quality of a candidate's website.
type WebsiteStatus string

const (
	WebsiteStatusNone     WebsiteStatus = "none"
	WebsiteStatusBroken   WebsiteStatus = "broken"
	WebsiteStatusPoor     WebsiteStatus = "poor"
	WebsiteStatusOutdated WebsiteStatus = "outdated"
	WebsiteStatusGood     WebsiteStatus = "good"
)

// WebsiteAnalysis is the output of the website analyzer for a single URL.
// A nil *WebsiteAnalysis on a Lead means analysis was skipped or failed.
type WebsiteAnalysis struct {
	Status           WebsiteStatus `json:"status"`
	Score            float64       `json:"score"`
	Issues           []string      `json:"issues"`
	LastUpdated      *time.Time    `json:"last_updated,omitempty"`
	Technologies     []string      `json:"technologies,omitempty"`
	HasSSL           bool          `json:"has_ssl"`
	LoadTimeMS       int64         `json:"load_time_ms,omitempty"`
	MobileResponsive bool          `json:"mobile_responsive"`
	HasContactForm   bool          `json:"has_contact_form"`
	SocialLinks      []string      `json:"social_links,omitempty"`
}
