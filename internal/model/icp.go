package model

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// IdealCustomerProfile holds the targeting criteria a batch run is scored
// against. Constructed once per run and treated as immutable thereafter.
type IdealCustomerProfile struct {
	TargetIndustries []string `json:"target_industries" yaml:"target_industries"`
	TargetLocation   string   `json:"target_location" yaml:"target_location"`
	PainPoints       []string `json:"pain_points,omitempty" yaml:"pain_points"`
	SolutionType     string   `json:"solution_type,omitempty" yaml:"solution_type"`
}

// NewICP builds a profile from a user-supplied category and location, the
// way the workspace UI seeds a lead-generation run.
func NewICP(category, location string) IdealCustomerProfile {
	return IdealCustomerProfile{
		TargetIndustries: []string{category},
		TargetLocation:   location,
	}
}

// LoadICP reads a profile from a YAML file.
func LoadICP(path string) (*IdealCustomerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "icp: read file")
	}
	var icp IdealCustomerProfile
	if err := yaml.Unmarshal(data, &icp); err != nil {
		return nil, eris.Wrap(err, "icp: parse yaml")
	}
	if err := icp.Validate(); err != nil {
		return nil, err
	}
	return &icp, nil
}

// Validate checks that the profile can drive a scoring run.
func (p IdealCustomerProfile) Validate() error {
	var errs []string
	if len(p.TargetIndustries) == 0 {
		errs = append(errs, "target_industries must not be empty")
	}
	for _, ind := range p.TargetIndustries {
		if strings.TrimSpace(ind) == "" {
			errs = append(errs, "target_industries entries must not be blank")
			break
		}
	}
	if strings.TrimSpace(p.TargetLocation) == "" {
		errs = append(errs, "target_location must not be empty")
	}
	if len(errs) > 0 {
		return eris.Errorf("icp: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LocationCity returns the first comma-segment of the target location,
// e.g. "Austin" for "Austin, TX". Used for address matching.
func (p IdealCustomerProfile) LocationCity() string {
	city, _, _ := strings.Cut(p.TargetLocation, ",")
	return strings.TrimSpace(city)
}
