package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/pkg/serpapi"
)

// SerpAPISource adapts the SerpApi Maps client to the Source interface.
// It is the primary business source: Maps results carry ratings, review
// counts, and phone numbers the scorer feeds on.
type SerpAPISource struct {
	client serpapi.Client
}

// NewSerpAPISource creates the primary source.
func NewSerpAPISource(client serpapi.Client) *SerpAPISource {
	return &SerpAPISource{client: client}
}

// Name implements Source.
func (s *SerpAPISource) Name() string { return "serpapi" }

// Search implements Source.
func (s *SerpAPISource) Search(ctx context.Context, query, location string, limit int) ([]model.BusinessCandidate, error) {
	resp, err := s.client.MapsSearch(ctx, query, location, limit)
	if err != nil {
		return nil, eris.Wrap(err, "search: serpapi maps search")
	}

	candidates := make([]model.BusinessCandidate, 0, len(resp.LocalResults))
	for _, lr := range resp.LocalResults {
		if lr.Title == "" {
			continue
		}
		c := model.BusinessCandidate{
			Name:         lr.Title,
			Address:      lr.Address,
			Phone:        lr.Phone,
			Website:      lr.Website,
			Rating:       lr.Rating,
			ReviewCount:  lr.Reviews,
			BusinessType: lr.Type,
			PlaceID:      lr.PlaceID,
		}
		if lr.GPSCoordinates != nil {
			c.Coordinates = &model.Coordinates{
				Lat: lr.GPSCoordinates.Latitude,
				Lng: lr.GPSCoordinates.Longitude,
			}
		}
		candidates = append(candidates, c)
		if limit > 0 && len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}
