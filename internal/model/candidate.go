package model

// Coordinates holds a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BusinessCandidate is a raw business record returned by a search provider,
// not yet scored. Immutable once fetched.
type BusinessCandidate struct {
	Name         string       `json:"name"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Website      string       `json:"website,omitempty"`
	Rating       *float64     `json:"rating,omitempty"`
	ReviewCount  *int         `json:"review_count,omitempty"`
	BusinessType string       `json:"business_type,omitempty"`
	PlaceID      string       `json:"place_id"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// Industry returns the field used for industry matching: the business type
// when the provider supplied one, otherwise the business name.
func (c BusinessCandidate) Industry() string {
	if c.BusinessType != "" {
		return c.BusinessType
	}
	return c.Name
}
