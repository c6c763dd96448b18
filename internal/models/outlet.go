package models

// Placeholder is written to persisted rows whenever an enrichment value
// is unavailable.
const Placeholder = "N/A"

// OutletListing is a single outlet as discovered on a directory listing
// page. Immutable once extracted.
type OutletListing struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	ProfileLink string `json:"link"`
}

// PlaceDetails holds the attributes scraped from an outlet's map
// profile page. Every field defaults to empty/nil when the page does
// not expose it; extraction never fails on missing data.
type PlaceDetails struct {
	Address        string   `json:"address"`
	PhoneNumber    string   `json:"phone_number"`
	ReviewsCount   *int     `json:"reviews_count,omitempty"`
	ReviewsAverage *float64 `json:"reviews_average,omitempty"`
	Services       string   `json:"services"`
	PlaceType      string   `json:"place_type"`
	OpensAt        string   `json:"opens_at"`
}

// EnrichedOutlet is the persisted union of an OutletListing and its
// PlaceDetails after reconciliation. Absent enrichment values carry the
// Placeholder string.
type EnrichedOutlet struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	ProfileLink    string `json:"link"`
	ReviewsCount   string `json:"reviews_count"`
	ReviewsAverage string `json:"reviews_average"`
	PhoneNumber    string `json:"phone_number"`
	Services       string `json:"services"`
	PlaceType      string `json:"place_type"`
	OpensAt        string `json:"opens_at"`
}

func OutletHeader() []string {
	return []string{"name", "address", "link"}
}

func (o *OutletListing) Row() []string {
	return []string{o.Name, o.Address, o.ProfileLink}
}

func EnrichedOutletHeader() []string {
	return []string{
		"name", "address", "link",
		"reviews_count", "reviews_average", "phone_number",
		"services", "place_type", "opens_at",
	}
}

func (e *EnrichedOutlet) Row() []string {
	return []string{
		e.Name, e.Address, e.ProfileLink,
		e.ReviewsCount, e.ReviewsAverage, e.PhoneNumber,
		e.Services, e.PlaceType, e.OpensAt,
	}
}
