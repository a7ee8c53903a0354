package worldbank

import "encoding/json"

// PageMetadata is the first element of the two-element response payload.
// The dashboard requests everything in one page, so it is decoded and
// otherwise ignored.
type PageMetadata struct {
	Page        int         `json:"page"`
	Pages       int         `json:"pages"`
	PerPage     json.Number `json:"per_page"`
	Total       int         `json:"total"`
	LastUpdated string      `json:"lastupdated"`
}

// Ref is the nested {id, value} pair the API uses for both the indicator
// and the country of an observation.
type Ref struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// ObservationRecord is one raw per-observation record of the second payload
// element, with the indicator and country still nested.
type ObservationRecord struct {
	Indicator   Ref      `json:"indicator"`
	Country     Ref      `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	ObsStatus   string   `json:"obs_status"`
	Decimal     int      `json:"decimal"`
}

// GetObservationsResponse is the decoded two-element payload.
type GetObservationsResponse struct {
	Metadata     PageMetadata
	Observations []ObservationRecord
}
