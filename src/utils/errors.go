package utils

import "errors"

// Failure taxonomy for the dashboard pipeline. Fetch-layer errors are caught
// at the handler boundary and surfaced as a user-visible no-data state
// instead of propagating into chart construction.
var (
	ErrNetwork           = errors.New("network error reaching indicator API")
	ErrMalformedResponse = errors.New("malformed indicator API response")
	ErrEmptyResult       = errors.New("indicator API returned no observations")
	ErrUnknownIndicator  = errors.New("unknown indicator")
	ErrUnknownCountry    = errors.New("unknown country")
)
