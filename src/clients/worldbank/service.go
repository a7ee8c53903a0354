package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"dashboard/src/config"
	"dashboard/src/utils"
	"dashboard/src/utils/requests"
)

const perPage = "1000"

type WorldBankServiceClientI interface {
	GetObservations(ctx context.Context, indicatorCode, countryCodes, dateFilter string) (*GetObservationsResponse, error)
}

type WorldBankServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of WorldBankServiceClient
func NewClient(cfg *config.Config) *WorldBankServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.WorldBank.TimeoutSeconds) * time.Second)
	return &WorldBankServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.WorldBank.BaseURL,
	}
}

// GetObservations fetches one indicator for a set of countries and a year
// range. countryCodes is the lower-cased ";"-joined code list and dateFilter
// the "start:end" year range, both exactly as the API expects them.
func (c *WorldBankServiceClient) GetObservations(ctx context.Context, indicatorCode, countryCodes, dateFilter string) (*GetObservationsResponse, error) {
	endpoint := fmt.Sprintf("%s/countries/%s/indicators/%s", c.BaseURL, countryCodes, indicatorCode)

	params := url.Values{}
	params.Add("date", dateFilter)
	params.Add("per_page", perPage)
	params.Add("format", "json")

	// Make the GET request, single attempt, no retry
	resp, err := c.API.Get(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", utils.ErrNetwork, resp.Status)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrNetwork, err)
	}

	return parseObservationsPayload(responseBody)
}

// parseObservationsPayload decodes the two-element array payload. The first
// element is pagination metadata; the second holds the observation records.
// Error documents from the API arrive as a one-element array, which lands in
// the missing-second-element branch.
func parseObservationsPayload(body []byte) (*GetObservationsResponse, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedResponse, err)
	}
	if len(elements) < 2 {
		return nil, fmt.Errorf("%w: missing observations element", utils.ErrMalformedResponse)
	}

	var observationsResponse GetObservationsResponse
	if err := json.Unmarshal(elements[0], &observationsResponse.Metadata); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedResponse, err)
	}
	if err := json.Unmarshal(elements[1], &observationsResponse.Observations); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedResponse, err)
	}

	return &observationsResponse, nil
}
