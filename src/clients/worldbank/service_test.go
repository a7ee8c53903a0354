package worldbank_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashboard/src/clients/worldbank"
	"dashboard/src/config"
	"dashboard/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const observationsPayload = `[
  {"page": 1, "pages": 1, "per_page": "1000", "total": 4, "lastupdated": "2024-05-21"},
  [
    {"indicator": {"id": "EN.ATM.CO2E.KT", "value": "CO2 emissions (kt)"},
     "country": {"id": "CA", "value": "Canada"}, "countryiso3code": "CAN",
     "date": "2020", "value": 536550.0, "unit": "", "obs_status": "", "decimal": 1},
    {"indicator": {"id": "EN.ATM.CO2E.KT", "value": "CO2 emissions (kt)"},
     "country": {"id": "JP", "value": "Japan"}, "countryiso3code": "JPN",
     "date": "2020", "value": 1041960.0, "unit": "", "obs_status": "", "decimal": 1},
    {"indicator": {"id": "EN.ATM.CO2E.KT", "value": "CO2 emissions (kt)"},
     "country": {"id": "CA", "value": "Canada"}, "countryiso3code": "CAN",
     "date": "2019", "value": 571680.0, "unit": "", "obs_status": "", "decimal": 1},
    {"indicator": {"id": "EN.ATM.CO2E.KT", "value": "CO2 emissions (kt)"},
     "country": {"id": "JP", "value": "Japan"}, "countryiso3code": "JPN",
     "date": "2019", "value": null, "unit": "", "obs_status": "", "decimal": 1}
  ]
]`

func newTestClient(handler http.HandlerFunc) (*worldbank.WorldBankServiceClient, *httptest.Server) {
	ts := httptest.NewServer(handler)
	cfg := &config.Config{}
	cfg.ExternalClients.WorldBank.BaseURL = ts.URL
	cfg.ExternalClients.WorldBank.TimeoutSeconds = 5
	return worldbank.NewClient(cfg), ts
}

func TestGetObservations(t *testing.T) {
	t.Run("decodes the two-element payload", func(t *testing.T) {
		var gotPath, gotQuery string
		client, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(observationsPayload))
		})
		defer ts.Close()

		result, err := client.GetObservations(context.Background(), "EN.ATM.CO2E.KT", "can;jpn", "1990:2020")
		require.NoError(t, err)

		assert.Equal(t, "/countries/can;jpn/indicators/EN.ATM.CO2E.KT", gotPath)
		assert.Contains(t, gotQuery, "date=1990%3A2020")
		assert.Contains(t, gotQuery, "per_page=1000")
		assert.Contains(t, gotQuery, "format=json")

		assert.Equal(t, 4, result.Metadata.Total)
		require.Len(t, result.Observations, 4)
		assert.Equal(t, "Canada", result.Observations[0].Country.Value)
		assert.Equal(t, "CO2 emissions (kt)", result.Observations[0].Indicator.Value)
		require.NotNil(t, result.Observations[0].Value)
		assert.Equal(t, 536550.0, *result.Observations[0].Value)
		assert.Nil(t, result.Observations[3].Value, "missing measurements stay nil")
	})

	t.Run("one-element error document is a malformed response", func(t *testing.T) {
		client, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"message":[{"id":"120","value":"The indicator was not found."}]}]`))
		})
		defer ts.Close()

		_, err := client.GetObservations(context.Background(), "NOPE", "can", "1990:2020")
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrMalformedResponse))
	})

	t.Run("non-JSON body is a malformed response", func(t *testing.T) {
		client, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		})
		defer ts.Close()

		_, err := client.GetObservations(context.Background(), "EN.ATM.CO2E.KT", "can", "1990:2020")
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrMalformedResponse))
	})

	t.Run("non-2xx status is a network error", func(t *testing.T) {
		client, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream broken", http.StatusBadGateway)
		})
		defer ts.Close()

		_, err := client.GetObservations(context.Background(), "EN.ATM.CO2E.KT", "can", "1990:2020")
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNetwork))
	})

	t.Run("unreachable host is a network error", func(t *testing.T) {
		client, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		ts.Close()

		_, err := client.GetObservations(context.Background(), "EN.ATM.CO2E.KT", "can", "1990:2020")
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNetwork))
	})
}
