package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dashboard/src/catalog"
	"dashboard/src/clients/worldbank"
	"dashboard/src/services"
	"dashboard/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WorldBankClientMock serves canned responses and counts calls so the tests
// can observe memoization.
type WorldBankClientMock struct {
	Calls    int
	Response *worldbank.GetObservationsResponse
	Err      error
}

func (m *WorldBankClientMock) GetObservations(_ context.Context, indicatorCode, countryCodes, dateFilter string) (*worldbank.GetObservationsResponse, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func fptr(v float64) *float64 {
	return &v
}

func record(country, iso3, date string, value *float64) worldbank.ObservationRecord {
	return worldbank.ObservationRecord{
		Indicator:   worldbank.Ref{ID: "EN.ATM.CO2E.KT", Value: "CO2 emissions (kt)"},
		Country:     worldbank.Ref{ID: iso3[:2], Value: country},
		CountryISO3: iso3,
		Date:        date,
		Value:       value,
		Decimal:     1,
	}
}

var testIndicator = catalog.Indicator{Name: "CO2 emissions (kt)", Code: "EN.ATM.CO2E.KT", PresentAsShare: true}

func TestGetObservations(t *testing.T) {
	years := catalog.YearRange{Start: 1990, End: 2020}

	t.Run("flattens nested records and sorts ascending by date", func(t *testing.T) {
		mock := &WorldBankClientMock{
			Response: &worldbank.GetObservationsResponse{
				Observations: []worldbank.ObservationRecord{
					record("Canada", "CAN", "2020", fptr(536550)),
					record("Canada", "CAN", "2019", fptr(571680)),
					record("Japan", "JPN", "2019", fptr(1071340)),
					record("Japan", "JPN", "2020", fptr(1041960)),
				},
			},
		}
		service := services.NewIndicatorService(mock)

		table, err := service.GetObservations(context.Background(), testIndicator, []string{"can", "jpn"}, years)
		require.NoError(t, err)
		require.Len(t, table, 4)

		for i := 1; i < len(table); i++ {
			assert.LessOrEqual(t, table[i-1].Date, table[i].Date)
		}
		// The sort is stable: rows sharing a date keep their response order.
		assert.Equal(t, "Canada", table[0].Country)
		assert.Equal(t, "Japan", table[1].Country)
		assert.Equal(t, "2019", table[1].Date)
		assert.Equal(t, "CO2 emissions (kt)", table[0].Indicator)
	})

	t.Run("memoizes by exact input parameters", func(t *testing.T) {
		mock := &WorldBankClientMock{
			Response: &worldbank.GetObservationsResponse{
				Observations: []worldbank.ObservationRecord{record("Canada", "CAN", "2020", fptr(536550))},
			},
		}
		service := services.NewIndicatorService(mock)

		first, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.NoError(t, err)
		second, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.NoError(t, err)

		assert.Equal(t, 1, mock.Calls, "identical parameters must not issue a second request")
		assert.Equal(t, first, second)

		// A different parameter is a different key
		_, err = service.GetObservations(context.Background(), testIndicator, []string{"can", "jpn"}, years)
		require.NoError(t, err)
		assert.Equal(t, 2, mock.Calls)
	})

	t.Run("cache invalidation forces a refetch", func(t *testing.T) {
		mock := &WorldBankClientMock{
			Response: &worldbank.GetObservationsResponse{
				Observations: []worldbank.ObservationRecord{record("Canada", "CAN", "2020", fptr(536550))},
			},
		}
		service := services.NewIndicatorService(mock)

		_, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.NoError(t, err)
		service.InvalidateCache()
		_, err = service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.NoError(t, err)

		assert.Equal(t, 2, mock.Calls)
	})

	t.Run("fetch failure yields an empty table and the error", func(t *testing.T) {
		mock := &WorldBankClientMock{Err: fmt.Errorf("%w: connection refused", utils.ErrNetwork)}
		service := services.NewIndicatorService(mock)

		table, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrNetwork))
		assert.NotNil(t, table)
		assert.Empty(t, table)
	})

	t.Run("failures are not memoized", func(t *testing.T) {
		mock := &WorldBankClientMock{Err: fmt.Errorf("%w: connection refused", utils.ErrNetwork)}
		service := services.NewIndicatorService(mock)

		_, _ = service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		_, _ = service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		assert.Equal(t, 2, mock.Calls)
	})

	t.Run("zero observations is an empty-result error", func(t *testing.T) {
		mock := &WorldBankClientMock{Response: &worldbank.GetObservationsResponse{}}
		service := services.NewIndicatorService(mock)

		table, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, years)
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrEmptyResult))
		assert.Empty(t, table)
	})

	t.Run("invalid year range never reaches the client", func(t *testing.T) {
		mock := &WorldBankClientMock{}
		service := services.NewIndicatorService(mock)

		_, err := service.GetObservations(context.Background(), testIndicator, []string{"can"}, catalog.YearRange{Start: 2020, End: 1990})
		require.Error(t, err)
		assert.Equal(t, 0, mock.Calls)
	})
}
