package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"dashboard/src/catalog"
	"dashboard/src/clients/worldbank"
	"dashboard/src/schemas"
	"dashboard/src/utils"
)

type IndicatorServiceI interface {
	GetObservations(ctx context.Context, indicator catalog.Indicator, countryCodes []string, years catalog.YearRange) (schemas.ObservationTable, error)
	InvalidateCache()
}

// IndicatorService fetches an indicator time series through the World Bank
// client, flattens it into an ObservationTable, and memoizes the result by
// its exact input parameters for the lifetime of the process.
type IndicatorService struct {
	client worldbank.WorldBankServiceClientI
	cache  *utils.KeyedCache[schemas.ObservationTable]
}

func NewIndicatorService(client worldbank.WorldBankServiceClientI) *IndicatorService {
	return &IndicatorService{
		client: client,
		cache:  utils.NewKeyedCache[schemas.ObservationTable](),
	}
}

// GetObservations returns the table for one resolved selection, sorted
// ascending by date. The returned table is never nil: on any fetch failure
// the caller gets an empty table together with the error, so the render
// path always has an explicit value to fall back on.
func (s *IndicatorService) GetObservations(ctx context.Context, indicator catalog.Indicator, countryCodes []string, years catalog.YearRange) (schemas.ObservationTable, error) {
	if err := years.Validate(); err != nil {
		return schemas.ObservationTable{}, err
	}

	joinedCodes := strings.Join(countryCodes, ";")
	key := cacheKey(indicator.Code, joinedCodes, years)
	if table, found := s.cache.Get(key); found {
		return table, nil
	}

	logger := utils.LoggerFromContext(ctx)
	response, err := s.client.GetObservations(ctx, indicator.Code, joinedCodes, years.DateFilter())
	if err != nil {
		logger.WithField("indicator", indicator.Code).Warning("could not load data: ", err)
		return schemas.ObservationTable{}, err
	}
	if len(response.Observations) == 0 {
		return schemas.ObservationTable{}, fmt.Errorf("%w: %s %s", utils.ErrEmptyResult, indicator.Code, years.DateFilter())
	}

	table := flattenObservations(response.Observations)
	s.cache.Set(key, table)
	return table, nil
}

// InvalidateCache drops every memoized table. There is no automatic
// expiration; this is the explicit invalidation boundary.
func (s *IndicatorService) InvalidateCache() {
	s.cache.Clear()
}

func cacheKey(indicatorCode, joinedCodes string, years catalog.YearRange) string {
	return fmt.Sprintf("%s|%s|%s", indicatorCode, joinedCodes, years.DateFilter())
}

// flattenObservations replaces the nested indicator and country objects of
// each record with their display names and sorts the rows ascending by
// date, mirroring the shape the chart builders expect.
func flattenObservations(records []worldbank.ObservationRecord) schemas.ObservationTable {
	table := make(schemas.ObservationTable, 0, len(records))
	for _, record := range records {
		table = append(table, schemas.Observation{
			Indicator:   record.Indicator.Value,
			Country:     record.Country.Value,
			CountryISO3: record.CountryISO3,
			Date:        record.Date,
			Value:       record.Value,
			Unit:        record.Unit,
			ObsStatus:   record.ObsStatus,
			Decimal:     record.Decimal,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Date < table[j].Date
	})
	return table
}
