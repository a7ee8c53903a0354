package controllers

import (
	"context"
	"fmt"
	"io"

	"dashboard/src/catalog"
	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/xuri/excelize/v2"
)

func (c *Controller) GetIndicators() catalog.IndicatorCatalog {
	return c.Indicators
}

func (c *Controller) GetCountries() catalog.CountryCatalog {
	return c.Countries
}

// GetDashboard runs the full pipeline for one selection. Resolver failures
// are boundary violations and propagate to the caller; fetch failures
// degrade into a response with HasData false, an empty table, and the
// user-visible message, so the render path never faults on missing data.
func (c *Controller) GetDashboard(ctx context.Context, selection schemas.Selection) (*schemas.DashboardResponse, error) {
	indicator, table, years, err := c.runPipeline(ctx, selection)
	if err != nil {
		return nil, err
	}

	response := &schemas.DashboardResponse{
		Selection: selection,
		Rows:      table,
	}
	charts := c.ChartService.BuildDashboard(table, indicator, years)
	if charts == nil {
		response.Error = fmt.Sprintf("could not load data: %s", indicator.Code)
		return response, nil
	}
	response.HasData = true
	response.Charts = charts
	return response, nil
}

// GetDashboardCSV exports the selection's full table as CSV bytes plus the
// download filename.
func (c *Controller) GetDashboardCSV(ctx context.Context, selection schemas.Selection) ([]byte, string, error) {
	indicator, table, _, err := c.runPipeline(ctx, selection)
	if err != nil {
		return nil, "", err
	}
	payload, err := c.ExportService.ExportCSV(table)
	if err != nil {
		return nil, "", err
	}
	return payload, fmt.Sprintf("%s.csv", indicator.Code), nil
}

// GetDashboardXLSX exports the selection's table as a workbook with chart
// sheets plus the download filename.
func (c *Controller) GetDashboardXLSX(ctx context.Context, selection schemas.Selection) (*excelize.File, string, error) {
	indicator, table, _, err := c.runPipeline(ctx, selection)
	if err != nil {
		return nil, "", err
	}
	file, err := c.ExportService.ExportXLSX(table, indicator.Name)
	if err != nil {
		return nil, "", err
	}
	return file, fmt.Sprintf("%s.xlsx", indicator.Code), nil
}

// RenderDashboardHTML writes the selection's charts as an HTML page.
func (c *Controller) RenderDashboardHTML(ctx context.Context, selection schemas.Selection, w io.Writer) error {
	indicator, table, years, err := c.runPipeline(ctx, selection)
	if err != nil {
		return err
	}
	charts := c.ChartService.BuildDashboard(table, indicator, years)
	if charts == nil {
		return utils.NotFound(fmt.Sprintf("could not load data: %s", indicator.Code))
	}
	return c.ChartService.RenderDashboardHTML(w, charts)
}

// runPipeline resolves the selection and fetches its table. A fetch failure
// is logged and swallowed here: the indicator and an empty table come back
// so callers can produce an explicit no-data state.
func (c *Controller) runPipeline(ctx context.Context, selection schemas.Selection) (catalog.Indicator, schemas.ObservationTable, catalog.YearRange, error) {
	years := catalog.YearRange{Start: selection.StartYear, End: selection.EndYear}

	indicator, err := catalog.ResolveIndicator(selection.Indicator, c.Indicators)
	if err != nil {
		return catalog.Indicator{}, nil, years, err
	}
	countryCodes, err := catalog.ResolveCountries(selection.Countries, c.Countries)
	if err != nil {
		return catalog.Indicator{}, nil, years, err
	}
	if err := years.Validate(); err != nil {
		return catalog.Indicator{}, nil, years, utils.UnprocessableEntity(err.Error())
	}

	table, err := c.IndicatorService.GetObservations(ctx, indicator, countryCodes, years)
	if err != nil {
		logger := utils.LoggerFromContext(ctx)
		logger.WithField("indicator", indicator.Code).Warning(err)
	}
	return indicator, table, years, nil
}
