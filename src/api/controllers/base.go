package controllers

import (
	"context"
	"io"

	"dashboard/src/catalog"
	"dashboard/src/schemas"
	"dashboard/src/services"

	"github.com/xuri/excelize/v2"
)

type IController interface {
	GetIndicators() catalog.IndicatorCatalog
	GetCountries() catalog.CountryCatalog
	GetDashboard(ctx context.Context, selection schemas.Selection) (*schemas.DashboardResponse, error)
	GetDashboardCSV(ctx context.Context, selection schemas.Selection) ([]byte, string, error)
	GetDashboardXLSX(ctx context.Context, selection schemas.Selection) (*excelize.File, string, error)
	RenderDashboardHTML(ctx context.Context, selection schemas.Selection, w io.Writer) error
}

// Controller runs the dashboard pipeline: resolve the selection against the
// catalogs, fetch the observation table, and build charts and exports.
type Controller struct {
	IndicatorService services.IndicatorServiceI
	ChartService     services.ChartServiceI
	ExportService    services.ExportServiceI
	Indicators       catalog.IndicatorCatalog
	Countries        catalog.CountryCatalog
}

func NewController(indicatorService services.IndicatorServiceI, chartService services.ChartServiceI, exportService services.ExportServiceI) *Controller {
	return &Controller{
		IndicatorService: indicatorService,
		ChartService:     chartService,
		ExportService:    exportService,
		Indicators:       catalog.DefaultIndicators,
		Countries:        catalog.DefaultCountries,
	}
}
