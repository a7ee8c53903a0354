package services

import (
	"fmt"
	"io"
	"sort"

	"dashboard/src/catalog"
	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type ChartServiceI interface {
	AssignColors(countries []string) schemas.ColorAssignment
	BuildLineChart(table schemas.ObservationTable, colors schemas.ColorAssignment, label string, years catalog.YearRange) schemas.ChartSpec
	BuildLatestYearShare(table schemas.ObservationTable, colors schemas.ColorAssignment, label string) schemas.ChartSpec
	BuildLatestYearRanked(table schemas.ObservationTable, colors schemas.ColorAssignment, label string) schemas.ChartSpec
	BuildDashboard(table schemas.ObservationTable, indicator catalog.Indicator, years catalog.YearRange) *schemas.DashboardCharts
	RenderDashboardHTML(w io.Writer, dashboardCharts *schemas.DashboardCharts) error
}

// ChartService turns one observation table into the chart specifications of
// a single render. All three charts share one color assignment so a country
// keeps its color across views.
type ChartService struct{}

func NewChartService() *ChartService {
	return &ChartService{}
}

// AssignColors maps each country to a palette color in first-seen order,
// cycling the palette when countries outnumber it. Equal country orders
// always produce equal assignments.
func (cs *ChartService) AssignColors(countries []string) schemas.ColorAssignment {
	colors := make(schemas.ColorAssignment, len(countries))
	for i, country := range countries {
		colors[country] = utils.GetChartColor(i)
	}
	return colors
}

// BuildLineChart builds the time series view: one line per country, x =
// date, y = value, x gridlines suppressed.
func (cs *ChartService) BuildLineChart(table schemas.ObservationTable, colors schemas.ColorAssignment, label string, years catalog.YearRange) schemas.ChartSpec {
	dates := distinctDates(table)

	valuesByCountry := make(map[string]map[string]*float64)
	for _, row := range table {
		if valuesByCountry[row.Country] == nil {
			valuesByCountry[row.Country] = make(map[string]*float64)
		}
		valuesByCountry[row.Country][row.Date] = row.Value
	}

	seriesList := make([]schemas.ChartSeries, 0, len(valuesByCountry))
	for _, country := range table.Countries() {
		data := make([]*float64, len(dates))
		for i, date := range dates {
			data[i] = valuesByCountry[country][date]
		}
		seriesList = append(seriesList, schemas.ChartSeries{
			Name:  country,
			Color: colors[country],
			Data:  data,
		})
	}

	return schemas.ChartSpec{
		Type:       schemas.ChartTypeLine,
		Title:      fmt.Sprintf("%s - Year %d to %d", label, years.Start, years.End),
		ShowLegend: true,
		XAxis:      dates,
		Series:     seriesList,
	}
}

// BuildLatestYearShare builds the pie view over the rows at the table's
// maximum date. Segments carry percent+name labels, so the legend is
// redundant and stays hidden. Rows without a value are skipped.
func (cs *ChartService) BuildLatestYearShare(table schemas.ObservationTable, colors schemas.ColorAssignment, label string) schemas.ChartSpec {
	snapshot := table.LatestYear()

	total := 0.0
	for _, row := range snapshot {
		if row.Value != nil {
			total += *row.Value
		}
	}

	items := make([]schemas.ChartItem, 0, len(snapshot))
	for _, row := range snapshot {
		if row.Value == nil {
			continue
		}
		percent := 0.0
		if total != 0 {
			percent = 100 * *row.Value / total
		}
		items = append(items, schemas.ChartItem{
			Name:  row.Country,
			Color: colors[row.Country],
			Value: *row.Value,
			Label: fmt.Sprintf("%.1f%% %s", percent, row.Country),
		})
	}

	return schemas.ChartSpec{
		Type:  schemas.ChartTypePie,
		Title: fmt.Sprintf("%s - Year %s", label, table.MaxDate()),
		Items: items,
	}
}

// BuildLatestYearRanked builds the horizontal bar view over the latest-year
// rows, sorted descending by value. The numeric value renders as an outside
// label with one decimal, so axis tick labels and legend stay hidden.
func (cs *ChartService) BuildLatestYearRanked(table schemas.ObservationTable, colors schemas.ColorAssignment, label string) schemas.ChartSpec {
	snapshot := table.LatestYear()

	items := make([]schemas.ChartItem, 0, len(snapshot))
	for _, row := range snapshot {
		if row.Value == nil {
			continue
		}
		items = append(items, schemas.ChartItem{
			Name:  row.Country,
			Color: colors[row.Country],
			Value: *row.Value,
			Label: fmt.Sprintf("%.1f", *row.Value),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	return schemas.ChartSpec{
		Type:  schemas.ChartTypeBar,
		Title: fmt.Sprintf("%s - Year %s", label, table.MaxDate()),
		Items: items,
	}
}

// BuildDashboard assembles the chart set for one render: the latest-year
// snapshot as a pie for share metrics or a ranked bar otherwise, plus the
// time series. An empty table yields nil; the caller reports the explicit
// no-data state instead.
func (cs *ChartService) BuildDashboard(table schemas.ObservationTable, indicator catalog.Indicator, years catalog.YearRange) *schemas.DashboardCharts {
	if len(table) == 0 {
		return nil
	}

	colors := cs.AssignColors(table.Countries())

	var snapshot schemas.ChartSpec
	if indicator.PresentAsShare {
		snapshot = cs.BuildLatestYearShare(table, colors, indicator.Name)
	} else {
		snapshot = cs.BuildLatestYearRanked(table, colors, indicator.Name)
	}

	return &schemas.DashboardCharts{
		Snapshot:   snapshot,
		Timeseries: cs.BuildLineChart(table, colors, indicator.Name, years),
	}
}

// RenderDashboardHTML renders the chart set as a self-contained HTML page.
func (cs *ChartService) RenderDashboardHTML(w io.Writer, dashboardCharts *schemas.DashboardCharts) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	switch dashboardCharts.Snapshot.Type {
	case schemas.ChartTypePie:
		page.AddCharts(cs.renderPieChart(dashboardCharts.Snapshot))
	case schemas.ChartTypeBar:
		page.AddCharts(cs.renderBarChart(dashboardCharts.Snapshot))
	}
	page.AddCharts(cs.renderLineChart(dashboardCharts.Timeseries))

	return page.Render(w)
}

func (cs *ChartService) renderLineChart(spec schemas.ChartSpec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(spec.ShowLegend),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)

	line.SetXAxis(spec.XAxis)
	for _, chartSeries := range spec.Series {
		data := make([]opts.LineData, 0, len(chartSeries.Data))
		for _, value := range chartSeries.Data {
			if value == nil {
				data = append(data, opts.LineData{Value: nil})
				continue
			}
			data = append(data, opts.LineData{Value: *value})
		}
		line.AddSeries(chartSeries.Name, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: chartSeries.Color,
			}),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(false),
			}),
		)
	}
	return line
}

func (cs *ChartService) renderPieChart(spec schemas.ChartSpec) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)

	pieData := make([]opts.PieData, 0, len(spec.Items))
	for _, item := range spec.Items {
		pieData = append(pieData, opts.PieData{
			Name:  item.Name,
			Value: item.Value,
			ItemStyle: &opts.ItemStyle{
				Color: item.Color,
			},
		})
	}
	pie.AddSeries("", pieData,
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"30%", "60%"},
		}),
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{d}% {b}",
		}),
	)
	return pie
}

func (cs *ChartService) renderBarChart(spec schemas.ChartSpec) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		// Tick labels duplicate the bar labels, keep them off
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{
				Show: opts.Bool(false),
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1100px",
			Height: "600px",
		}),
	)

	// Ranked descending; reverse so the largest bar renders on top once the
	// axes are flipped
	names := make([]string, 0, len(spec.Items))
	barData := make([]opts.BarData, 0, len(spec.Items))
	for i := len(spec.Items) - 1; i >= 0; i-- {
		item := spec.Items[i]
		names = append(names, item.Name)
		barData = append(barData, opts.BarData{
			Value: item.Value,
			ItemStyle: &opts.ItemStyle{
				Color: item.Color,
			},
			// Literal formatter shows the precomputed one-decimal label
			Label: &opts.Label{
				Show:      opts.Bool(true),
				Position:  "right",
				Formatter: item.Label,
			},
		})
	}
	bar.SetXAxis(names).AddSeries("", barData)
	bar.XYReversal()
	return bar
}

func distinctDates(table schemas.ObservationTable) []string {
	seen := make(map[string]bool, len(table))
	dates := make([]string, 0)
	for _, row := range table {
		if !seen[row.Date] {
			seen[row.Date] = true
			dates = append(dates, row.Date)
		}
	}
	return dates
}
