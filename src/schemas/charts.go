package schemas

// Chart types produced by the chart builder.
const (
	ChartTypeLine = "line"
	ChartTypePie  = "pie"
	ChartTypeBar  = "bar"
)

// ColorAssignment maps each country present in a table to a palette color.
// It is recomputed whenever the country set changes so all charts of one
// render agree.
type ColorAssignment map[string]string

// ChartSeries holds one line of a time series chart, aligned with the
// spec's XAxis dates. Nil entries are years without a measurement.
type ChartSeries struct {
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Data  []*float64 `json:"data"`
}

// ChartItem holds one segment of a pie chart or one bar of a ranked bar
// chart.
type ChartItem struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ChartSpec describes one chart of the dashboard. Line specs fill XAxis and
// Series; pie and bar specs fill Items.
type ChartSpec struct {
	Type       string        `json:"type"`
	Title      string        `json:"title"`
	ShowLegend bool          `json:"showLegend"`
	XAxis      []string      `json:"xAxis,omitempty"`
	Series     []ChartSeries `json:"series,omitempty"`
	Items      []ChartItem   `json:"items,omitempty"`
}

// DashboardCharts is the chart set of one render: the latest-year snapshot
// (pie or bar, per the indicator's PresentAsShare flag) and the time series.
type DashboardCharts struct {
	Snapshot   ChartSpec `json:"snapshot"`
	Timeseries ChartSpec `json:"timeseries"`
}

// DashboardResponse is the full pipeline result for one selection. On fetch
// failure HasData is false, Error carries the user-visible message, and Rows
// is an explicit empty table; the render path never sees an error state it
// has to guess about.
type DashboardResponse struct {
	Selection Selection        `json:"selection"`
	HasData   bool             `json:"hasData"`
	Error     string           `json:"error,omitempty"`
	Rows      ObservationTable `json:"rows"`
	Charts    *DashboardCharts `json:"charts,omitempty"`
}
