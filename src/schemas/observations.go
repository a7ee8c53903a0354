package schemas

// Observation is one flattened (country, indicator, year) measurement as
// returned by the fetch pipeline. Value is nil when the API reported no
// measurement for that year.
type Observation struct {
	Indicator   string   `json:"indicator"`
	Country     string   `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
	Unit        string   `json:"unit"`
	ObsStatus   string   `json:"obs_status"`
	Decimal     int      `json:"decimal"`
}

// ObservationTable is an observation sequence sorted ascending by date. It
// is never mutated after the fetch pipeline returns it; chart builders only
// take filtered views of it.
type ObservationTable []Observation

// Countries returns the distinct country names of the table in first-seen
// order. Color assignment depends on this order being stable.
func (t ObservationTable) Countries() []string {
	seen := make(map[string]bool, len(t))
	countries := make([]string, 0)
	for _, row := range t {
		if !seen[row.Country] {
			seen[row.Country] = true
			countries = append(countries, row.Country)
		}
	}
	return countries
}

// MaxDate returns the latest date present in the table, or "" when empty.
func (t ObservationTable) MaxDate() string {
	maxDate := ""
	for _, row := range t {
		if row.Date > maxDate {
			maxDate = row.Date
		}
	}
	return maxDate
}

// LatestYear returns the rows at the table's maximum date.
func (t ObservationTable) LatestYear() ObservationTable {
	maxDate := t.MaxDate()
	if maxDate == "" {
		return ObservationTable{}
	}
	snapshot := make(ObservationTable, 0, len(t))
	for _, row := range t {
		if row.Date == maxDate {
			snapshot = append(snapshot, row)
		}
	}
	return snapshot
}

// Selection is one user interaction's worth of dashboard parameters. An
// empty Countries slice means every catalog country.
type Selection struct {
	Indicator string   `json:"indicator" validate:"required"`
	Countries []string `json:"countries"`
	StartYear int      `json:"startYear" validate:"ltefield=EndYear"`
	EndYear   int      `json:"endYear"`
}
