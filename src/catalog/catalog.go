package catalog

import (
	"fmt"
	"strings"

	"dashboard/src/utils"
)

// Indicator is one entry of the indicator catalog. PresentAsShare marks
// metrics whose latest-year snapshot reads as a share of a whole (absolute
// magnitudes like total emissions); those render as a pie instead of a
// ranked bar chart.
type Indicator struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	PresentAsShare bool   `json:"presentAsShare"`
}

// Country is one entry of the country catalog. Code is the 3-letter code
// used by the World Bank API.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// IndicatorCatalog is an ordered set of indicators with unique names. Order
// defines the default indicator.
type IndicatorCatalog []Indicator

// CountryCatalog is an ordered set of countries with unique names.
type CountryCatalog []Country

// YearRange bounds a request to the indicator API, inclusive on both ends.
type YearRange struct {
	Start int
	End   int
}

func (yr YearRange) Validate() error {
	if yr.Start > yr.End {
		return fmt.Errorf("invalid year range %d:%d: start after end", yr.Start, yr.End)
	}
	return nil
}

// DateFilter renders the range in the start:end form the API expects.
func (yr YearRange) DateFilter() string {
	return fmt.Sprintf("%d:%d", yr.Start, yr.End)
}

// DefaultIndicators holds the indicators the dashboard ships with.
var DefaultIndicators = IndicatorCatalog{
	{Name: "CO2 emissions (kt)", Code: "EN.ATM.CO2E.KT", PresentAsShare: true},
	{Name: "CO2 emissions (metric tons per capita)", Code: "EN.ATM.CO2E.PC"},
}

// DefaultCountries holds the top 10 world economies the dashboard ships with.
var DefaultCountries = CountryCatalog{
	{Name: "Canada", Code: "CAN"},
	{Name: "United States", Code: "USA"},
	{Name: "Brazil", Code: "BRA"},
	{Name: "France", Code: "FRA"},
	{Name: "India", Code: "IND"},
	{Name: "Italy", Code: "ITA"},
	{Name: "Germany", Code: "DEU"},
	{Name: "United Kingdom", Code: "GBR"},
	{Name: "China", Code: "CHN"},
	{Name: "Japan", Code: "JPN"},
}

// DefaultYears is the year range used when a request does not narrow it.
var DefaultYears = YearRange{Start: 1990, End: 2020}

// Default returns the first catalog entry, which defines the default
// indicator of the selection surface.
func (c IndicatorCatalog) Default() Indicator {
	return c[0]
}

// ResolveIndicator looks up an indicator by its display name. The name comes
// across the UI trust boundary, so a miss is reported instead of assumed
// impossible.
func ResolveIndicator(name string, c IndicatorCatalog) (Indicator, error) {
	for _, indicator := range c {
		if indicator.Name == name {
			return indicator, nil
		}
	}
	return Indicator{}, fmt.Errorf("%w: %q", utils.ErrUnknownIndicator, name)
}

// ResolveCountries maps the selected country names to lower-cased API codes
// in catalog order, so equal selections always produce the same code list
// and therefore the same cache key. An empty selection means all catalog
// countries.
func ResolveCountries(selected []string, c CountryCatalog) ([]string, error) {
	if len(selected) == 0 {
		codes := make([]string, 0, len(c))
		for _, country := range c {
			codes = append(codes, strings.ToLower(country.Code))
		}
		return codes, nil
	}

	wanted := make(map[string]bool, len(selected))
	for _, name := range selected {
		wanted[name] = true
	}
	codes := make([]string, 0, len(selected))
	matched := 0
	for _, country := range c {
		if wanted[country.Name] {
			codes = append(codes, strings.ToLower(country.Code))
			matched++
		}
	}
	if matched != len(wanted) {
		for _, name := range selected {
			if _, err := resolveCountry(name, c); err != nil {
				return nil, err
			}
		}
	}
	return codes, nil
}

func resolveCountry(name string, c CountryCatalog) (Country, error) {
	for _, country := range c {
		if country.Name == name {
			return country, nil
		}
	}
	return Country{}, fmt.Errorf("%w: %q", utils.ErrUnknownCountry, name)
}
