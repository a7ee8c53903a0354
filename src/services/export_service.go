package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"dashboard/src/schemas"
	"dashboard/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// csvHeader lists every observation field, in the column order of the
// download.
var csvHeader = []string{"indicator", "country", "countryiso3code", "date", "value", "unit", "obs_status", "decimal"}

type ExportServiceI interface {
	ExportCSV(table schemas.ObservationTable) ([]byte, error)
	ExportXLSX(table schemas.ObservationTable, label string) (*excelize.File, error)
}

// ExportService serializes an observation table for download. CSV payloads
// are memoized by table content so repeated renders of unchanged data do
// not recompute the bytes.
type ExportService struct {
	csvCache *utils.KeyedCache[[]byte]
}

func NewExportService() *ExportService {
	return &ExportService{
		csvCache: utils.NewKeyedCache[[]byte](),
	}
}

// ExportCSV serializes the full table (not the latest-year view) to
// comma-delimited UTF-8 with a header row.
func (es *ExportService) ExportCSV(table schemas.ObservationTable) ([]byte, error) {
	key := tableFingerprint(table)
	if payload, found := es.csvCache.Get(key); found {
		return payload, nil
	}

	// gota rejects a header-only record set
	if len(table) == 0 {
		return []byte(strings.Join(csvHeader, ",") + "\n"), nil
	}

	records := make([][]string, 0, len(table)+1)
	records = append(records, csvHeader)
	for _, row := range table {
		records = append(records, observationRecord(row))
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, df.Err
	}

	var buffer bytes.Buffer
	if err := df.WriteCSV(&buffer); err != nil {
		return nil, err
	}

	payload := buffer.Bytes()
	es.csvCache.Set(key, payload)
	return payload, nil
}

// ExportXLSX writes the table to a workbook: the raw data sheet, a
// latest-year snapshot sheet, and native pie and bar chart sheets built
// from the snapshot.
func (es *ExportService) ExportXLSX(table schemas.ObservationTable, label string) (*excelize.File, error) {
	file := excelize.NewFile()

	const dataSheet = "Data"
	if err := file.SetSheetName("Sheet1", dataSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(csvHeader))
	for i, name := range csvHeader {
		header[i] = name
	}
	if err := file.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range table {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{row.Indicator, row.Country, row.CountryISO3, row.Date, nil, row.Unit, row.ObsStatus, row.Decimal}
		if row.Value != nil {
			values[4] = *row.Value
		}
		if err := file.SetSheetRow(dataSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	if err := es.addSnapshotSheet(file, table, label); err != nil {
		return nil, err
	}
	return file, nil
}

// addSnapshotSheet writes the latest-year rows to their own sheet and adds
// one pie and one bar chart over them.
func (es *ExportService) addSnapshotSheet(file *excelize.File, table schemas.ObservationTable, label string) error {
	const snapshotSheet = "Snapshot"
	if _, err := file.NewSheet(snapshotSheet); err != nil {
		return err
	}

	snapshot := table.LatestYear()
	header := []interface{}{"country", "value"}
	if err := file.SetSheetRow(snapshotSheet, "A1", &header); err != nil {
		return err
	}
	rowCount := 0
	for _, row := range snapshot {
		if row.Value == nil {
			continue
		}
		cell := fmt.Sprintf("A%d", rowCount+2)
		values := []interface{}{row.Country, *row.Value}
		if err := file.SetSheetRow(snapshotSheet, cell, &values); err != nil {
			return err
		}
		rowCount++
	}
	if rowCount == 0 {
		return nil
	}

	categories := fmt.Sprintf("%s!$A$2:$A$%d", snapshotSheet, rowCount+1)
	values := fmt.Sprintf("%s!$B$2:$B$%d", snapshotSheet, rowCount+1)
	chartTitle := fmt.Sprintf("%s - Year %s", label, table.MaxDate())

	titleFont := excelize.Font{
		Bold: true,
		Size: 20,
	}

	pieChart := excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       chartTitle,
				Categories: categories,
				Values:     values,
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: chartTitle,
				Font: &titleFont,
			},
		},
		Dimension: excelize.ChartDimension{
			Width:  800,
			Height: 500,
		},
		PlotArea: excelize.ChartPlotArea{
			ShowCatName: true,
			ShowPercent: true,
		},
	}

	barChart := excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{
			{
				Name:       chartTitle,
				Categories: categories,
				Values:     values,
			},
		},
		Title: []excelize.RichTextRun{
			{
				Text: chartTitle,
				Font: &titleFont,
			},
		},
		Dimension: excelize.ChartDimension{
			Width:  800,
			Height: 500,
		},
		PlotArea: excelize.ChartPlotArea{
			ShowVal: true,
		},
	}

	for _, sheetChart := range []struct {
		name  string
		chart *excelize.Chart
	}{
		{name: "Snapshot - Pie Chart", chart: &pieChart},
		{name: "Snapshot - Bar Chart", chart: &barChart},
	} {
		if _, err := file.NewSheet(sheetChart.name); err != nil {
			return err
		}
		if err := file.AddChart(sheetChart.name, "A1", sheetChart.chart); err != nil {
			return fmt.Errorf("failed to add chart to sheet %s: %v", sheetChart.name, err)
		}
	}
	return nil
}

func observationRecord(row schemas.Observation) []string {
	value := ""
	if row.Value != nil {
		value = strconv.FormatFloat(*row.Value, 'f', -1, 64)
	}
	return []string{
		row.Indicator,
		row.Country,
		row.CountryISO3,
		row.Date,
		value,
		row.Unit,
		row.ObsStatus,
		strconv.Itoa(row.Decimal),
	}
}

// tableFingerprint hashes the rows into a cache key.
func tableFingerprint(table schemas.ObservationTable) string {
	hash := fnv.New64a()
	for _, row := range table {
		for _, field := range observationRecord(row) {
			hash.Write([]byte(field))
			hash.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%d|%x", len(table), hash.Sum64())
}
