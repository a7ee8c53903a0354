package services_test

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"dashboard/src/schemas"
	"dashboard/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportTable() schemas.ObservationTable {
	return schemas.ObservationTable{
		{Indicator: "CO2 emissions (kt)", Country: "Canada", CountryISO3: "CAN", Date: "2019", Value: fptr(571680), Decimal: 1},
		{Indicator: "CO2 emissions (kt)", Country: "Japan", CountryISO3: "JPN", Date: "2019", Value: nil, Decimal: 1},
		{Indicator: "CO2 emissions (kt)", Country: "Canada", CountryISO3: "CAN", Date: "2020", Value: fptr(536550.5), Decimal: 1},
	}
}

func TestExportCSV(t *testing.T) {
	es := services.NewExportService()

	t.Run("round-trips the full table", func(t *testing.T) {
		table := exportTable()
		payload, err := es.ExportCSV(table)
		require.NoError(t, err)

		reader := csv.NewReader(bytes.NewReader(payload))
		rows, err := reader.ReadAll()
		require.NoError(t, err)

		require.Len(t, rows, len(table)+1, "header plus every row, not just the latest year")
		assert.Equal(t, []string{"indicator", "country", "countryiso3code", "date", "value", "unit", "obs_status", "decimal"}, rows[0])

		for i, row := range table {
			got := rows[i+1]
			assert.Equal(t, row.Indicator, got[0])
			assert.Equal(t, row.Country, got[1])
			assert.Equal(t, row.CountryISO3, got[2])
			assert.Equal(t, row.Date, got[3])
			if row.Value == nil {
				assert.Equal(t, "", got[4])
			} else {
				parsed, err := strconv.ParseFloat(got[4], 64)
				require.NoError(t, err)
				assert.Equal(t, *row.Value, parsed)
			}
		}
	})

	t.Run("memoizes by table content", func(t *testing.T) {
		es := services.NewExportService()
		first, err := es.ExportCSV(exportTable())
		require.NoError(t, err)
		// A fresh but equal table hits the same cache entry
		second, err := es.ExportCSV(exportTable())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty table exports only the header", func(t *testing.T) {
		payload, err := es.ExportCSV(schemas.ObservationTable{})
		require.NoError(t, err)

		reader := csv.NewReader(bytes.NewReader(payload))
		rows, err := reader.ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}

func TestExportXLSX(t *testing.T) {
	es := services.NewExportService()

	t.Run("writes the data sheet and snapshot chart sheets", func(t *testing.T) {
		file, err := es.ExportXLSX(exportTable(), "CO2 emissions (kt)")
		require.NoError(t, err)

		sheets := file.GetSheetList()
		assert.Contains(t, sheets, "Data")
		assert.Contains(t, sheets, "Snapshot")
		assert.Contains(t, sheets, "Snapshot - Pie Chart")
		assert.Contains(t, sheets, "Snapshot - Bar Chart")

		rows, err := file.GetRows("Data")
		require.NoError(t, err)
		require.Len(t, rows, len(exportTable())+1)

		snapshotRows, err := file.GetRows("Snapshot")
		require.NoError(t, err)
		// Header plus the single 2020 row; the nil 2019 value is skipped
		require.Len(t, snapshotRows, 2)
		assert.Equal(t, "Canada", snapshotRows[1][0])
	})

	t.Run("empty table still produces a workbook", func(t *testing.T) {
		file, err := es.ExportXLSX(schemas.ObservationTable{}, "CO2 emissions (kt)")
		require.NoError(t, err)
		assert.Contains(t, file.GetSheetList(), "Data")
	})
}
