// Package sheet reads the input spreadsheet and writes the enriched
// output spreadsheet.
package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"threadstats/internal/models"
)

// ErrMissingColumns indicates the input sheet lacks required columns.
var ErrMissingColumns = errors.New("missing required columns")

// Required input column headers, matched literally.
const (
	ColumnURL     = "URL"
	ColumnTraffic = "Traffic with commercial intents in top 20"
)

// ReadInput reads the first sheet of the xlsx file at path into an
// ordered slice of InputRecord. The header row must contain the URL
// and traffic columns; beyond that, rows pass through unvalidated
// (blank URLs survive, unparseable traffic cells carry 0).
func ReadInput(path string) ([]models.InputRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string

	for _, required := range []string{ColumnURL, ColumnTraffic} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	urlIdx := index[ColumnURL]
	trafficIdx := index[ColumnTraffic]

	records := make([]models.InputRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := models.InputRecord{
			URL: cellAt(row, urlIdx),
		}

		if raw := cellAt(row, trafficIdx); raw != "" {
			if value, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
				record.Traffic = value
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// cellAt returns the cell at idx, tolerating the short rows excelize
// produces when trailing cells are empty.
func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}

	return ""
}
