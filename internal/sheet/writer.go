package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"threadstats/internal/models"
)

// Output column headers, in order.
var outputColumns = []any{"url", "traffic", "comment_count"}

// WriteOutput serializes the records to an xlsx file. When path is
// already taken it falls back to the first free suffixed name
// (output.xlsx, output_1.xlsx, output_2.xlsx, ...). The path actually
// written is returned.
func WriteOutput(records []models.OutputRecord, path string) (string, error) {
	resolved := UniquePath(path, fileExists)

	f := excelize.NewFile()

	defer func() {
		_ = f.Close()
	}()

	sheetName := f.GetSheetName(0)

	if err := f.SetSheetRow(sheetName, "A1", &outputColumns); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to compute cell name: %w", err)
		}

		row := []any{record.URL, record.Traffic, record.CommentCount.CellValue()}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(resolved); err != nil {
		return "", fmt.Errorf("failed to save output file: %w", err)
	}

	return resolved, nil
}

// UniquePath resolves a collision-free variant of path: the path
// itself when free, otherwise name_1.ext, name_2.ext, ... scanning
// monotonically from 1. The exists predicate is injected so the
// resolution stays a pure function.
func UniquePath(path string, exists func(string) bool) string {
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(path, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", name, counter, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// fileExists reports whether the path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
