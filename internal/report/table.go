// Package report renders a plain-text preview of the enriched records
// for the console.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"threadstats/internal/models"
)

var previewHeader = []string{"url", "traffic", "comment_count"}

// Preview renders up to limit output records as an aligned text table.
// Column widths use display width, not byte length, so URLs with
// wide characters keep the columns straight.
func Preview(records []models.OutputRecord, limit int) string {
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	table := make([][]string, 0, len(shown)+1)
	table = append(table, previewHeader)

	for _, record := range shown {
		table = append(table, []string{
			record.URL,
			formatTraffic(record.Traffic),
			fmt.Sprintf("%v", record.CommentCount.CellValue()),
		})
	}

	widths := make([]int, len(previewHeader))

	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	for rIdx, row := range table {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}

			sb.WriteString(cell)

			if padding := widths[i] - runewidth.StringWidth(cell); padding > 0 && i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString("\n")

		if rIdx == 0 {
			for i, w := range widths {
				if i > 0 {
					sb.WriteString("  ")
				}

				sb.WriteString(strings.Repeat("-", w))
			}

			sb.WriteString("\n")
		}
	}

	if len(records) > len(shown) {
		sb.WriteString(fmt.Sprintf("... and %d more rows\n", len(records)-len(shown)))
	}

	return sb.String()
}

// formatTraffic formats a traffic value without a trailing decimal
// part for whole numbers.
func formatTraffic(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}

	return fmt.Sprintf("%g", v)
}
