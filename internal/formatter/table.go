package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"neowatch/internal/models"
)

// TableHeaders are the column titles of FormatTable.
var TableHeaders = []string{"DATE", "ID", "NAME", "MAGNITUDE", "HAZARDOUS"}

var headerStyle = lipgloss.NewStyle().Bold(true)

// FormatTable renders the ranked selection as a pipe-delimited table whose
// columns are aligned by terminal display width. With styled set the header
// row is emphasised using terminal escape sequences.
func FormatTable(payload *models.FeedPayload, limit int, styled bool) []string {
	return FormatEntriesTable(Select(payload, limit), styled)
}

// FormatEntriesTable renders already selected entries the same way as FormatTable.
func FormatEntriesTable(entries []models.Entry, styled bool) []string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, TableHeaders)

	for _, e := range entries {
		rows = append(rows, []string{
			e.Date,
			e.Object.ReferenceID,
			e.Object.Name,
			ReprFloat(e.Object.AbsoluteMagnitudeH),
			hazardLabel(e.Object.IsPotentiallyHazardous),
		})
	}

	return renderTable(rows, styled)
}

func hazardLabel(hazardous bool) string {
	if hazardous {
		return "yes"
	}

	return "no"
}

// renderTable pads every cell to its column's widest display width and
// inserts a dash separator after the header row.
func renderTable(rows [][]string, styled bool) []string {
	colWidths := make([]int, len(TableHeaders))

	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(rows)+1)

	for rIdx, row := range rows {
		var sb strings.Builder

		sb.WriteString("|")

		for j, width := range colWidths {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			cell := content + strings.Repeat(" ", width-runewidth.StringWidth(content))
			if rIdx == 0 && styled {
				cell = headerStyle.Render(cell)
			}

			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(" |")
		}

		result = append(result, sb.String())

		if rIdx == 0 {
			result = append(result, separatorRow(colWidths))
		}
	}

	return result
}

func separatorRow(colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for _, width := range colWidths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	return sb.String()
}
