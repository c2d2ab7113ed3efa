package layout

import (
	"strings"

	"github.com/ByLCY/mindexport/scene"
)

const (
	tableFirstBaseline = 16.0
	tableRowAdvance    = 22.0
	tableCellPadding   = 24.0
	tableMinColumn     = 100.0
	tableHeaderWeight  = 600
	tableBodyWeight    = 400
)

// TableFontSize is the font size of table cells, in px. A font-metric
// Measurer should be built for this size.
const TableFontSize = 11.0

// ColumnWidths returns the width of every column of t using the heuristic
// width model: the widest trimmed cell plus 24px, never below 100px.
func ColumnWidths(t scene.Table) []float64 {
	return columnWidths(t, Heuristic)
}

func columnWidths(t scene.Table, m Measurer) []float64 {
	var widths []float64
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			w := m.TextWidth(strings.TrimSpace(cell)) + tableCellPadding
			if w < tableMinColumn {
				w = tableMinColumn
			}
			if i >= len(widths) {
				widths = append(widths, w)
				continue
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// IsHeaderRow reports whether row i of t renders with header weight. The
// first row is always a header; later rows only when flagged.
func IsHeaderRow(t scene.Table, i int) bool {
	return i == 0 || t.Rows[i].Header
}

// layoutTable places cells on a fixed grid: every cell of column i starts at
// the sum of the widths of columns 0..i-1, so columns align across rows.
func layoutTable(t scene.Table, fill string, m Measurer) []Command {
	widths := columnWidths(t, m)
	var out []Command
	y := tableFirstBaseline
	for ri, row := range t.Rows {
		weight := tableBodyWeight
		if IsHeaderRow(t, ri) {
			weight = tableHeaderWeight
		}
		x := 0.0
		for ci, cell := range row.Cells {
			if text := strings.TrimSpace(cell); text != "" {
				out = append(out, Command{
					X:          x,
					Y:          y,
					Text:       text,
					FontSizePx: TableFontSize,
					FontWeight: weight,
					Fill:       fill,
				})
			}
			x += widths[ci]
		}
		y += tableRowAdvance
	}
	return out
}
