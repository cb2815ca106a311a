package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bcdannyboy/optcalc/instruments"
	"github.com/bcdannyboy/optcalc/valuation"
	"github.com/pkg/errors"
)

const notAvailable = "N/A"

var columnWidths = [4]int{35, 14, 14, 14}

func formatLine(cells [4]string) string {
	var b strings.Builder
	for i, cell := range cells {
		fmt.Fprintf(&b, "%-*s", columnWidths[i], cell)
	}
	b.WriteByte('\n')
	return b.String()
}

// FormatHeader renders the column titles.
func FormatHeader() string {
	return formatLine([4]string{"Method", "European", "Bermudan", "American"})
}

// FormatRow renders one method's values, left justified in fixed width
// columns. Longer cells are not truncated.
func FormatRow(row valuation.Row) string {
	cells := [4]string{row.Method}
	for i, kind := range instruments.ExerciseKinds {
		cells[i+1] = formatValue(row.Value(kind))
	}
	return formatLine(cells)
}

func formatValue(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.6f", *v)
}

func WriteTable(w io.Writer, rows []valuation.Row) error {
	if _, err := io.WriteString(w, FormatHeader()); err != nil {
		return errors.Wrap(err, "write table header")
	}
	for _, row := range rows {
		if _, err := io.WriteString(w, FormatRow(row)); err != nil {
			return errors.Wrapf(err, "write %s row", row.Method)
		}
	}
	return nil
}
