package transform

import (
	"math"

	"SignalMix/internal/domain/models"
)

// NormalizeScale maps min-max normalized values onto [0, 100].
const NormalizeScale = 100.0

// MinMax rescales every column to scale*(v-min)/(max-min) using the column's
// own range over all dates. NaN cells are skipped when computing the range and
// stay NaN. A constant column has max == min and yields NaN for every cell.
func MinMax(t *models.Table, scale float64) *models.Table {
	dates := t.Dates()
	columns := t.Columns()
	out := models.NewIndexedTable(dates, columns)

	for _, col := range columns {
		lo, hi := ColumnRange(t, col)
		span := hi - lo
		for _, d := range dates {
			out.Set(d, col, scale*(t.Get(d, col)-lo)/span)
		}
	}
	return out
}

// ColumnRange returns the minimum and maximum of column, ignoring NaN.
// Both are NaN when the column holds no numbers.
func ColumnRange(t *models.Table, column string) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, d := range t.Dates() {
		v := t.Get(d, column)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return lo, hi
}
