package transform

import (
	"sort"

	"SignalMix/internal/domain/models"
)

// Term is one weighted table of a linear combination.
type Term struct {
	Weight float64
	Table  *models.Table
}

// LinearCombination returns sum(weight_i * table_i), aligned on an outer join
// of dates and columns. A cell missing from any table is NaN in the result.
func LinearCombination(terms []Term) *models.Table {
	if len(terms) == 0 {
		return models.NewTable()
	}

	dateLists := make([][]string, len(terms))
	colLists := make([][]string, len(terms))
	for i, term := range terms {
		dateLists[i] = term.Table.Dates()
		colLists[i] = term.Table.Columns()
	}
	dates := AlignIndex(dateLists)
	columns := AlignIndex(colLists)

	out := models.NewIndexedTable(dates, columns)
	for _, d := range dates {
		for _, c := range columns {
			sum := 0.0
			for _, term := range terms {
				sum += term.Weight * term.Table.Get(d, c)
			}
			out.Set(d, c, sum)
		}
	}
	return out
}

// AlignIndex keeps the shared order when every index is identical and
// otherwise returns the sorted union.
func AlignIndex(indexes [][]string) []string {
	if len(indexes) == 0 {
		return nil
	}
	first := indexes[0]
	same := true
	for _, idx := range indexes[1:] {
		if !equalStrings(first, idx) {
			same = false
			break
		}
	}
	if same {
		out := make([]string, len(first))
		copy(out, first)
		return out
	}

	seen := make(map[string]struct{})
	var out []string
	for _, idx := range indexes {
		for _, v := range idx {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
