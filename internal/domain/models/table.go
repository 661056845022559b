package models

import (
	"bytes"
	"encoding/json"
	"math"
)

// DateField is the upstream record field used as the table index.
const DateField = "date"

// Table is a date-indexed set of numeric columns. Dates and columns keep
// insertion order; absent cells read as NaN.
type Table struct {
	dates   []string
	columns []string
	dateIdx map[string]struct{}
	colIdx  map[string]struct{}
	values  map[string]map[string]float64
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		dateIdx: make(map[string]struct{}),
		colIdx:  make(map[string]struct{}),
		values:  make(map[string]map[string]float64),
	}
}

// NewIndexedTable creates an empty table with a fixed date and column order.
func NewIndexedTable(dates, columns []string) *Table {
	t := NewTable()
	for _, d := range dates {
		t.AddDate(d)
	}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// AddDate registers date in the index if it is not present yet.
func (t *Table) AddDate(date string) {
	if _, ok := t.dateIdx[date]; ok {
		return
	}
	t.dateIdx[date] = struct{}{}
	t.dates = append(t.dates, date)
	t.values[date] = make(map[string]float64)
}

// AddColumn registers column if it is not present yet.
func (t *Table) AddColumn(column string) {
	if _, ok := t.colIdx[column]; ok {
		return
	}
	t.colIdx[column] = struct{}{}
	t.columns = append(t.columns, column)
}

// Set stores v at (date, column), registering both if needed.
func (t *Table) Set(date, column string, v float64) {
	t.AddDate(date)
	t.AddColumn(column)
	t.values[date][column] = v
}

// Get returns the cell value or NaN when the cell is absent.
func (t *Table) Get(date, column string) float64 {
	row, ok := t.values[date]
	if !ok {
		return math.NaN()
	}
	v, ok := row[column]
	if !ok {
		return math.NaN()
	}
	return v
}

// Dates returns the date index in table order.
func (t *Table) Dates() []string {
	out := make([]string, len(t.dates))
	copy(out, t.dates)
	return out
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of dates.
func (t *Table) Len() int { return len(t.dates) }

// MarshalJSON encodes the table as {date: {column: value}}.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range t.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, d); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := t.writeRow(&buf, d, false); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records returns a marshaler encoding the table as [{"date": d, column: value}].
func (t *Table) Records() json.Marshaler { return records{t} }

type records struct{ t *Table }

func (r records) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range r.t.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := r.t.writeRow(&buf, d, true); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (t *Table) writeRow(buf *bytes.Buffer, date string, withDate bool) error {
	buf.WriteByte('{')
	first := true
	if withDate {
		if err := writeString(buf, DateField); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeString(buf, date); err != nil {
			return err
		}
		first = false
	}
	for _, c := range t.columns {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, c); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeNumber(buf, t.Get(date, c)); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// writeNumber writes non-finite values as null since JSON has no NaN.
func writeNumber(buf *bytes.Buffer, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		buf.WriteString("null")
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
