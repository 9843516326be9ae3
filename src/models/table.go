package models

import (
	"math"
	"strconv"
	"time"
)

// RawRow is the ordered cell text of one retained report row.
type RawRow []string

// ColumnKind is the semantic type currently held by a Column.
type ColumnKind int

const (
	KindString ColumnKind = iota
	KindFloat
	KindTime
)

func (k ColumnKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindTime:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Column holds the values of one named column. Only the slice matching Kind
// is populated. Missing floats are NaN, missing timestamps the zero time.
type Column struct {
	Name   string
	Kind   ColumnKind
	Text   []string
	Floats []float64
	Times  []time.Time
}

// Len returns the number of values held by the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindFloat:
		return len(c.Floats)
	case KindTime:
		return len(c.Times)
	default:
		return len(c.Text)
	}
}

// String renders the i-th value. NaN and zero timestamps render as "".
func (c *Column) String(i int) string {
	switch c.Kind {
	case KindFloat:
		v := c.Floats[i]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case KindTime:
		v := c.Times[i]
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	default:
		return c.Text[i]
	}
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Text != nil {
		out.Text = append([]string(nil), c.Text...)
	}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Times != nil {
		out.Times = append([]time.Time(nil), c.Times...)
	}
	return out
}

// Table is a labeled, row-keyed table of report data. Columns keep the
// canonical order they were built with.
type Table struct {
	IndexName string
	Index     []string
	Columns   []Column
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Index)
}

// ColumnNames returns the column names in table order, excluding the index.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Copy returns a deep copy; changes to the copy never reach t.
func (t *Table) Copy() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		IndexName: t.IndexName,
		Index:     append([]string(nil), t.Index...),
		Columns:   make([]Column, len(t.Columns)),
	}
	for i, c := range t.Columns {
		out.Columns[i] = c.clone()
	}
	return out
}

// DuplicateKeys returns the row keys occurring more than once, in first-seen
// order.
func (t *Table) DuplicateKeys() []string {
	seen := make(map[string]int, len(t.Index))
	var dups []string
	for _, k := range t.Index {
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}
