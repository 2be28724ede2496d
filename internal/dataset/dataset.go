package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row maps raw column names to cell values. A cell is a string, float64,
// time.Time, or nil for a missing value.
type Row map[string]any

// Dataset is an ordered tabular snapshot: a header and its rows.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the dataset contains the raw column name.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CellString renders a cell with the single stringification used across
// filtering and aggregation: numbers without trailing zeros, dates as
// 2006-01-02, nil as the empty string.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case time.Time:
		return c.Format("2006-01-02")
	default:
		return fmt.Sprint(c)
	}
}

// CellFloat coerces a cell to a number, reporting whether it parsed.
func CellFloat(v any) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CellTime coerces a cell to a timestamp, reporting whether it parsed.
// String cells are interpreted day-first.
func CellTime(v any) (time.Time, bool) {
	switch c := v.(type) {
	case time.Time:
		return c, true
	case string:
		return ParseDayFirst(c)
	default:
		return time.Time{}, false
	}
}

// coerceCell converts a raw source cell into its typed representation.
// Empty cells become nil; numeric-looking cells become float64.
func coerceCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
