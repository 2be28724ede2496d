package engine

import (
	"strconv"
	"strings"

	"reportiq/internal/dataset"

	"github.com/rs/zerolog/log"
)

// outOfSLAMarkers are the substrings that identify an out-of-SLA raw value
// for the out_of_sla_only gate. Matching is case-insensitive.
var outOfSLAMarkers = []string{"out of sla", "out_of_sla", "outlier", "breached", "overdue"}

// normalizeFilterValue converts an untyped filter value (typically decoded
// JSON) into the engine's internal shape. Returning nil means "remove the
// filter": nil input, empty lists, and values the key cannot use.
func normalizeFilterValue(key string, value any) any {
	if value == nil {
		return nil
	}

	switch key {
	case KeyYear:
		years := toIntList(value)
		if len(years) == 0 {
			return nil
		}
		return years

	case KeyYearRange:
		bounds := toIntList(value)
		if len(bounds) != 2 {
			log.Warn().Str("key", key).Msg("year_range filter needs a [start, end] pair, removing")
			return nil
		}
		return YearRange{Start: bounds[0], End: bounds[1]}

	case KeyOpenOnly, KeyOutOfSLAOnly:
		b, ok := value.(bool)
		if !ok {
			log.Warn().Str("key", key).Msg("Boolean filter got a non-boolean value, removing")
			return nil
		}
		return b

	default:
		if list, ok := toStringList(value); ok {
			if len(list) == 0 {
				return nil
			}
			return list
		}
		return dataset.CellString(value)
	}
}

// applySingleFilter restricts rows by one filter. Unrecognized keys and
// unmapped fields are identity: a filter can narrow the view or leave it
// alone, never fail.
func (e *Engine) applySingleFilter(rows []dataset.Row, key string, value any) []dataset.Row {
	switch key {
	case KeyYear:
		return e.filterByYears(rows, value.([]int))
	case KeyYearRange:
		r := value.(YearRange)
		return e.filterByYearSpan(rows, r.Start, r.End)
	case KeyOpenOnly:
		return e.filterOpenOnly(rows, value.(bool))
	case KeyOutOfSLAOnly:
		return e.filterOutOfSLAOnly(rows, value.(bool))
	}

	col := e.loader.Column(dataset.Field(key))
	if col == "" {
		return rows
	}
	return filterByColumn(rows, col, value)
}

// filterByColumn keeps rows whose stringified cell equals the filter value
// (scalar) or is a member of it (multi-select). String coercion tolerates
// mixed numeric/text columns.
func filterByColumn(rows []dataset.Row, col string, value any) []dataset.Row {
	var keep func(string) bool
	switch v := value.(type) {
	case []string:
		set := make(map[string]bool, len(v))
		for _, s := range v {
			set[s] = true
		}
		keep = func(s string) bool { return set[s] }
	default:
		want := dataset.CellString(value)
		keep = func(s string) bool { return s == want }
	}

	var out []dataset.Row
	for _, row := range rows {
		if keep(dataset.CellString(row[col])) {
			out = append(out, row)
		}
	}
	return out
}

// filterByYears keeps rows whose creation year is in the list. Rows with a
// missing or unparsable creation date are excluded.
func (e *Engine) filterByYears(rows []dataset.Row, years []int) []dataset.Row {
	col := e.loader.Column(dataset.FieldCreationDate)
	if col == "" {
		return rows
	}

	set := make(map[int]bool, len(years))
	for _, y := range years {
		set[y] = true
	}

	var out []dataset.Row
	for _, row := range rows {
		if t, ok := dataset.CellTime(row[col]); ok && set[t.Year()] {
			out = append(out, row)
		}
	}
	return out
}

// filterByYearSpan keeps rows whose creation year lies in [start, end].
func (e *Engine) filterByYearSpan(rows []dataset.Row, start, end int) []dataset.Row {
	col := e.loader.Column(dataset.FieldCreationDate)
	if col == "" {
		return rows
	}

	var out []dataset.Row
	for _, row := range rows {
		if t, ok := dataset.CellTime(row[col]); ok {
			if y := t.Year(); y >= start && y <= end {
				out = append(out, row)
			}
		}
	}
	return out
}

// filterOpenOnly restricts to rows whose status is in the OPEN category.
// A false gate is a no-op.
func (e *Engine) filterOpenOnly(rows []dataset.Row, openOnly bool) []dataset.Row {
	if !openOnly {
		return rows
	}
	col := e.loader.Column(dataset.FieldStatus)
	if col == "" {
		return rows
	}

	var out []dataset.Row
	for _, row := range rows {
		if dataset.IsOpenStatus(dataset.CellString(row[col])) {
			out = append(out, row)
		}
	}
	return out
}

// filterOutOfSLAOnly restricts to rows whose SLA status contains any
// out-of-SLA marker. A false gate is a no-op.
func (e *Engine) filterOutOfSLAOnly(rows []dataset.Row, outOnly bool) []dataset.Row {
	if !outOnly {
		return rows
	}
	col := e.loader.Column(dataset.FieldSLAStatus)
	if col == "" {
		return rows
	}

	var out []dataset.Row
	for _, row := range rows {
		value := strings.ToLower(dataset.CellString(row[col]))
		for _, marker := range outOfSLAMarkers {
			if strings.Contains(value, marker) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// toStringList coerces list-shaped values to []string, reporting whether
// the input was a list at all.
func toStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, dataset.CellString(item))
		}
		return out, true
	default:
		return nil, false
	}
}

// toIntList coerces scalar or list-shaped values to []int, dropping
// anything non-numeric.
func toIntList(value any) []int {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []int:
		return v
	default:
		items = []any{value}
	}

	var out []int
	for _, item := range items {
		switch n := item.(type) {
		case int:
			out = append(out, n)
		case float64:
			out = append(out, int(n))
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				out = append(out, parsed)
			}
		}
	}
	return out
}
