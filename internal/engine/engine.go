package engine

import (
	"reportiq/internal/dataset"

	"github.com/rs/zerolog/log"
)

// Synthetic filter keys that do not name a canonical field.
const (
	KeyYear         = "year"
	KeyYearRange    = "year_range"
	KeyOpenOnly     = "open_only"
	KeyOutOfSLAOnly = "out_of_sla_only"
)

// Engine owns the active filter set and answers aggregate queries against
// the filtered view. The filtered view is memoized in a single slot and
// invalidated on every filter mutation.
//
// An Engine instance must be owned by one goroutine at a time; it has no
// internal locking.
type Engine struct {
	loader  *dataset.Loader
	filters map[string]any
	cached  []dataset.Row // nil means invalid
}

// New creates an Engine over a Loader with an empty filter set.
func New(loader *dataset.Loader) *Engine {
	return &Engine{
		loader:  loader,
		filters: make(map[string]any),
	}
}

// SetFilter stores a filter value under a key. A nil value or an empty
// list removes the key. The memoized view is always invalidated, even if
// the stored value did not change.
func (e *Engine) SetFilter(key string, value any) {
	normalized := normalizeFilterValue(key, value)
	if normalized == nil {
		delete(e.filters, key)
	} else {
		e.filters[key] = normalized
	}
	e.cached = nil

	log.Debug().Str("key", key).Int("active", len(e.filters)).Msg("Filter set updated")
}

// Invalidate drops the memoized view without touching the filter set.
// Used when the column mapping underneath the filters changes.
func (e *Engine) Invalidate() {
	e.cached = nil
}

// ClearFilters empties the filter set and invalidates the view.
func (e *Engine) ClearFilters() {
	e.filters = make(map[string]any)
	e.cached = nil
}

// Filters returns a copy of the active filter set.
func (e *Engine) Filters() map[string]any {
	m := make(map[string]any, len(e.filters))
	for k, v := range e.filters {
		m[k] = v
	}
	return m
}

// Apply returns the filtered view, computing it only when a filter has
// changed since the last call. Filters are conjunctive row predicates, so
// application order does not affect the result.
func (e *Engine) Apply() []dataset.Row {
	if e.cached != nil {
		return e.cached
	}

	rows := e.loader.Rows()
	filtered := make([]dataset.Row, len(rows))
	copy(filtered, rows)

	for key, value := range e.filters {
		filtered = e.applySingleFilter(filtered, key, value)
	}
	if filtered == nil {
		filtered = []dataset.Row{} // keep the memo slot distinguishable from "not computed"
	}

	e.cached = filtered
	return filtered
}

// FilteredCount returns the row count of the filtered view.
func (e *Engine) FilteredCount() int {
	return len(e.Apply())
}

// TotalCount returns the unfiltered record count.
func (e *Engine) TotalCount() int {
	return e.loader.RecordCount()
}

// Preview returns the first n filtered records with stringified cells.
// A non-positive n yields no records.
func (e *Engine) Preview(n int) []map[string]string {
	filtered := e.Apply()
	if n < 0 {
		n = 0
	}
	if n > len(filtered) {
		n = len(filtered)
	}

	columns := e.loader.RawColumns()
	preview := make([]map[string]string, 0, n)
	for _, row := range filtered[:n] {
		record := make(map[string]string, len(columns))
		for _, col := range columns {
			record[col] = dataset.CellString(row[col])
		}
		preview = append(preview, record)
	}
	return preview
}
