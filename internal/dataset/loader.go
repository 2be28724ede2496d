package dataset

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Loader owns the dataset for a session: it resolves heterogeneous column
// names onto canonical fields and serves typed, cached accessors.
type Loader struct {
	ds      *Dataset
	path    string
	aliases map[Field][]string
	mapping map[Field]string

	uniqueCache map[Field][]string
}

// NewLoader creates an empty Loader with the built-in alias table.
func NewLoader() *Loader {
	aliases := make(map[Field][]string, len(Aliases))
	for f, names := range Aliases {
		aliases[f] = slices.Clone(names)
	}
	return &Loader{
		aliases:     aliases,
		mapping:     make(map[Field]string),
		uniqueCache: make(map[Field][]string),
	}
}

// ExtendAliases appends user-supplied aliases after the built-ins, so the
// built-in priority order is preserved.
func (l *Loader) ExtendAliases(extra map[Field][]string) {
	for f, names := range extra {
		if !IsField(f) {
			continue
		}
		l.aliases[f] = append(l.aliases[f], names...)
	}
}

// Load reads a tabular source, auto-maps its columns, and coerces date
// fields in place. On failure the previously loaded dataset is left
// untouched; the caller decides whether to Clear.
func (l *Loader) Load(path string) (string, error) {
	var ds *Dataset
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		ds, err = readCSV(path)
	case ".xlsx", ".xlsm":
		ds, err = readXLSX(path)
	default:
		return "", fmt.Errorf("unsupported source type %q (expected .csv, .xlsx or .xlsm)", ext)
	}
	if err != nil {
		return "", fmt.Errorf("error loading file: %w", err)
	}

	l.ds = ds
	l.path = path
	l.autoMapColumns()
	l.parseDates()
	l.uniqueCache = make(map[Field][]string)

	log.Info().
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).
		Int("mapped", len(l.mapping)).
		Str("source", filepath.Base(path)).
		Msg("Dataset loaded")

	return fmt.Sprintf("Loaded %d records from %s", len(ds.Rows), filepath.Base(path)), nil
}

// Clear resets to the unloaded state: no dataset, no mapping, no cache.
func (l *Loader) Clear() {
	l.ds = nil
	l.path = ""
	l.mapping = make(map[Field]string)
	l.uniqueCache = make(map[Field][]string)
}

// autoMapColumns resolves each canonical field to the first raw column (in
// file order) matching any of its aliases. Fields are scanned in
// FieldOrder; a mapped field is never rescanned.
func (l *Loader) autoMapColumns() {
	l.mapping = make(map[Field]string)

	for _, field := range FieldOrder {
	columns:
		for _, col := range l.ds.Columns {
			clean := strings.TrimSpace(col)
			for _, alias := range l.aliases[field] {
				if strings.EqualFold(clean, alias) {
					l.mapping[field] = col
					break columns
				}
			}
		}
	}
}

// parseDates coerces the mapped date columns to time values in place.
// Unparsable cells become nil; this is best-effort and never fails.
func (l *Loader) parseDates() {
	for _, field := range DateFields {
		col, ok := l.mapping[field]
		if !ok || !l.ds.HasColumn(col) {
			continue
		}
		for _, row := range l.ds.Rows {
			switch cell := row[col].(type) {
			case time.Time, nil:
				// already typed or missing
			case string:
				if t, ok := ParseDayFirst(cell); ok {
					row[col] = t
				} else {
					row[col] = nil
				}
			default:
				row[col] = nil
			}
		}
	}
}

// Column returns the raw column name mapped to a canonical field, or "".
func (l *Loader) Column(field Field) string {
	return l.mapping[field]
}

// ColumnData returns the cell values for a canonical field, or nil if the
// field is unmapped or no dataset is loaded.
func (l *Loader) ColumnData(field Field) []any {
	if l.ds == nil {
		return nil
	}
	col, ok := l.mapping[field]
	if !ok || !l.ds.HasColumn(col) {
		return nil
	}
	values := make([]any, len(l.ds.Rows))
	for i, row := range l.ds.Rows {
		values[i] = row[col]
	}
	return values
}

// UniqueValues returns the sorted distinct values of a field as strings,
// dropping missing cells. Results are cached per field until the field's
// mapping changes or the dataset is reloaded.
func (l *Loader) UniqueValues(field Field) []string {
	if cached, ok := l.uniqueCache[field]; ok {
		return cached
	}

	data := l.ColumnData(field)
	if data == nil {
		return nil
	}

	seen := make(map[string]bool)
	var values []string
	for _, cell := range data {
		if cell == nil {
			continue
		}
		s := CellString(cell)
		if !seen[s] {
			seen[s] = true
			values = append(values, s)
		}
	}
	slices.Sort(values)

	l.uniqueCache[field] = values
	return values
}

// Years returns the sorted distinct creation-date years.
func (l *Loader) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, cell := range l.ColumnData(FieldCreationDate) {
		if t, ok := CellTime(cell); ok {
			if y := t.Year(); !seen[y] {
				seen[y] = true
				years = append(years, y)
			}
		}
	}
	slices.Sort(years)
	return years
}

// SetMapping manually overrides a field's raw column. It is a no-op if no
// dataset is loaded or the column does not exist, and invalidates that
// field's cached unique values.
func (l *Loader) SetMapping(field Field, column string) {
	if l.ds == nil || !l.ds.HasColumn(column) {
		return
	}
	l.mapping[field] = column
	delete(l.uniqueCache, field)
}

// Mapping returns a copy of the current canonical-field → raw-column map.
func (l *Loader) Mapping() map[Field]string {
	m := make(map[Field]string, len(l.mapping))
	for f, c := range l.mapping {
		m[f] = c
	}
	return m
}

// UnmappedFields lists canonical fields with no resolved raw column, in
// enumeration order.
func (l *Loader) UnmappedFields() []Field {
	var unmapped []Field
	for _, f := range FieldOrder {
		if _, ok := l.mapping[f]; !ok {
			unmapped = append(unmapped, f)
		}
	}
	return unmapped
}

// RawColumns returns the dataset's raw column names in file order.
func (l *Loader) RawColumns() []string {
	if l.ds == nil {
		return nil
	}
	return slices.Clone(l.ds.Columns)
}

// Rows returns the dataset rows, or nil when unloaded. The engine treats
// the result as read-only.
func (l *Loader) Rows() []Row {
	if l.ds == nil {
		return nil
	}
	return l.ds.Rows
}

// RecordCount returns the total number of loaded records.
func (l *Loader) RecordCount() int {
	if l.ds == nil {
		return 0
	}
	return len(l.ds.Rows)
}

// IsLoaded reports whether a non-empty dataset is present.
func (l *Loader) IsLoaded() bool {
	return l.ds != nil && len(l.ds.Rows) > 0
}

// SourceName returns the base name of the loaded source, or "".
func (l *Loader) SourceName() string {
	if l.path == "" {
		return ""
	}
	return filepath.Base(l.path)
}

// OpenStatusValues returns the dataset's distinct status values that fall
// in the OPEN category, exactly as they appear in the data.
func (l *Loader) OpenStatusValues() []string {
	return l.statusValuesIn(OpenStatuses)
}

// ClosedStatusValues returns the dataset's distinct status values that
// fall in the CLOSED category, exactly as they appear in the data.
func (l *Loader) ClosedStatusValues() []string {
	return l.statusValuesIn(ClosedStatuses)
}

func (l *Loader) statusValuesIn(set []string) []string {
	var matched []string
	for _, v := range l.UniqueValues(FieldStatus) {
		if inStatusSet(v, set) {
			matched = append(matched, v)
		}
	}
	return matched
}
