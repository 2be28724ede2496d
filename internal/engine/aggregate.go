package engine

import (
	"slices"
	"sort"
	"strings"
	"time"

	"reportiq/internal/dataset"
)

// CountByField builds a frequency table over a canonical field, descending
// by count with ties in first-occurrence order. Missing cells are dropped.
// An unmapped field yields an empty table.
func (e *Engine) CountByField(field dataset.Field) []CountEntry {
	col := e.loader.Column(field)
	if col == "" {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range e.Apply() {
		cell := row[col]
		if cell == nil {
			continue
		}
		s := dataset.CellString(cell)
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	entries := make([]CountEntry, 0, len(order))
	for _, value := range order {
		entries = append(entries, CountEntry{Value: value, Count: counts[value]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// CountByYear tallies rows per creation year, ascending by year.
func (e *Engine) CountByYear() []YearCount {
	col := e.loader.Column(dataset.FieldCreationDate)
	if col == "" {
		return nil
	}

	counts := make(map[int]int)
	for _, row := range e.Apply() {
		if t, ok := dataset.CellTime(row[col]); ok {
			counts[t.Year()]++
		}
	}

	var entries []YearCount
	for year, count := range counts {
		entries = append(entries, YearCount{Year: year, Count: count})
	}
	slices.SortFunc(entries, func(a, b YearCount) int { return a.Year - b.Year })
	return entries
}

// CountByMonth tallies rows per year-month period, ascending
// chronologically. Callers must treat fewer than two periods as
// insufficient for a trend line.
func (e *Engine) CountByMonth() []MonthCount {
	col := e.loader.Column(dataset.FieldCreationDate)
	if col == "" {
		return nil
	}

	counts := make(map[time.Time]int)
	for _, row := range e.Apply() {
		if t, ok := dataset.CellTime(row[col]); ok {
			month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
			counts[month]++
		}
	}

	var entries []MonthCount
	for month, count := range counts {
		entries = append(entries, MonthCount{Month: month, Count: count})
	}
	slices.SortFunc(entries, func(a, b MonthCount) int { return a.Month.Compare(b.Month) })
	return entries
}

// TrendReady reports whether the monthly series has enough distinct
// periods to support a trend line.
func (e *Engine) TrendReady() bool {
	return len(e.CountByMonth()) >= 2
}

// TopVulnerabilities returns the n most frequent plugin descriptions with
// counts, annotated with the first plugin id observed per description when
// a plugin-id column is resolved.
func (e *Engine) TopVulnerabilities(n int) []VulnEntry {
	descCol := e.loader.Column(dataset.FieldPluginDesc)
	if descCol == "" {
		return nil
	}
	idCol := e.loader.Column(dataset.FieldPluginID)

	counts := make(map[string]int)
	firstID := make(map[string]string)
	var order []string
	for _, row := range e.Apply() {
		cell := row[descCol]
		if cell == nil {
			continue
		}
		desc := dataset.CellString(cell)
		if counts[desc] == 0 {
			order = append(order, desc)
		}
		counts[desc]++

		if idCol != "" {
			if _, seen := firstID[desc]; !seen && row[idCol] != nil {
				firstID[desc] = dataset.CellString(row[idCol])
			}
		}
	}

	entries := make([]VulnEntry, 0, len(order))
	for _, desc := range order {
		entries = append(entries, VulnEntry{Name: desc, Count: counts[desc], PluginID: firstID[desc]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// SLASummary buckets every filtered row by its raw SLA-status value:
// "out"/"breach" → out-of-SLA, then "in"+"sla" → in-SLA, else unknown.
func (e *Engine) SLASummary() SLASummary {
	var summary SLASummary

	col := e.loader.Column(dataset.FieldSLAStatus)
	if col == "" {
		return summary
	}

	for _, row := range e.Apply() {
		value := strings.ToLower(dataset.CellString(row[col]))
		switch {
		case strings.Contains(value, "out") || strings.Contains(value, "breach"):
			summary.OutOfSLA++
		case strings.Contains(value, "in") && strings.Contains(value, "sla"):
			summary.InSLA++
		default:
			summary.Unknown++
		}
	}
	return summary
}

// PrioritySummary returns the priority frequency table as a plain map.
func (e *Engine) PrioritySummary() map[string]int {
	summary := make(map[string]int)
	for _, entry := range e.CountByField(dataset.FieldPriority) {
		summary[entry.Value] = entry.Count
	}
	return summary
}

// ResolutionTimeStats computes closed-ticket resolution durations in whole
// days. Rows with unparsable dates or negative durations are dropped; the
// zero struct is returned when any required field is unmapped or no valid
// row remains.
func (e *Engine) ResolutionTimeStats() ResolutionStats {
	var stats ResolutionStats

	creationCol := e.loader.Column(dataset.FieldCreationDate)
	closedCol := e.loader.Column(dataset.FieldClosedDate)
	statusCol := e.loader.Column(dataset.FieldStatus)
	if creationCol == "" || closedCol == "" || statusCol == "" {
		return stats
	}

	var days []int
	for _, row := range e.Apply() {
		if !dataset.IsClosedStatus(dataset.CellString(row[statusCol])) {
			continue
		}
		created, okC := dataset.CellTime(row[creationCol])
		closed, okD := dataset.CellTime(row[closedCol])
		if !okC || !okD {
			continue
		}
		d := int(closed.Sub(created).Hours() / 24)
		if d < 0 {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return stats
	}

	stats.Mean = Round1(Mean(days))
	stats.Median = Round1(MedianInts(days))
	stats.Min = slices.Min(days)
	stats.Max = slices.Max(days)
	stats.Count = len(days)
	return stats
}

// SLABreachDistribution returns the days-overdue distribution: absolute
// values of the negative numeric SLA-time cells, in row order. Non-numeric
// cells drop silently.
func (e *Engine) SLABreachDistribution() []float64 {
	col := e.loader.Column(dataset.FieldSLATime)
	if col == "" {
		return nil
	}

	var overdue []float64
	for _, row := range e.Apply() {
		if v, ok := dataset.CellFloat(row[col]); ok && v < 0 {
			overdue = append(overdue, -v)
		}
	}
	return overdue
}

// IPDensity returns the topN most frequent ip values.
func (e *Engine) IPDensity(topN int) []CountEntry {
	entries := e.CountByField(dataset.FieldIP)
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
