package engine

import "time"

// CountEntry is one row of a frequency table.
type CountEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// YearCount is a per-year tally, ordered ascending by year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// MonthCount is a per-month tally; Month is the first day of the period.
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// VulnEntry is one row of the top-vulnerabilities table. PluginID is the
// first plugin id observed for the description, "" if none resolved.
type VulnEntry struct {
	Name     string `json:"vulnerability"`
	Count    int    `json:"count"`
	PluginID string `json:"plugin_id,omitempty"`
}

// SLASummary buckets the filtered view by SLA state. Buckets are mutually
// exclusive; out-of-SLA takes priority over in-SLA per row.
type SLASummary struct {
	InSLA    int `json:"in_sla"`
	OutOfSLA int `json:"out_of_sla"`
	Unknown  int `json:"unknown"`
}

// ResolutionStats describes creation-to-close durations of closed tickets
// in whole days. Mean and Median are rounded to one decimal. Count is the
// number of durations measured; zero means no usable closed ticket, which
// keeps an all-same-day dataset distinguishable from no data.
type ResolutionStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Count  int     `json:"count"`
}

// YearRange is an inclusive creation-year interval filter value.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
