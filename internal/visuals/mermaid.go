package visuals

import (
	"fmt"
	"math"
	"strings"

	"reportiq/internal/engine"
)

// BarChart creates a Mermaid xychart-beta bar chart from a frequency table.
func BarChart(title, yLabel string, entries []engine.CountEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0

	for _, entry := range entries {
		labels = append(labels, fmt.Sprintf("%q", safeLabel(entry.Value)))
		values = append(values, fmt.Sprintf("%d", entry.Count))
		if entry.Count > maxVal {
			maxVal = entry.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %q 0 --> %d\n", yLabel, maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// PieChart creates a Mermaid pie chart from a frequency table.
func PieChart(title string, entries []engine.CountEntry) string {
	total := 0
	for _, entry := range entries {
		total += entry.Count
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("pie title %s\n", title))
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("    %q : %d\n", safeLabel(entry.Value), entry.Count))
	}
	sb.WriteString("```")
	return sb.String()
}

// LineChart creates a Mermaid xychart-beta line chart from a monthly series.
func LineChart(title, yLabel string, series []engine.MonthCount) string {
	if len(series) == 0 {
		return ""
	}

	// Subsample points if the chart is too wide for Mermaid's layout engine
	subsampleRate := 1
	if len(series) > 60 {
		subsampleRate = int(math.Ceil(float64(len(series)) / 60.0))
	}

	var labels []string
	var values []string
	maxVal := 0

	for i, point := range series {
		if i%subsampleRate == 0 || i == len(series)-1 {
			labels = append(labels, fmt.Sprintf("%q", point.Month.Format("2006-01")))
			values = append(values, fmt.Sprintf("%d", point.Count))
		}
		if point.Count > maxVal {
			maxVal = point.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %q 0 --> %d\n", yLabel, maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// Histogram creates a Mermaid bar chart by binning a raw distribution.
// binSize is in the distribution's unit (days); values land in
// [k*binSize, (k+1)*binSize) buckets.
func Histogram(title, yLabel string, values []float64, binSize float64) string {
	if len(values) == 0 || binSize <= 0 {
		return ""
	}

	maxBin := 0
	bins := make(map[int]int)
	for _, v := range values {
		bin := int(v / binSize)
		bins[bin]++
		if bin > maxBin {
			maxBin = bin
		}
	}

	entries := make([]engine.CountEntry, 0, maxBin+1)
	for bin := 0; bin <= maxBin; bin++ {
		label := fmt.Sprintf("%d-%d", int(float64(bin)*binSize), int(float64(bin+1)*binSize))
		entries = append(entries, engine.CountEntry{Value: label, Count: bins[bin]})
	}
	return BarChart(title, yLabel, entries)
}

// StatsChart creates a Mermaid bar chart over a resolution-time stats
// struct. Emptiness comes from Count, so all-zero durations still chart.
func StatsChart(title, yLabel string, stats engine.ResolutionStats) string {
	if stats.Count == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %q\n", title))
	sb.WriteString("    x-axis [\"Mean\", \"Median\", \"Min\", \"Max\"]\n")
	maxY := math.Max(stats.Mean, float64(stats.Max)) * 1.2
	sb.WriteString(fmt.Sprintf("    y-axis %q 0 --> %d\n", yLabel, int(math.Ceil(math.Max(maxY, 1)))))
	sb.WriteString(fmt.Sprintf("    bar [%.1f, %.1f, %d, %d]\n", stats.Mean, stats.Median, stats.Min, stats.Max))
	sb.WriteString("```")
	return sb.String()
}

// safeLabel trims and de-quotes a raw value so Mermaid's parser accepts it.
// Truncation counts runes so multibyte values stay valid UTF-8.
func safeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return s
}
