package engine

import (
	"slices"
	"testing"

	"reportiq/internal/dataset"
)

func TestCountByField(t *testing.T) {
	e := newTestEngine(t, "PRIORITY\nHigh\nLow\nHigh\n\nMedium\nLow\nHigh\n")

	got := e.CountByField(dataset.FieldPriority)
	want := []CountEntry{
		{Value: "High", Count: 3},
		{Value: "Low", Count: 2},
		{Value: "Medium", Count: 1},
	}
	if !slices.Equal(got, want) {
		t.Errorf("CountByField = %v, want %v", got, want)
	}
}

func TestCountByFieldTiesKeepFirstOccurrence(t *testing.T) {
	e := newTestEngine(t, "TOOL\nQualys\nNessus\nQualys\nNessus\n")

	got := e.CountByField(dataset.FieldTool)
	if len(got) != 2 || got[0].Value != "Qualys" || got[1].Value != "Nessus" {
		t.Errorf("tie order = %v, want Qualys before Nessus", got)
	}
}

func TestCountByFieldUnmapped(t *testing.T) {
	e := newTestEngine(t, "PRIORITY\nHigh\n")

	if got := e.CountByField(dataset.FieldDepartment); len(got) != 0 {
		t.Errorf("CountByField on unmapped field = %v, want empty", got)
	}
}

func TestCountByYear(t *testing.T) {
	e := newTestEngine(t, "CREATIONDATE\n01/01/2022\n15/06/2023\n31/12/2023\nbad\n")

	got := e.CountByYear()
	want := []YearCount{{Year: 2022, Count: 1}, {Year: 2023, Count: 2}}
	if !slices.Equal(got, want) {
		t.Errorf("CountByYear = %v, want %v", got, want)
	}
}

func TestCountByMonthAndTrendReady(t *testing.T) {
	e := newTestEngine(t, "CREATIONDATE\n05/01/2023\n20/01/2023\n10/03/2023\n")

	got := e.CountByMonth()
	if len(got) != 2 {
		t.Fatalf("CountByMonth = %v, want 2 periods", got)
	}
	if got[0].Count != 2 || got[0].Month.Month() != 1 {
		t.Errorf("first period = %+v, want January with 2", got[0])
	}
	if got[1].Count != 1 || got[1].Month.Month() != 3 {
		t.Errorf("second period = %+v, want March with 1", got[1])
	}
	if !e.TrendReady() {
		t.Error("TrendReady() = false with 2 periods")
	}

	single := newTestEngine(t, "CREATIONDATE\n05/01/2023\n20/01/2023\n")
	if single.TrendReady() {
		t.Error("TrendReady() = true with a single period")
	}
}

func TestTopVulnerabilities(t *testing.T) {
	e := newTestEngine(t, "PLUGINDESC,PLUGINID\n"+
		"SSL Cert Expired,101\n"+
		"Weak Cipher,\n"+
		"SSL Cert Expired,102\n"+
		"SSL Cert Expired,101\n")

	got := e.TopVulnerabilities(10)
	if len(got) != 2 {
		t.Fatalf("TopVulnerabilities = %v, want 2 entries (no padding)", got)
	}
	if got[0].Name != "SSL Cert Expired" || got[0].Count != 3 || got[0].PluginID != "101" {
		t.Errorf("top entry = %+v, want SSL Cert Expired x3 with first id 101", got[0])
	}
	if got[1].PluginID != "" {
		t.Errorf("entry without id = %+v, want empty PluginID", got[1])
	}

	if got := e.TopVulnerabilities(1); len(got) != 1 {
		t.Errorf("TopVulnerabilities(1) = %d entries", len(got))
	}
}

func TestSLASummary(t *testing.T) {
	e := newTestEngine(t, "SLA_Value\nIn SLA\nOut of SLA\nout_of_sla\n???\n")

	got := e.SLASummary()
	want := SLASummary{InSLA: 1, OutOfSLA: 2, Unknown: 1}
	if got != want {
		t.Errorf("SLASummary = %+v, want %+v", got, want)
	}

	unmapped := newTestEngine(t, "PRIORITY\nHigh\n")
	if got := unmapped.SLASummary(); got != (SLASummary{}) {
		t.Errorf("SLASummary on unmapped field = %+v, want zero", got)
	}
}

func TestSLASummaryOutWinsOverIn(t *testing.T) {
	// "out" check runs before "in"+"sla", so this ambiguous value buckets
	// as a breach.
	e := newTestEngine(t, "SLA_Value\nwithin sla but out\n")

	got := e.SLASummary()
	if got.OutOfSLA != 1 || got.InSLA != 0 {
		t.Errorf("SLASummary = %+v, want the out bucket", got)
	}
}

func TestResolutionTimeStats(t *testing.T) {
	e := newTestEngine(t, "STATUS,CREATIONDATE,CLOSEDDATE\n"+
		"CLOSED,01/01/2023,06/01/2023\n"+ // 5 days
		"CLOSED,01/01/2023,11/01/2023\n"+ // 10 days
		"CLOSED,06/01/2023,05/01/2023\n"+ // negative, dropped
		"PENDING,01/01/2023,20/01/2023\n") // open, skipped

	got := e.ResolutionTimeStats()
	want := ResolutionStats{Mean: 7.5, Median: 7.5, Min: 5, Max: 10, Count: 2}
	if got != want {
		t.Errorf("ResolutionTimeStats = %+v, want %+v", got, want)
	}
}

func TestResolutionTimeStatsSameDayClosures(t *testing.T) {
	e := newTestEngine(t, "STATUS,CREATIONDATE,CLOSEDDATE\n"+
		"CLOSED,05/01/2023,05/01/2023\n"+
		"CLOSED,10/02/2023,10/02/2023\n")

	got := e.ResolutionTimeStats()
	want := ResolutionStats{Count: 2}
	if got != want {
		t.Errorf("ResolutionTimeStats = %+v, want zero durations with Count 2", got)
	}
}

func TestResolutionTimeStatsZeroWhenUnusable(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"MissingClosedColumn", "STATUS,CREATIONDATE\nCLOSED,01/01/2023\n"},
		{"NoClosedRows", "STATUS,CREATIONDATE,CLOSEDDATE\nPENDING,01/01/2023,05/01/2023\n"},
		{"AllNegative", "STATUS,CREATIONDATE,CLOSEDDATE\nCLOSED,10/01/2023,05/01/2023\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.csv)
			if got := e.ResolutionTimeStats(); got != (ResolutionStats{}) {
				t.Errorf("ResolutionTimeStats = %+v, want zero struct", got)
			}
		})
	}
}

func TestSLABreachDistribution(t *testing.T) {
	e := newTestEngine(t, "SLA_TIME\n-3\n5\n-1.5\nn/a\n\n")

	got := e.SLABreachDistribution()
	want := []float64{3, 1.5}
	if !slices.Equal(got, want) {
		t.Errorf("SLABreachDistribution = %v, want %v", got, want)
	}
}

func TestIPDensity(t *testing.T) {
	e := newTestEngine(t, "IP\n10.0.0.1\n10.0.0.2\n10.0.0.1\n10.0.0.3\n10.0.0.1\n10.0.0.2\n")

	got := e.IPDensity(2)
	if len(got) != 2 {
		t.Fatalf("IPDensity(2) = %v", got)
	}
	if got[0].Value != "10.0.0.1" || got[0].Count != 3 {
		t.Errorf("densest ip = %+v", got[0])
	}
	if got[1].Value != "10.0.0.2" || got[1].Count != 2 {
		t.Errorf("second ip = %+v", got[1])
	}
}

func TestAggregatesRespectFilters(t *testing.T) {
	e := newTestEngine(t, filterFixture)
	e.SetFilter("tool", "Nessus")

	got := e.CountByField(dataset.FieldPriority)
	want := []CountEntry{{Value: "High", Count: 2}, {Value: "Medium", Count: 1}}
	if !slices.Equal(got, want) {
		t.Errorf("filtered CountByField = %v, want %v", got, want)
	}
}
