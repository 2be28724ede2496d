package dataset

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadCSV(t *testing.T, content string) *Loader {
	t.Helper()
	loader := NewLoader()
	if _, err := loader.Load(writeCSV(t, content)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return loader
}

func TestAutoMapColumns(t *testing.T) {
	loader := loadCSV(t, "TICKETID,Severity,  status ,CREATIONDATE\n1,High,PENDING,01/01/2023\n")

	tests := []struct {
		field Field
		want  string
	}{
		{FieldTicketID, "TICKETID"},
		{FieldPriority, "Severity"}, // last alias still matches
		{FieldStatus, "status"},     // trimmed, case-insensitive
		{FieldCreationDate, "CREATIONDATE"},
		{FieldDepartment, ""}, // absent stays unmapped
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			if got := loader.Column(tt.field); got != tt.want {
				t.Errorf("Column(%s) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestAutoMapFirstColumnWins(t *testing.T) {
	// Both columns match priority aliases; file order decides.
	loader := loadCSV(t, "Severity,PRIORITY\nHigh,Low\n")

	if got := loader.Column(FieldPriority); got != "Severity" {
		t.Errorf("Column(priority) = %q, want first matching column %q", got, "Severity")
	}
}

func TestLoadFailureKeepsPriorDataset(t *testing.T) {
	loader := loadCSV(t, "TICKETID\n1\n2\n")

	if _, err := loader.Load("/does/not/exist.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if loader.RecordCount() != 2 {
		t.Errorf("RecordCount() = %d after failed load, want 2", loader.RecordCount())
	}

	if _, err := loader.Load(writeCSV(t, "x")); err == nil {
		// header-only file is fine; unsupported extension is the error path
		t.Log("single-cell CSV loaded")
	}

	if _, err := loader.Load("scan.txt"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestDateParsingCoercesInPlace(t *testing.T) {
	loader := loadCSV(t, "TICKETID,CREATIONDATE\n1,15/06/2023\n2,garbage\n3,\n")

	data := loader.ColumnData(FieldCreationDate)
	if len(data) != 3 {
		t.Fatalf("ColumnData length = %d, want 3", len(data))
	}
	if _, ok := CellTime(data[0]); !ok {
		t.Error("valid date was not coerced to time")
	}
	if data[1] != nil {
		t.Errorf("unparsable date = %v, want nil", data[1])
	}
	if data[2] != nil {
		t.Errorf("missing date = %v, want nil", data[2])
	}
}

func TestUniqueValuesSortedAndCached(t *testing.T) {
	loader := loadCSV(t, "STATUS\nPENDING\nCLOSED\nPENDING\n\nQUEUED\n")

	want := []string{"CLOSED", "PENDING", "QUEUED"}
	got := loader.UniqueValues(FieldStatus)
	if !slices.Equal(got, want) {
		t.Fatalf("UniqueValues = %v, want %v", got, want)
	}

	// Cached slice is returned as-is on the second call.
	again := loader.UniqueValues(FieldStatus)
	if len(got) > 0 && len(again) > 0 && &got[0] != &again[0] {
		t.Error("second UniqueValues call did not hit the cache")
	}
}

func TestSetMappingRoundTripInvalidatesCache(t *testing.T) {
	loader := loadCSV(t, "STATUS,ALT_STATUS\nPENDING,OPEN\nCLOSED,DONE\n")

	before := loader.UniqueValues(FieldStatus)
	if !slices.Equal(before, []string{"CLOSED", "PENDING"}) {
		t.Fatalf("initial UniqueValues = %v", before)
	}

	loader.SetMapping(FieldStatus, "ALT_STATUS")
	if got := loader.Column(FieldStatus); got != "ALT_STATUS" {
		t.Fatalf("Column after SetMapping = %q, want ALT_STATUS", got)
	}

	after := loader.UniqueValues(FieldStatus)
	if !slices.Equal(after, []string{"DONE", "OPEN"}) {
		t.Errorf("UniqueValues after remap = %v, want [DONE OPEN]", after)
	}
}

func TestSetMappingIgnoresMissingColumn(t *testing.T) {
	loader := loadCSV(t, "STATUS\nPENDING\n")

	loader.SetMapping(FieldStatus, "NOPE")
	if got := loader.Column(FieldStatus); got != "STATUS" {
		t.Errorf("Column = %q after bogus SetMapping, want STATUS", got)
	}

	empty := NewLoader()
	empty.SetMapping(FieldStatus, "STATUS")
	if got := empty.Column(FieldStatus); got != "" {
		t.Errorf("Column = %q on unloaded loader, want empty", got)
	}
}

func TestYears(t *testing.T) {
	loader := loadCSV(t, "CREATIONDATE\n01/01/2022\n15/06/2023\n31/12/2023\nbad\n")

	want := []int{2022, 2023}
	if got := loader.Years(); !slices.Equal(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}
}

func TestOpenClosedStatusValuesPreserveCasing(t *testing.T) {
	loader := loadCSV(t, "STATUS\nPending\nqueued\nClosed\nCANCEL\nWeird\n")

	open := loader.OpenStatusValues()
	if !slices.Equal(open, []string{"Pending", "queued"}) {
		t.Errorf("OpenStatusValues = %v", open)
	}

	closed := loader.ClosedStatusValues()
	if !slices.Equal(closed, []string{"CANCEL", "Closed"}) {
		t.Errorf("ClosedStatusValues = %v", closed)
	}
}

func TestClear(t *testing.T) {
	loader := loadCSV(t, "STATUS\nPENDING\n")
	loader.Clear()

	if loader.IsLoaded() {
		t.Error("IsLoaded() true after Clear")
	}
	if loader.RecordCount() != 0 {
		t.Error("RecordCount() != 0 after Clear")
	}
	if got := loader.Column(FieldStatus); got != "" {
		t.Errorf("Column = %q after Clear, want empty", got)
	}
	if loader.UniqueValues(FieldStatus) != nil {
		t.Error("UniqueValues not empty after Clear")
	}
}

func TestExtendAliases(t *testing.T) {
	loader := NewLoader()
	loader.ExtendAliases(map[Field][]string{
		FieldIP:        {"Asset Address"},
		Field("bogus"): {"x"},
	})

	if _, err := loader.Load(writeCSV(t, "Asset Address\n10.0.0.1\n")); err != nil {
		t.Fatal(err)
	}
	if got := loader.Column(FieldIP); got != "Asset Address" {
		t.Errorf("Column(ip) = %q, want custom alias match", got)
	}
}

func TestUnmappedFieldsOrder(t *testing.T) {
	loader := loadCSV(t, "TICKETID\n1\n")

	unmapped := loader.UnmappedFields()
	if len(unmapped) != len(FieldOrder)-1 {
		t.Fatalf("UnmappedFields length = %d, want %d", len(unmapped), len(FieldOrder)-1)
	}
	if unmapped[0] != FieldPriority {
		t.Errorf("first unmapped = %s, want priority (enumeration order)", unmapped[0])
	}
}
