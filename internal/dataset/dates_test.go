package dataset

import (
	"testing"
	"time"
)

func TestParseDayFirst(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"SlashDayFirst", "02/01/2006", time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"AmbiguousIsDayFirst", "03/04/2023", time.Date(2023, 4, 3, 0, 0, 0, 0, time.UTC), true},
		{"ShortDigits", "5/6/2023", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"ISO", "2023-06-15", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"DashDayFirst", "15-06-2023", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"WithTime", "15/06/2023 10:30:00", time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC), true},
		{"Whitespace", "  15/06/2023  ", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"Garbage", "not a date", time.Time{}, false},
		{"Empty", "", time.Time{}, false},
		{"NumberOnly", "42", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDayFirst(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDayFirst(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDayFirst(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		cell any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "High", "High"},
		{"WholeFloat", float64(1001), "1001"},
		{"Fraction", 2.5, "2.5"},
		{"Time", time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC), "2023-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellString(tt.cell); got != tt.want {
				t.Errorf("CellString(%v) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestCellFloat(t *testing.T) {
	if v, ok := CellFloat(" -3.5 "); !ok || v != -3.5 {
		t.Errorf("CellFloat string = %v, %v", v, ok)
	}
	if v, ok := CellFloat(float64(7)); !ok || v != 7 {
		t.Errorf("CellFloat float = %v, %v", v, ok)
	}
	if _, ok := CellFloat("n/a"); ok {
		t.Error("CellFloat accepted non-numeric text")
	}
	if _, ok := CellFloat(nil); ok {
		t.Error("CellFloat accepted nil")
	}
}
