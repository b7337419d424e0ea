package parser

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestValueNormalization(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "  Texto con espacios  ")
	f.SetCellValue(sheet, "A2", 100)
	f.SetCellValue(sheet, "A3", 200.5)
	f.SetCellValue(sheet, "A4", time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC))
	// A5 left empty
	f.SetCellValue(sheet, "A6", "15/08/2026")

	tmpFile := filepath.Join(t.TempDir(), "values.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	tests := []struct {
		ref      string
		expected any
	}{
		{"A1", "Texto con espacios"},
		{"A2", int64(100)},
		{"A3", 200.5},
		{"A4", "2026-08-29"},
		{"A5", ""},
		// Textual dates are not converted, they stay plain strings.
		{"A6", "15/08/2026"},
	}

	for _, tt := range tests {
		got, err := Value(f2, sheet, tt.ref)
		if err != nil {
			t.Fatalf("Value(%s) failed: %v", tt.ref, err)
		}
		if got != tt.expected {
			t.Errorf("Value(%s) = %v (type: %T), expected %v (type: %T)",
				tt.ref, got, got, tt.expected, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"R60-001", "R60-001"},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestValueCustomNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	dateFmt := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		t.Fatalf("Failed to create date style: %v", err)
	}
	f.SetCellValue(sheet, "A1", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	if err := f.SetCellStyle(sheet, "A1", "A1", dateStyle); err != nil {
		t.Fatalf("Failed to set date style: %v", err)
	}

	// A literal "yd" in quotes is a unit suffix, not a date code.
	unitFmt := `0" yd"`
	unitStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &unitFmt})
	if err != nil {
		t.Fatalf("Failed to create unit style: %v", err)
	}
	f.SetCellValue(sheet, "A2", 30)
	if err := f.SetCellStyle(sheet, "A2", "A2", unitStyle); err != nil {
		t.Fatalf("Failed to set unit style: %v", err)
	}

	got, err := Value(f, sheet, "A1")
	if err != nil {
		t.Fatalf("Value(A1) failed: %v", err)
	}
	if got != "2026-08-15" {
		t.Errorf("custom date format cell = %v, expected 2026-08-15", got)
	}

	got, err = Value(f, sheet, "A2")
	if err != nil {
		t.Fatalf("Value(A2) failed: %v", err)
	}
	if got != int64(30) {
		t.Errorf("quoted-literal format cell = %v (type: %T), expected int64(30)", got, got)
	}
}

func TestDateFormatCode(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"dd/mm/yyyy", true},
		{"yyyy-mm-dd;@", true},
		{"[$-es-ES]d mmmm yyyy", true},
		{`0" yd"`, false},
		{`0.00" dias"`, false},
		{"[Red]0.00", false},
		{`0\d`, false},
		{"#,##0.00", false},
	}

	for _, tt := range tests {
		if got := dateFormatCode(tt.format); got != tt.expected {
			t.Errorf("dateFormatCode(%q) = %v, expected %v", tt.format, got, tt.expected)
		}
	}
}

func TestValueWhitespaceOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "   ")

	got, err := Value(f, sheet, "A1")
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if got != "" {
		t.Errorf("whitespace-only cell = %q, expected empty string", got)
	}
}
