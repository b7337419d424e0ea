// Package parser implements form classification and cell-coordinate
// extraction for R-60 spreadsheet forms.
package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Value reads one cell and normalizes it to a stable representation:
// empty cells yield "", date cells yield an ISO YYYY-MM-DD string,
// numeric cells keep their numeric value, anything else is returned as
// a trimmed string.
func Value(f *excelize.File, sheet, ref string) (any, error) {
	raw, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if isDateCell(f, sheet, ref) {
		if serial, perr := strconv.ParseFloat(raw, 64); perr == nil {
			if t, cerr := excelize.ExcelDateToTime(serial, false); cerr == nil {
				return t.Format("2006-01-02"), nil
			}
		}
	}

	return parseValue(raw), nil
}

// parseValue attempts to parse a raw string as a number.
// Returns int64 for integers, float64 for decimals, or the trimmed string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// isDateCell reports whether the cell carries a date number format, in
// which case its raw value is an Excel serial rather than a plain number.
func isDateCell(f *excelize.File, sheet, ref string) bool {
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}

	if dateNumFmt(style.NumFmt) {
		return true
	}
	if style.CustomNumFmt != nil {
		return dateFormatCode(*style.CustomNumFmt)
	}
	return false
}

// dateFormatCode reports whether a custom number format carries a date
// code. Quoted literals, bracketed sections (colors, locale prefixes)
// and backslash-escaped characters do not count: a format like `0" yd"`
// renders a unit, not a date.
func dateFormatCode(fmtStr string) bool {
	inQuote := false
	inBracket := false
	for i := 0; i < len(fmtStr); i++ {
		c := fmtStr[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\':
			i++
		case c == 'y' || c == 'Y' || c == 'd' || c == 'D':
			return true
		}
	}
	return false
}

// dateNumFmt covers the built-in date and datetime number format IDs.
func dateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 17:
		return true
	case id == 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}
