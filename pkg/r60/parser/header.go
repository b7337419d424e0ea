package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// MissingFieldError reports a mandatory header field that was empty,
// naming the cell it was expected in.
type MissingFieldError struct {
	Field string
	Cell  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("mandatory field %q is empty (cell %s)", e.Field, e.Cell)
}

// mandatoryFields are the header fields that must be non-empty for a
// submission to be accepted.
var mandatoryFields = map[string]bool{
	models.FieldNumber:    true,
	models.FieldRequester: true,
}

// ExtractHeader reads every cell in the variant's header mapping and
// normalizes it. Header values are always strings: dates become ISO
// strings, numbers their decimal text. Every declared field ends up in
// the result, possibly empty; the first empty mandatory field, in
// mapping declaration order, fails extraction with a MissingFieldError.
func ExtractHeader(f *excelize.File, sheet string, v models.FormVariant) (models.Header, error) {
	header := make(models.Header, len(v.Header))
	for _, fc := range v.Header {
		val, err := Value(f, sheet, fc.Cell)
		if err != nil {
			return nil, fmt.Errorf("read header cell %s: %w", fc.Cell, err)
		}
		header[fc.Field] = headerString(val)
	}

	for _, fc := range v.Header {
		if !mandatoryFields[fc.Field] {
			continue
		}
		if header[fc.Field] == "" {
			return nil, &MissingFieldError{Field: fc.Field, Cell: fc.Cell}
		}
	}

	return header, nil
}

func headerString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
