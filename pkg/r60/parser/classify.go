package parser

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
)

// ErrUnrecognizedForm indicates no registered variant matched the sheet.
var ErrUnrecognizedForm = errors.New("unrecognized form type")

// classifyContentRows is how many leading rows of cell text the second
// classification pass inspects.
const classifyContentRows = 10

// Classify determines which registered variant a sheet belongs to.
// Pass one tests each variant's keywords against the sheet name; pass two
// tests them against the concatenated text of the leading rows. Both
// passes are case-insensitive substring matches in registration order,
// which keeps classification tolerant of renamed sheets. Keyword sets
// must be disjoint across variants (the registry enforces this).
func Classify(sheetName string, firstRows []string, reg *registry.Registry) (models.VariantID, error) {
	name := strings.ToLower(sheetName)
	for _, v := range reg.Variants() {
		if matchKeyword(name, v.Keywords) {
			return v.ID, nil
		}
	}

	content := strings.ToLower(strings.Join(firstRows, " "))
	for _, v := range reg.Variants() {
		if matchKeyword(content, v.Keywords) {
			return v.ID, nil
		}
	}

	return "", ErrUnrecognizedForm
}

// ClassifySheet classifies a sheet of an open workbook, feeding the first
// rows of cell text into the content pass.
func ClassifySheet(f *excelize.File, sheetName string, reg *registry.Registry) (models.VariantID, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", err
	}

	var texts []string
	for i, row := range rows {
		if i >= classifyContentRows {
			break
		}
		for _, cell := range row {
			if cell != "" {
				texts = append(texts, cell)
			}
		}
	}

	return Classify(sheetName, texts, reg)
}

func matchKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
