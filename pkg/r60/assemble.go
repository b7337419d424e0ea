package r60

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
	"github.com/r60proc/r60proc-go/pkg/r60/parser"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
)

// Assemble extracts a complete submission from an xlsx file: classify the
// sheet, read the header, walk the item table. This is the single entry
// point combining classification and extraction; it fails if a mandatory
// header field is empty or the item table holds no rows.
func Assemble(path string, reg *registry.Registry, opts Options) (*models.Submission, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	return assemble(f, filepath.Base(path), reg, opts)
}

// AssembleReader is Assemble for in-memory attachment bytes.
func AssembleReader(r io.Reader, fileName string, reg *registry.Registry, opts Options) (*models.Submission, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	return assemble(f, fileName, reg, opts)
}

func assemble(f *excelize.File, fileName string, reg *registry.Registry, opts Options) (*models.Submission, error) {
	log := opts.logger()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(f.GetActiveSheetIndex())
	}

	variantID, err := parser.ClassifySheet(f, sheetName, reg)
	if err != nil {
		return nil, err
	}
	log.Debug("form classified", "file", fileName, "variant", variantID)

	variant, err := reg.Lookup(variantID)
	if err != nil {
		return nil, err
	}

	header, err := parser.ExtractHeader(f, sheetName, variant)
	if err != nil {
		return nil, err
	}

	items, truncated, err := parser.ExtractItems(f, sheetName, variant)
	if err != nil {
		return nil, err
	}
	if truncated {
		log.Warn("item scan stopped at row bound",
			"file", fileName, "rows", parser.MaxItemRows)
	}

	sub := &models.Submission{
		Variant:    variantID,
		Header:     header,
		Items:      items,
		SourceFile: fileName,
	}
	if len(items) == 0 {
		return nil, &EmptyItemTableError{Number: sub.Number()}
	}

	log.Debug("form assembled",
		"file", fileName, "number", sub.Number(), "items", len(items))
	return sub, nil
}
