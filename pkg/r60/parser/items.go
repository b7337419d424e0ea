package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// MaxItemRows bounds the item scan. A table longer than this is cut off
// rather than rejected; the truncated flag lets the caller surface a
// warning.
const MaxItemRows = 1000

// ExtractItems walks the item table from the variant's start row, one
// LineItem per occupied row. The scan ends at the first row whose key
// cell (the variant's first item column) is empty; a single blank key
// cell mid-table therefore truncates the table, so callers should sanity
// check the returned count. Returns the items and whether the safety
// bound cut the scan short.
func ExtractItems(f *excelize.File, sheet string, v models.FormVariant) ([]models.LineItem, bool, error) {
	keyCol := v.KeyColumn()

	var items []models.LineItem
	for offset := 0; ; offset++ {
		if offset >= MaxItemRows {
			return items, true, nil
		}
		row := v.ItemsStartRow + offset

		keyRef, err := excelize.JoinCellName(keyCol, row)
		if err != nil {
			return nil, false, fmt.Errorf("key cell %s%d: %w", keyCol, row, err)
		}
		key, err := Value(f, sheet, keyRef)
		if err != nil {
			return nil, false, fmt.Errorf("read key cell %s: %w", keyRef, err)
		}
		if s, ok := key.(string); ok && s == "" {
			break
		}

		item, err := extractItemRow(f, sheet, row, v.ItemColumns)
		if err != nil {
			return nil, false, err
		}
		items = append(items, item)
	}

	return items, false, nil
}

func extractItemRow(f *excelize.File, sheet string, row int, cols []models.FieldColumn) (models.LineItem, error) {
	item := make(models.LineItem, len(cols))
	for _, fc := range cols {
		ref, err := excelize.JoinCellName(fc.Column, row)
		if err != nil {
			return nil, fmt.Errorf("item cell %s%d: %w", fc.Column, row, err)
		}
		val, err := Value(f, sheet, ref)
		if err != nil {
			return nil, fmt.Errorf("read item cell %s: %w", ref, err)
		}
		item[fc.Field] = val
	}
	return item, nil
}
