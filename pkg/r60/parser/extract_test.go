package parser

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
)

func comprasVariant(t *testing.T) models.FormVariant {
	t.Helper()
	v, err := registry.Default().Lookup(models.VariantCompras)
	require.NoError(t, err)
	return v
}

func newComprasSheet(t *testing.T) (*excelize.File, string) {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	sheet := "Compras"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetCellValue(sheet, "D2", "R60-001"))
	require.NoError(t, f.SetCellValue(sheet, "D3", "2026-08-15"))
	require.NoError(t, f.SetCellValue(sheet, "D4", "Jane Doe"))
	require.NoError(t, f.SetCellValue(sheet, "D5", "Logistica"))
	require.NoError(t, f.SetCellValue(sheet, "D6", "Urgente"))
	return f, sheet
}

func setItemRow(t *testing.T, f *excelize.File, sheet string, row int, num any, desc string) {
	t.Helper()
	require.NoError(t, f.SetCellValue(sheet, "A"+itoa(row), num))
	require.NoError(t, f.SetCellValue(sheet, "B"+itoa(row), desc))
	require.NoError(t, f.SetCellValue(sheet, "C"+itoa(row), 2))
	require.NoError(t, f.SetCellValue(sheet, "D"+itoa(row), "un"))
	require.NoError(t, f.SetCellValue(sheet, "E"+itoa(row), 10.5))
	require.NoError(t, f.SetCellValue(sheet, "F"+itoa(row), 21.0))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestExtractHeader(t *testing.T) {
	f, sheet := newComprasSheet(t)
	v := comprasVariant(t)

	header, err := ExtractHeader(f, sheet, v)
	require.NoError(t, err)

	assert.Equal(t, "R60-001", header[models.FieldNumber])
	assert.Equal(t, "Jane Doe", header[models.FieldRequester])
	assert.Equal(t, "2026-08-15", header[models.FieldDate])
	assert.Equal(t, "Logistica", header[models.FieldArea])
	assert.Equal(t, "Urgente", header[models.FieldNotes])
}

func TestExtractHeaderEmptyOptionalField(t *testing.T) {
	f, sheet := newComprasSheet(t)
	require.NoError(t, f.SetCellValue(sheet, "D6", ""))
	v := comprasVariant(t)

	header, err := ExtractHeader(f, sheet, v)
	require.NoError(t, err)

	// Every declared field is present even when empty.
	val, ok := header[models.FieldNotes]
	require.True(t, ok)
	assert.Equal(t, "", val)
}

func TestExtractHeaderMissingMandatoryField(t *testing.T) {
	f, sheet := newComprasSheet(t)
	require.NoError(t, f.SetCellValue(sheet, "D4", "   "))
	v := comprasVariant(t)

	_, err := ExtractHeader(f, sheet, v)
	var mfe *MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, models.FieldRequester, mfe.Field)
	assert.Equal(t, "D4", mfe.Cell)
}

func TestExtractItemsStopsAtEmptyKey(t *testing.T) {
	f, sheet := newComprasSheet(t)
	v := comprasVariant(t)

	for row := 10; row <= 13; row++ {
		setItemRow(t, f, sheet, row, row-9, "Item")
	}
	// Row 14 blank, row 15 populated again: the scan must not resume.
	setItemRow(t, f, sheet, 15, 6, "Orphan")

	items, truncated, err := ExtractItems(f, sheet, v)
	require.NoError(t, err)
	assert.False(t, truncated)
	require.Len(t, items, 4)

	assert.Equal(t, int64(1), items[0]["numero_item"])
	assert.Equal(t, "Item", items[0]["descripcion"])
	assert.Equal(t, int64(2), items[0]["cantidad"])
	assert.Equal(t, 10.5, items[0]["precio_unitario"])
	assert.Equal(t, int64(4), items[3]["numero_item"])
}

func TestExtractItemsEmptyTable(t *testing.T) {
	f, sheet := newComprasSheet(t)
	v := comprasVariant(t)

	items, truncated, err := ExtractItems(f, sheet, v)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Empty(t, items)
}

func TestExtractItemsRowBound(t *testing.T) {
	f, sheet := newComprasSheet(t)
	v := comprasVariant(t)

	// One more occupied key cell than the scan bound.
	for offset := 0; offset <= MaxItemRows; offset++ {
		row := v.ItemsStartRow + offset
		require.NoError(t, f.SetCellValue(sheet, "A"+itoa(row), offset+1))
	}

	items, truncated, err := ExtractItems(f, sheet, v)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Len(t, items, MaxItemRows)
	assert.Equal(t, int64(MaxItemRows), items[MaxItemRows-1]["numero_item"])
}

func TestExtractItemsWhitespaceKeyEndsTable(t *testing.T) {
	f, sheet := newComprasSheet(t)
	v := comprasVariant(t)

	setItemRow(t, f, sheet, 10, 1, "Item")
	require.NoError(t, f.SetCellValue(sheet, "A11", "  "))
	setItemRow(t, f, sheet, 12, 3, "After gap")

	items, _, err := ExtractItems(f, sheet, v)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
