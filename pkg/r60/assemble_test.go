package r60

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
	"github.com/r60proc/r60proc-go/pkg/r60/parser"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
)

// buildComprasForm writes a purchase form fixture and returns its path.
func buildComprasForm(t *testing.T, sheetName string, itemRows int) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheetName))
	require.NoError(t, f.SetCellValue(sheetName, "D2", "R60-001"))
	require.NoError(t, f.SetCellValue(sheetName, "D3", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheetName, "D4", "Jane Doe"))
	require.NoError(t, f.SetCellValue(sheetName, "D5", "Compras"))

	for i := 0; i < itemRows; i++ {
		row := 10 + i
		require.NoError(t, f.SetCellValue(sheetName, cell("A", row), i+1))
		require.NoError(t, f.SetCellValue(sheetName, cell("B", row), "Lapiceras"))
		require.NoError(t, f.SetCellValue(sheetName, cell("C", row), 12))
		require.NoError(t, f.SetCellValue(sheetName, cell("D", row), "caja"))
		require.NoError(t, f.SetCellValue(sheetName, cell("E", row), 3.5))
		require.NoError(t, f.SetCellValue(sheetName, cell("F", row), 42.0))
	}

	path := filepath.Join(t.TempDir(), "form.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func cell(col string, row int) string {
	ref, _ := excelize.JoinCellName(col, row)
	return ref
}

func TestAssembleComprasForm(t *testing.T) {
	path := buildComprasForm(t, "Formulario de Compras", 2)

	sub, err := Assemble(path, registry.Default(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, models.VariantCompras, sub.Variant)
	assert.Equal(t, "R60-001", sub.Number())
	assert.Equal(t, "Jane Doe", sub.Requester())
	assert.Equal(t, "2026-08-15", sub.Date())
	assert.Equal(t, "form.xlsx", sub.SourceFile)
	require.Len(t, sub.Items, 2)
	assert.Equal(t, int64(1), sub.Items[0]["numero_item"])
	assert.Equal(t, "Lapiceras", sub.Items[0]["descripcion"])
}

func TestAssembleEmptyItemTable(t *testing.T) {
	path := buildComprasForm(t, "Formulario de Compras", 0)

	_, err := Assemble(path, registry.Default(), DefaultOptions())
	var eit *EmptyItemTableError
	require.ErrorAs(t, err, &eit)
	assert.Equal(t, "R60-001", eit.Number)
}

func TestAssembleMissingMandatoryFieldBeatsEmptyTable(t *testing.T) {
	// Items present but requester blank: the header check fires first
	// and names the field, it never reaches the empty-table check.
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Compras"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	require.NoError(t, f.SetCellValue(sheet, "D2", "R60-002"))
	require.NoError(t, f.SetCellValue(sheet, "A10", 1))
	require.NoError(t, f.SetCellValue(sheet, "B10", "Algo"))

	path := filepath.Join(t.TempDir(), "form.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := Assemble(path, registry.Default(), DefaultOptions())
	var mfe *parser.MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, models.FieldRequester, mfe.Field)
}

func TestAssembleUnrecognizedForm(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Hoja 1"))
	require.NoError(t, f.SetCellValue("Hoja 1", "A1", "sin palabras clave"))

	path := filepath.Join(t.TempDir(), "form.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := Assemble(path, registry.Default(), DefaultOptions())
	assert.ErrorIs(t, err, parser.ErrUnrecognizedForm)
}

func TestAssembleInvalidWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := Assemble(path, registry.Default(), DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}

func TestAssembleReader(t *testing.T) {
	path := buildComprasForm(t, "Formulario de Compras", 1)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	sub, err := AssembleReader(bytes.NewReader(data), "adjunto.xlsx", registry.Default(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "adjunto.xlsx", sub.SourceFile)
	assert.Len(t, sub.Items, 1)
}
