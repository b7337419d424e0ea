// Package models defines data structures for R-60 form extraction.
package models

// VariantID identifies one of the recognized form layouts.
type VariantID string

const (
	// VariantCompras is the purchase request layout.
	VariantCompras VariantID = "COMPRAS"
	// VariantServicios is the service request layout.
	VariantServicios VariantID = "SERVICIOS"
	// VariantCostos is the cost report layout.
	VariantCostos VariantID = "COSTOS"
)

// FieldCell binds a header field name to the A1-style cell it is read from.
type FieldCell struct {
	Field string `json:"field" yaml:"field"`
	Cell  string `json:"cell" yaml:"cell"`
}

// FieldColumn binds an item field name to the column letter it is read from.
type FieldColumn struct {
	Field  string `json:"field" yaml:"field"`
	Column string `json:"column" yaml:"column"`
}

// FormVariant describes one recognized form layout: where its header fields
// live, where its item table starts, and the keywords that identify it.
// Variants are immutable once registered; field order is significant
// (the first item column is the key column whose emptiness ends the table).
type FormVariant struct {
	ID            VariantID     `json:"id" yaml:"id"`
	Keywords      []string      `json:"keywords" yaml:"keywords"`
	Header        []FieldCell   `json:"header" yaml:"header"`
	ItemsStartRow int           `json:"items_start_row" yaml:"items_start_row"`
	ItemColumns   []FieldColumn `json:"item_columns" yaml:"item_columns"`
}

// KeyColumn returns the column letter of the item key column.
// Returns "" if the variant declares no item columns.
func (v FormVariant) KeyColumn() string {
	if len(v.ItemColumns) == 0 {
		return ""
	}
	return v.ItemColumns[0].Column
}

// HeaderCell returns the cell mapped to the given header field, or "".
func (v FormVariant) HeaderCell(field string) string {
	for _, fc := range v.Header {
		if fc.Field == field {
			return fc.Cell
		}
	}
	return ""
}
