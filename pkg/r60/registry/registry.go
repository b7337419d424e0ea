// Package registry holds the declarative cell mappings for the known
// form variants. A new layout is added by registering a mapping and its
// keywords; classification and extraction logic never change.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// ErrUnknownVariant indicates a lookup for a variant that was never registered.
var ErrUnknownVariant = errors.New("unknown form variant")

// KeywordConflictError reports two variants whose keyword sets overlap.
// Classification is substring-based and scans variants in registration
// order, so overlapping keywords would silently misclassify forms.
type KeywordConflictError struct {
	Variant models.VariantID
	Other   models.VariantID
	Keyword string
}

func (e *KeywordConflictError) Error() string {
	return fmt.Sprintf("keyword %q of variant %s conflicts with variant %s",
		e.Keyword, e.Variant, e.Other)
}

// Registry is an ordered collection of form variants. Order is
// significant: the classifier tests variants in registration order.
type Registry struct {
	order    []models.VariantID
	variants map[models.VariantID]models.FormVariant
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{variants: make(map[models.VariantID]models.FormVariant)}
}

// Register adds a variant. It validates the mapping and rejects keywords
// that overlap with any already-registered variant.
func (r *Registry) Register(v models.FormVariant) error {
	if v.ID == "" {
		return errors.New("variant id must not be empty")
	}
	if _, ok := r.variants[v.ID]; ok {
		return fmt.Errorf("variant %s already registered", v.ID)
	}
	if len(v.Keywords) == 0 {
		return fmt.Errorf("variant %s declares no keywords", v.ID)
	}
	if len(v.Header) == 0 {
		return fmt.Errorf("variant %s declares no header mapping", v.ID)
	}
	if len(v.ItemColumns) == 0 {
		return fmt.Errorf("variant %s declares no item columns", v.ID)
	}
	if v.ItemsStartRow < 1 {
		return fmt.Errorf("variant %s has invalid items start row %d", v.ID, v.ItemsStartRow)
	}
	if err := r.checkKeywords(v); err != nil {
		return err
	}

	r.variants[v.ID] = v
	r.order = append(r.order, v.ID)
	return nil
}

// checkKeywords rejects a keyword that equals or contains (or is contained
// by) a keyword of another variant. Matching is substring-based, so either
// direction of containment makes classification order-dependent.
func (r *Registry) checkKeywords(v models.FormVariant) error {
	for _, kw := range v.Keywords {
		nkw := strings.ToLower(strings.TrimSpace(kw))
		if nkw == "" {
			return fmt.Errorf("variant %s declares an empty keyword", v.ID)
		}
		for _, otherID := range r.order {
			for _, other := range r.variants[otherID].Keywords {
				nother := strings.ToLower(other)
				if strings.Contains(nkw, nother) || strings.Contains(nother, nkw) {
					return &KeywordConflictError{Variant: v.ID, Other: otherID, Keyword: kw}
				}
			}
		}
	}
	return nil
}

// Lookup returns the variant registered under id.
func (r *Registry) Lookup(id models.VariantID) (models.FormVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return models.FormVariant{}, fmt.Errorf("%w: %s", ErrUnknownVariant, id)
	}
	return v, nil
}

// Variants returns all registered variants in registration order.
func (r *Registry) Variants() []models.FormVariant {
	out := make([]models.FormVariant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.variants[id])
	}
	return out
}

// Default returns a registry preloaded with the built-in R-60 layouts.
func Default() *Registry {
	r := New()
	for _, v := range builtinVariants() {
		if err := r.Register(v); err != nil {
			// Built-ins are fixed data; a conflict here is a programming error.
			panic(err)
		}
	}
	return r
}

func builtinVariants() []models.FormVariant {
	header := []models.FieldCell{
		{Field: models.FieldNumber, Cell: "D2"},
		{Field: models.FieldDate, Cell: "D3"},
		{Field: models.FieldRequester, Cell: "D4"},
		{Field: models.FieldArea, Cell: "D5"},
		{Field: models.FieldNotes, Cell: "D6"},
	}

	return []models.FormVariant{
		{
			ID:            models.VariantCompras,
			Keywords:      []string{"compra", "adquisición", "purchase"},
			Header:        header,
			ItemsStartRow: 10,
			ItemColumns: []models.FieldColumn{
				{Field: "numero_item", Column: "A"},
				{Field: "descripcion", Column: "B"},
				{Field: "cantidad", Column: "C"},
				{Field: "unidad", Column: "D"},
				{Field: "precio_unitario", Column: "E"},
				{Field: "total", Column: "F"},
			},
		},
		{
			ID:            models.VariantServicios,
			Keywords:      []string{"servicio", "service"},
			Header:        header,
			ItemsStartRow: 10,
			ItemColumns: []models.FieldColumn{
				{Field: "numero_item", Column: "A"},
				{Field: "servicio", Column: "B"},
				{Field: "proveedor", Column: "C"},
				{Field: "monto", Column: "D"},
				{Field: "fecha_servicio", Column: "E"},
			},
		},
		{
			ID:            models.VariantCostos,
			Keywords:      []string{"costo", "gasto", "expense", "cost"},
			Header:        header,
			ItemsStartRow: 10,
			ItemColumns: []models.FieldColumn{
				{Field: "numero_item", Column: "A"},
				{Field: "concepto", Column: "B"},
				{Field: "categoria", Column: "C"},
				{Field: "monto", Column: "D"},
				{Field: "fecha", Column: "E"},
			},
		},
	}
}
