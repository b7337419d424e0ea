// Package store persists extracted submissions as flat rows, one row per
// line item, and answers duplicate lookups by submission number.
package store

import (
	"context"
	"time"

	"github.com/r60proc/r60proc-go/pkg/r60/models"
)

// TabularStore is the row store the pipeline writes submissions to.
// It offers no multi-row atomicity; the pipeline accepts the narrow
// window between FindByNumber and AppendRows because messages are
// processed sequentially within a run.
type TabularStore interface {
	// FindByNumber reports whether a row with the given submission
	// number already exists.
	FindByNumber(ctx context.Context, number string) (bool, error)
	// AppendRows appends rows in Columns() order and returns how many
	// were written.
	AppendRows(ctx context.Context, rows [][]any) (int, error)
}

// detailColumns is how many generic per-item value slots a row carries.
// The widest built-in variant (COMPRAS) uses all five.
const detailColumns = 5

// Columns returns the canonical column order for appended rows.
func Columns() []string {
	return []string{
		"processed_at",
		"form_number",
		"form_date",
		"form_type",
		"requester",
		"area",
		"item_number",
		"detail_1",
		"detail_2",
		"detail_3",
		"detail_4",
		"detail_5",
		"notes",
		"source_file",
	}
}

// RowsFor flattens a submission into store rows: shared header fields
// repeated on every row, the item's key field, then its remaining fields
// in the variant's column order padded to the detail slot count.
func RowsFor(sub *models.Submission, variant models.FormVariant, now time.Time) [][]any {
	processedAt := now.Format("2006-01-02 15:04:05")
	source := sub.ArchiveLink
	if source == "" {
		source = sub.SourceFile
	}

	rows := make([][]any, 0, len(sub.Items))
	for _, item := range sub.Items {
		row := []any{
			processedAt,
			sub.Number(),
			sub.Date(),
			string(sub.Variant),
			sub.Requester(),
			sub.Header[models.FieldArea],
			item[variant.ItemColumns[0].Field],
		}
		for i := 1; i < 1+detailColumns; i++ {
			if i < len(variant.ItemColumns) {
				row = append(row, item[variant.ItemColumns[i].Field])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, sub.Header[models.FieldNotes], source)
		rows = append(rows, row)
	}
	return rows
}
