package r60

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkbook indicates the source file is not a readable xlsx workbook.
var ErrInvalidWorkbook = errors.New("invalid or corrupt workbook")

// EmptyItemTableError reports a form whose item table held no rows.
// It carries the submission number so the operator can find the form.
type EmptyItemTableError struct {
	Number string
}

func (e *EmptyItemTableError) Error() string {
	return fmt.Sprintf("form %s contains no items", e.Number)
}
