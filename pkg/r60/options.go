// Package r60 provides classification and structured extraction of R-60
// spreadsheet forms.
package r60

import "log/slog"

// Options configures assembly behavior.
type Options struct {
	// Sheet selects the sheet to extract from. Empty means the
	// workbook's active sheet.
	Sheet string
	// Logger receives extraction warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default assembly options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
